package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/notesplit/internal/pipeline"
)

type extractOptions struct {
	outDir string
	debug  bool
	jobs   int
}

func newExtractCommand(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <page.png>...",
		Short: "Extract the diagrams of one or more PNG pages",
		Long: `Extract writes diagram_<n>.png and manifest.json for every page. With several
pages each one gets a subdirectory of the output directory named after the page.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "output", "o", "diagrams", "Output directory")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Also write debug overlays")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "Pages processed in parallel")

	return cmd
}

func runExtract(cmd *cobra.Command, root *rootOptions, opts *extractOptions, inputs []string) error {
	for _, in := range inputs {
		if !strings.EqualFold(filepath.Ext(in), ".png") {
			return fmt.Errorf("%s: only PNG pages are supported", in)
		}
	}

	cfg, logger, err := root.setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := pipeline.New(cfg, nil, logger)
	results, err := p.RunBatch(ctx, inputs, opts.outDir, opts.jobs, pipeline.RunOptions{Debug: opts.debug})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var failed []error
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Input, r.Err)
			failed = append(failed, fmt.Errorf("%s: %w", r.Input, r.Err))
			continue
		}
		s := r.Manifest.Summary
		fmt.Fprintf(out, "%s: %d of %d diagrams extracted to %s\n", r.Input, s.Successful, s.Total, r.OutputDir)
		for _, name := range s.ExtractedFiles {
			fmt.Fprintf(out, "  %s\n", filepath.Join(r.OutputDir, name))
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d pages failed: %w", len(failed), len(results), errors.Join(failed...))
	}
	return nil
}
