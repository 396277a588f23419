package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome for one input page.
type BatchResult struct {
	Input     string
	OutputDir string
	Manifest  *Manifest
	Err       error
}

// OutputDirs returns where the results for each input go. A single page
// writes straight into outDir; several pages get one subdirectory each,
// named after the page file. Pages sharing a file name get a numeric suffix
// so no two pages write into the same directory.
func OutputDirs(inputs []string, outDir string) []string {
	dirs := make([]string, len(inputs))
	if len(inputs) <= 1 {
		for i := range dirs {
			dirs[i] = outDir
		}
		return dirs
	}

	used := make(map[string]bool, len(inputs))
	for i, input := range inputs {
		base := filepath.Base(input)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		name := stem
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", stem, n)
		}
		used[name] = true
		dirs[i] = filepath.Join(outDir, name)
	}
	return dirs
}

// RunBatch runs up to jobs pages concurrently. A failing page is reported
// in its result and does not stop the others; only cancellation of ctx
// aborts the batch. Results are in input order.
func (p *Pipeline) RunBatch(ctx context.Context, inputs []string, outDir string, jobs int, opts RunOptions) ([]BatchResult, error) {
	results := make([]BatchResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)

	dirs := OutputDirs(inputs, outDir)
	for i, input := range inputs {
		dir := dirs[i]
		results[i] = BatchResult{Input: input, OutputDir: dir}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			m, err := p.Run(gctx, input, dir, opts)
			// pages are decoded once
			p.cache.Evict(input)
			results[i].Manifest = m
			results[i].Err = err
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			if err != nil {
				p.logger.Error("page failed", "page", input, "error", err)
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}
