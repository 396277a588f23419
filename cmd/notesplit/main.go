package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/notesplit/internal/config"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "notesplit",
		Short: "Separate diagrams from handwriting on scanned note pages",
		Long: `notesplit finds the hand-drawn diagrams on a scanned note page and writes
each one to its own transparent PNG, leaving the handwriting behind.

Environment variables:
  NOTESPLIT_LOG_LEVEL=debug    Log level (debug, info, warn, error)
  MIN_CONTOUR_AREA, CLUSTERING_PROXIMITY, PADDING, MAX_DIAGRAMS, ...
                               Override the configuration file
A .env file in the working directory is loaded first.`,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newExtractCommand(opts))
	cmd.AddCommand(newServeCommand(opts))

	return cmd
}

// setup loads .env, the configuration and the stderr logger.
func (o *rootOptions) setup() (*config.Config, *slog.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, err
	}

	level, err := config.ParseLevel(os.Getenv(config.LogLevelEnv))
	if err != nil {
		return nil, nil, err
	}
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := config.NewLogger(os.Stderr, level)

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
