package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/notesplit/internal/api"
	"github.com/ironsheep/notesplit/internal/session"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the extraction HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.setup()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.API.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.API.Port = port
			}

			ttl := time.Duration(cfg.API.SessionTTLHours * float64(time.Hour))
			store, err := session.NewStore(cfg.API.TempDir, ttl, cfg.API.MaxSessions, logger.With("component", "session"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.New(cfg, store, Version, logger.With("component", "api")).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen address (default from config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from config)")

	return cmd
}
