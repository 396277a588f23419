package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"
)

const shutdownTimeout = 10 * time.Second

// ListenAndServe serves the API on the configured address and runs the
// session sweeper until ctx is canceled, then shuts down gracefully.
func (h *Handler) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort(h.cfg.API.Host, strconv.Itoa(h.cfg.API.Port))

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 30 * time.Second,
	}

	if c, err := h.store.Sweep(); err != nil {
		h.logger.Warn("initial session sweep incomplete", "error", err)
	} else if c.Sessions > 0 {
		h.logger.Info("expired sessions removed", "sessions", c.Sessions)
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()

	if interval := time.Duration(h.cfg.API.CleanupMinutes) * time.Minute; interval > 0 {
		go h.store.Run(sweepCtx, interval)
	}

	errc := make(chan error, 1)
	go func() {
		h.logger.Info("listening", "addr", addr, "version", h.version)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
