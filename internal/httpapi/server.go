package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server timeouts.
const (
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 60 * time.Second
	ServerIdleTimeout       = 60 * time.Second
	GracefulShutdownTimeout = 10 * time.Second
)

// ListenAndServe serves the API on addr until ctx is cancelled, then
// shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, h *Handler) error {
	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:         addr,
		Handler:      NewEngine(h),
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info().
			Str("addr", addr).
			Int64("max_upload_bytes", h.cfg.HTTP.MaxUploadBytes).
			Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	h.log.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	h.log.Info().Msg("HTTP server exited gracefully")
	return nil
}
