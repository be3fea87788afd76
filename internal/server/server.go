// Package server wires the JSON API handlers and runs the HTTP server
// for the serve command.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jask/devreports/internal/handler"
	"github.com/jask/devreports/internal/middleware"
	"github.com/jask/devreports/internal/service"
)

// Options configures the HTTP server.
type Options struct {
	Addr      string
	APIKey    string
	RateLimit int // requests per minute per IP
}

// SetupMux wires handlers with the full middleware chain.
func SetupMux(svc *service.ExplorerService, logger *zap.Logger, opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handler.Health(svc))
	mux.HandleFunc("/api/sources", handler.Sources(svc))
	mux.HandleFunc("/api/search", handler.Search(svc))
	mux.Handle("/metrics", promhttp.Handler())

	limit := opts.RateLimit
	if limit <= 0 {
		limit = 60
	}
	rl := middleware.NewRateLimiter(limit, time.Minute)
	return middleware.Chain(mux, logger, rl, opts.APIKey)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context, svc *service.ExplorerService, logger *zap.Logger, opts Options) error {
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           SetupMux(svc, logger, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", opts.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
