package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/dwd-warning-service/internal/adapter/dwd"
	httpadapter "github.com/couchcryptid/dwd-warning-service/internal/adapter/http"
	"github.com/couchcryptid/dwd-warning-service/internal/config"
	"github.com/couchcryptid/dwd-warning-service/internal/observability"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := dwd.NewClient(cfg.WarningsURL, cfg.FetchTimeout, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, client, client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One startup fetch so readiness reflects upstream reachability before
	// the first API request arrives. Failure is logged, not fatal: the DWD
	// may recover while the service keeps serving probes.
	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
		defer cancel()
		list, err := client.FetchWarnings(fetchCtx)
		if err != nil {
			logger.Warn("startup fetch failed", "error", err)
			return
		}
		logger.Info("startup fetch complete", "warnings", len(list.Warnings))
	}()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
