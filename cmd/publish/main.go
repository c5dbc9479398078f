// Command publish fetches the DWD warning list once and publishes every
// warning to the configured Kafka topic, then exits. Repeated runs are
// left to an external scheduler such as cron.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/dwd-warning-service/internal/adapter/dwd"
	kafkaadapter "github.com/couchcryptid/dwd-warning-service/internal/adapter/kafka"
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
	writer := kafkaadapter.NewWriter(cfg, logger)
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()

	list, err := client.FetchWarnings(ctx)
	if err != nil {
		logger.Error("fetch warnings failed", "error", err)
		os.Exit(1)
	}

	if err := writer.PublishList(ctx, list); err != nil {
		logger.Error("publish warnings failed", "error", err, "warnings", len(list.Warnings))
		os.Exit(1)
	}

	logger.Info("published warning list",
		"warnings", len(list.Warnings),
		"topic", cfg.KafkaTopic,
		"response_time", list.Time,
	)
}
