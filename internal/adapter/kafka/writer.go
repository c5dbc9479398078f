package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/dwd-warning-service/internal/config"
	"github.com/couchcryptid/dwd-warning-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes fetched warnings to a Kafka topic. It is used by the
// one-shot publish command; repeated runs are scheduled by the caller.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured warnings topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishList serializes every warning of a fetched list and publishes
// them in a single WriteMessages call.
func (w *Writer) PublishList(ctx context.Context, list domain.WarningList) error {
	if len(list.Warnings) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(list.Warnings))
	for i := range list.Warnings {
		msg, err := serializeToMessage(list.Warnings[i], list.Time)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Warning into a Kafka message keyed by
// region name, carrying the event, level, and fetch time as headers.
func serializeToMessage(warning domain.Warning, fetched time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(warning)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize warning: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(warning.RegionName),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event", Value: []byte(warning.Event)},
			{Key: "level", Value: []byte(strconv.Itoa(warning.Level))},
			{Key: "fetched_at", Value: []byte(fetched.Format(time.RFC3339))},
		},
	}, nil
}
