//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/dwd-warning-service/internal/adapter/kafka"
	"github.com/couchcryptid/dwd-warning-service/internal/config"
	"github.com/couchcryptid/dwd-warning-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testTopic = "test-dwd-warnings"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-broker Kafka container and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPublishList verifies that a fetched warning list round-trips through
// Kafka with keys, headers, and values intact.
func TestPublishList(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testTopic,
	}

	fetched := time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC)
	end := fetched.Add(6 * time.Hour)
	list := domain.WarningList{
		Time:      fetched,
		Copyright: "DWD",
		Warnings: []domain.Warning{
			{
				State:      "Bavaria",
				Category:   1,
				Level:      3,
				Start:      fetched.Add(-time.Hour),
				End:        &end,
				RegionName: "Munich",
				Event:      "STURMBÖEN",
				Headline:   "Amtliche WARNUNG vor STURMBÖEN",
				StateShort: "BY",
			},
			{
				State:      "Sachsen",
				Category:   1,
				Level:      2,
				Start:      fetched,
				RegionName: "Kreis Bautzen",
				Event:      "FROST",
				Headline:   "Amtliche WARNUNG vor FROST",
				StateShort: "SN",
			},
		},
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.PublishList(ctx, list))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make(map[string]domain.Warning, len(list.Warnings))
	for len(received) < len(list.Warnings) {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from warnings topic")

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, fetched.Format(time.RFC3339), headers["fetched_at"])
		assert.NotEmpty(t, headers["event"])
		assert.NotEmpty(t, headers["level"])

		var w domain.Warning
		require.NoError(t, json.Unmarshal(msg.Value, &w))
		assert.Equal(t, w.RegionName, string(msg.Key))
		received[w.RegionName] = w
	}

	require.Len(t, received, 2)
	assert.Equal(t, list.Warnings[0], received["Munich"])
	assert.Equal(t, list.Warnings[1], received["Kreis Bautzen"])
}
