package dwd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/dwd-warning-service/internal/domain"
	"github.com/couchcryptid/dwd-warning-service/internal/observability"
)

// Client fetches the warning list from the DWD WarnWetter endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
	fetched    atomic.Bool
}

// NewClient creates a DWD warnings client. The URL is injectable so tests
// can point at a mock server.
func NewClient(url string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// FetchWarnings performs one GET against the warnings endpoint and
// converts the body into a WarningList. One network call per invocation;
// no retries, no internal caching.
func (c *Client) FetchWarnings(ctx context.Context) (domain.WarningList, error) {
	start := time.Now()
	list, err := c.fetch(ctx)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	c.metrics.FetchesTotal.WithLabelValues(outcomeFor(err)).Inc()
	if err != nil {
		return domain.WarningList{}, err
	}

	c.fetched.Store(true)
	c.metrics.UpstreamReady.Set(1)
	c.metrics.WarningCount.Observe(float64(len(list.Warnings)))
	c.logger.Debug("fetched warning list",
		"warnings", len(list.Warnings),
		"response_time", list.Time,
	)
	return list, nil
}

func (c *Client) fetch(ctx context.Context) (domain.WarningList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.WarningList{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WarningList{}, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.WarningList{}, fmt.Errorf("%w: status %d: %s", domain.ErrTransport, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.WarningList{}, fmt.Errorf("%w: read body: %w", domain.ErrTransport, err)
	}

	return domain.ParseWarningList(string(body))
}

// CheckReadiness returns nil once at least one fetch has succeeded, or an
// error describing why the upstream is not yet confirmed reachable.
func (c *Client) CheckReadiness(_ context.Context) error {
	if !c.fetched.Load() {
		return errors.New("no successful fetch from the DWD yet")
	}
	return nil
}

// outcomeFor maps an error to its metrics label.
func outcomeFor(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrResponseShape):
		return "shape_error"
	case errors.Is(err, domain.ErrDeserialization):
		return "decode_error"
	case errors.Is(err, domain.ErrDateParsing):
		return "time_error"
	default:
		return "transport_error"
	}
}
