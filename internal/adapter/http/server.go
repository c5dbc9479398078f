package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/dwd-warning-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WarningFetcher produces a fresh warning list from the upstream source.
type WarningFetcher interface {
	FetchWarnings(ctx context.Context) (domain.WarningList, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the warning API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	fetcher    WarningFetcher
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /v1/warnings, /v1/warnings/current,
// /healthz, /readyz, and /metrics routes.
func NewServer(addr string, fetcher WarningFetcher, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		fetcher: fetcher,
		logger:  logger,
	}

	mux.HandleFunc("GET /v1/warnings", s.handleWarnings(false))
	mux.HandleFunc("GET /v1/warnings/current", s.handleWarnings(true))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleWarnings performs one synchronous fetch per request. With
// currentOnly set, expired warnings are filtered out of the response.
func (s *Server) handleWarnings(currentOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.fetcher.FetchWarnings(r.Context())
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, context.DeadlineExceeded) {
				status = http.StatusGatewayTimeout
			}
			s.logger.Error("fetch warnings failed", "error", err, "path", r.URL.Path)
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}

		if currentOnly {
			list.Warnings = list.Current()
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
