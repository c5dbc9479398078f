package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// warning fetch path.
type Metrics struct {
	FetchesTotal  *prometheus.CounterVec // labels: outcome={success,transport_error,shape_error,decode_error,time_error}
	FetchDuration prometheus.Histogram
	WarningCount  prometheus.Histogram
	UpstreamReady prometheus.Gauge
}

// NewMetrics creates and registers all fetch metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dwd_warnings",
			Name:      "fetches_total",
			Help:      "Warning list fetches by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dwd_warnings",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a complete fetch-and-parse cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		WarningCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dwd_warnings",
			Name:      "warning_count",
			Help:      "Number of warnings per successfully fetched list.",
			Buckets:   []float64{0, 10, 25, 50, 100, 250, 500, 1000},
		}),
		UpstreamReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dwd_warnings",
			Name:      "upstream_ready",
			Help:      "1 after at least one successful fetch from the DWD, 0 before.",
		}),
	}

	prometheus.MustRegister(
		m.FetchesTotal,
		m.FetchDuration,
		m.WarningCount,
		m.UpstreamReady,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchesTotal:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "dwd_warnings", Name: "fetches_total"}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "dwd_warnings", Name: "fetch_duration_seconds"}),
		WarningCount:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "dwd_warnings", Name: "warning_count"}),
		UpstreamReady: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "dwd_warnings", Name: "upstream_ready"}),
	}
}
