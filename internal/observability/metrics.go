package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for ranking runs. Each instance owns
// its registry so several can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	DownloadsTotal       *prometheus.CounterVec
	DownloadAttempts     prometheus.Histogram
	CandidatesExcluded   prometheus.Counter
	EnrichmentLookups    *prometheus.CounterVec
	VerificationPasses   prometheus.Histogram
	PipelineRunsTotal    *prometheus.CounterVec
	PipelineDuration     prometheus.Histogram
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestsInFlight prometheus.Gauge
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DownloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ranker_downloads_total",
				Help: "Resume downloads by outcome (ok, failed).",
			},
			[]string{"outcome"},
		),
		DownloadAttempts: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ranker_download_attempts",
				Help:    "Attempts used per resume location.",
				Buckets: []float64{1, 2, 3, 5, 8},
			},
		),
		CandidatesExcluded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ranker_candidates_excluded_total",
				Help: "Candidates removed by the eligibility filter.",
			},
		),
		EnrichmentLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ranker_enrichment_lookups_total",
				Help: "External activity lookups by outcome.",
			},
			[]string{"outcome"},
		),
		VerificationPasses: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ranker_verification_passes",
				Help:    "Verification passes used per run.",
				Buckets: []float64{1, 2, 3},
			},
		),
		PipelineRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ranker_pipeline_runs_total",
				Help: "Pipeline runs by status (ok, error).",
			},
			[]string{"status"},
		),
		PipelineDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ranker_pipeline_duration_seconds",
				Help:    "End-to-end pipeline latency in seconds.",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ranker_http_requests_total",
				Help: "HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ranker_http_requests_in_flight",
				Help: "HTTP requests currently being processed.",
			},
		),
	}

	m.registry.MustRegister(
		m.DownloadsTotal,
		m.DownloadAttempts,
		m.CandidatesExcluded,
		m.EnrichmentLookups,
		m.VerificationPasses,
		m.PipelineRunsTotal,
		m.PipelineDuration,
		m.HTTPRequestsTotal,
		m.HTTPRequestsInFlight,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus scrape handler for this instance.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
