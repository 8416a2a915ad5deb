package core

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
	OutcomeBusy     = "busy"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	uploads  *prometheus.CounterVec
	runs     *prometheus.CounterVec
	exports  prometheus.Counter
	charts   *prometheus.CounterVec
	duration prometheus.Histogram
	active   prometheus.Gauge
}

// NewMetrics creates the collectors on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datacleaner",
			Name:      "uploads_total",
			Help:      "Uploaded files by format and outcome.",
		}, []string{"format", "outcome"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datacleaner",
			Name:      "pipeline_runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "datacleaner",
			Name:      "exports_total",
			Help:      "Cleaned CSV downloads.",
		}),
		charts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datacleaner",
			Name:      "charts_rendered_total",
			Help:      "Rendered charts by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "datacleaner",
			Name:      "pipeline_duration_seconds",
			Help:      "Time spent parsing, profiling and cleaning an upload.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "datacleaner",
			Name:      "pipeline_active_runs",
			Help:      "Pipeline runs currently holding a limiter slot.",
		}),
	}

	m.registry.MustRegister(
		m.uploads, m.runs, m.exports, m.charts, m.duration, m.active,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveUpload(format, outcome string) {
	if m == nil {
		return
	}
	if format == "" {
		format = "unknown"
	}
	m.uploads.WithLabelValues(format, outcome).Inc()
}

func (m *Metrics) ObserveRun(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.duration.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) ObserveExport() {
	if m == nil {
		return
	}
	m.exports.Inc()
}

func (m *Metrics) ObserveChart(kind ChartKind) {
	if m == nil {
		return
	}
	m.charts.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) SetActiveRuns(n int) {
	if m == nil {
		return
	}
	m.active.Set(float64(n))
}
