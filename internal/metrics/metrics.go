package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	KindContent = "content"
	KindIdeas   = "ideas"

	OutcomeOK            = "ok"
	OutcomeInvalid       = "invalid"
	OutcomeUpstreamError = "upstream_error"
	OutcomeParseError    = "parse_error"
)

type Metrics struct {
	reg *prometheus.Registry

	GenerationRequests *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
	ContentPublished   *prometheus.CounterVec
}

// New builds the collectors on their own registry, alongside the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		GenerationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contentflow_generation_requests_total",
			Help: "Generation requests by kind and outcome",
		}, []string{"kind", "outcome"}),
		GenerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contentflow_generation_duration_seconds",
			Help:    "Time spent waiting on the completion service",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		}, []string{"kind"}),
		ContentPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contentflow_scheduled_content_total",
			Help: "Scheduled content processed by the publisher, by resulting status",
		}, []string{"status"}),
	}
	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.GenerationRequests,
		m.GenerationDuration,
		m.ContentPublished,
	)
	return m
}

func (m *Metrics) ObserveGeneration(kind, outcome string, took time.Duration) {
	m.GenerationRequests.WithLabelValues(kind, outcome).Inc()
	if outcome != OutcomeInvalid {
		m.GenerationDuration.WithLabelValues(kind).Observe(took.Seconds())
	}
}

// Handler returns an http.Handler for Prometheus scraping
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
