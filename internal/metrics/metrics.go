// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Modality label values.
const (
	ModalityText  = "text"
	ModalityImage = "image"
)

// Outcome label values for predictions.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics bundles the service collectors behind a private registry.
type Metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	outcomes  *prometheus.CounterVec
}

// New creates the registry with all service and runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dermaai_http_requests_total",
			Help: "HTTP requests served, by route, method and status code.",
		}, []string{"path", "method", "status"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dermaai_triage_duration_seconds",
			Help:    "End-to-end triage latency per modality.",
			Buckets: prometheus.DefBuckets,
		}, []string{"modality"}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dermaai_predictions_total",
			Help: "Triage outcomes per modality: accepted, rejected or error.",
		}, []string{"modality", "outcome"}),
	}
}

// CountRequest records one served HTTP request.
func (m *Metrics) CountRequest(path, method string, status int) {
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
}

// ObserveTriage records the latency of one triage run.
func (m *Metrics) ObserveTriage(modality string, seconds float64) {
	m.durations.WithLabelValues(modality).Observe(seconds)
}

// CountPrediction records a triage outcome.
func (m *Metrics) CountPrediction(modality, outcome string) {
	m.outcomes.WithLabelValues(modality, outcome).Inc()
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
