package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks evaluation outcomes and HTTP request handling.
//
// Metrics:
//   - underwriting_evaluations_total: Evaluations by final decision status
//   - underwriting_evaluation_duration_seconds: Rule pipeline latency
//   - underwriting_http_requests_total: HTTP requests by route and status code
type Metrics struct {
	registry *prometheus.Registry

	evaluations  *prometheus.CounterVec
	evalDuration prometheus.Histogram
	httpRequests *prometheus.CounterVec
}

// New creates and registers the service metrics on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,

		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "underwriting",
				Name:      "evaluations_total",
				Help:      "Total number of evaluations by final decision status",
			},
			[]string{"status"},
		),

		evalDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "underwriting",
				Name:      "evaluation_duration_seconds",
				Help:      "Rule pipeline evaluation latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "underwriting",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
	}

	registry.MustRegister(m.evaluations, m.evalDuration, m.httpRequests)
	return m
}

// ObserveEvaluation records one completed evaluation.
func (m *Metrics) ObserveEvaluation(status string, elapsed time.Duration) {
	m.evaluations.WithLabelValues(status).Inc()
	m.evalDuration.Observe(elapsed.Seconds())
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(route string, code int) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
