package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the console's prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errors          *prometheus.CounterVec
	backendCalls    *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
}

// NewMetrics registers collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "console_http_requests_total",
			Help: "HTTP requests served by the console",
		}, []string{"path", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_http_request_duration_seconds",
			Help:    "Latency of console HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "console_http_errors_total",
			Help: "Requests that ended in an error response",
		}, []string{"path", "method", "code"}),
		backendCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "console_backend_calls_total",
			Help: "Calls made to the ticketing backend",
		}, []string{"operation", "outcome"}),
		backendLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_backend_call_duration_seconds",
			Help:    "Latency of ticketing backend calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// RecordBackendCall tracks one backend round trip. Outcome is "ok",
// "status" for non-2xx answers or "transport" when no answer arrived.
func (m *Metrics) RecordBackendCall(operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.backendCalls.WithLabelValues(operation, outcome).Inc()
	m.backendLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
