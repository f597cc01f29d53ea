// Package server provides the HTTP server implementation for the circuit builder API.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request-level gauges for the API surface. Per-operator build metrics
// (build totals, durations, circuit sizes) live in the arith package next
// to the builders that produce them.
var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quarith_active_requests",
		Help: "Current number of in-flight API requests",
	})
	totalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quarith_requests_total",
		Help: "Total number of API requests received",
	})
)

// Metrics exposes the Prometheus registry over HTTP and tracks the
// request-level instruments above.
type Metrics struct {
	handler http.Handler
}

// NewMetrics creates a Metrics instance backed by the default registry.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// RequestStarted records an accepted request.
func (m *Metrics) RequestStarted() {
	activeRequests.Inc()
	totalRequests.Inc()
}

// RequestFinished records request completion.
func (m *Metrics) RequestFinished() {
	activeRequests.Dec()
}

// ServeExposition writes the metric exposition in Prometheus text format.
func (m *Metrics) ServeExposition(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// handleMetrics is the HTTP handler for the /metrics endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.metrics.ServeExposition(w, r)
}

// metricsMiddleware tracks in-flight requests around each handler.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.RequestStarted()
		defer s.metrics.RequestFinished()
		next(w, r)
	}
}
