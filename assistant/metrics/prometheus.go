// Package metrics provides Prometheus metrics export for the assistant.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter exports assistant metrics in Prometheus format.
// All record methods are safe on a nil receiver so metrics stay optional.
type Exporter struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	emailResults   *prometheus.CounterVec
	agentFallbacks *prometheus.CounterVec
}

// Config configures the Prometheus exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}
}

// NewExporter creates a new Prometheus metrics exporter.
func NewExporter(cfg Config) *Exporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &Exporter{registry: registry}

	e.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finsage",
			Subsystem: "assistant",
			Name:      "requests_total",
			Help:      "Assistant requests by classified intent",
		},
		[]string{"intent"},
	)

	e.requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "finsage",
			Subsystem: "assistant",
			Name:      "request_latency_seconds",
			Help:      "Assistant request latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"intent"},
	)

	e.emailResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finsage",
			Subsystem: "assistant",
			Name:      "email_deliveries_total",
			Help:      "Email delivery attempts by backend and outcome",
		},
		[]string{"backend", "status"},
	)

	e.agentFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finsage",
			Subsystem: "assistant",
			Name:      "agent_fallbacks_total",
			Help:      "Remote agent call failures that fell back to local data",
		},
		[]string{"operation"},
	)

	registry.MustRegister(e.requests, e.requestLatency, e.emailResults, e.agentFallbacks)
	return e
}

// RecordRequest records a classified assistant request and its latency.
func (e *Exporter) RecordRequest(intent string, duration time.Duration) {
	if e == nil {
		return
	}
	e.requests.WithLabelValues(intent).Inc()
	e.requestLatency.WithLabelValues(intent).Observe(duration.Seconds())
}

// RecordEmailDelivery records a delivery attempt outcome.
func (e *Exporter) RecordEmailDelivery(backend string, success bool) {
	if e == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	e.emailResults.WithLabelValues(backend, status).Inc()
}

// RecordAgentFallback records a remote call that fell back to local data.
func (e *Exporter) RecordAgentFallback(operation string) {
	if e == nil {
		return
	}
	e.agentFallbacks.WithLabelValues(operation).Inc()
}

// HTTPHandler returns the /metrics handler for the exporter registry.
func (e *Exporter) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
