// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for AICalls.
const (
	OutcomeSuccess        = "success"
	OutcomeNotConfigured  = "not_configured"
	OutcomeTransportError = "transport_error"
	OutcomeHTTPError      = "http_error"
	OutcomeParseError     = "parse_error"
	OutcomeUnexpected     = "unexpected_error"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "northwind_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "northwind_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "northwind_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	// Completion endpoint metrics
	AICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "northwind_ai_calls_total",
			Help: "Completion calls by outcome",
		},
		[]string{"outcome"},
	)

	AICallDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "northwind_ai_call_duration_seconds",
			Help:    "Latency of completion calls that reached the network",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80, 120},
		},
	)

	PanicsRecovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "northwind_panics_recovered_total",
			Help: "Handler panics converted to an error envelope",
		},
	)
)
