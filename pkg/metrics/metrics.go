// Package metrics provides Prometheus metrics for the study manager backend.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studymanager_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studymanager_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studymanager_upstream_requests_total",
			Help: "Total number of outbound API calls by result status",
		},
		[]string{"service", "operation", "status"},
	)
	LogEntriesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "studymanager_log_entries_created_total",
			Help: "Total number of study log entries written to the database",
		},
	)
	IdleSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "studymanager_idle_seconds",
			Help: "Seconds since the root route was last requested",
		},
	)
	IdleTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studymanager_idle_transitions_total",
			Help: "Total number of idle monitor state transitions",
		},
		[]string{"state"},
	)
)

func RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordUpstreamRequest(service, operation, status string) {
	UpstreamRequestsTotal.WithLabelValues(service, operation, status).Inc()
}

func RecordLogEntryCreated() {
	LogEntriesCreated.Inc()
}

func RecordIdleTransition(state string) {
	IdleTransitions.WithLabelValues(state).Inc()
}

func UpdateIdleSeconds(idle time.Duration) {
	IdleSeconds.Set(idle.Seconds())
}
