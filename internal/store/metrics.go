package store

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds per-operation request instrumentation for a Client.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the client metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "urm",
			Subsystem: "store",
			Name:      "requests_total",
			Help:      "Record store requests by operation and response code.",
		}, []string{"operation", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "urm",
			Subsystem: "store",
			Name:      "request_duration_seconds",
			Help:      "Record store request latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}
