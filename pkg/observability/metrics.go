package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics handles application metrics and monitoring
type Metrics struct {
	BroadcastsSent      prometheus.Counter
	BroadcastFailures   prometheus.Counter
	StaleUpdatesDropped prometheus.Counter
	RateLimitDenials    prometheus.Counter
	ActiveConnections   prometheus.Gauge
	CommandLatency      prometheus.Histogram
}

// NewMetrics creates and registers the metric set on the given registerer.
// Pass prometheus.NewRegistry() in tests to keep registrations isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BroadcastsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "collabboard",
			Name:      "broadcasts_sent_total",
			Help:      "Realtime events broadcast to board channels.",
		}),
		BroadcastFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "collabboard",
			Name:      "broadcast_failures_total",
			Help:      "Broadcasts that could not be delivered to the channel.",
		}),
		StaleUpdatesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "collabboard",
			Name:      "stale_updates_dropped_total",
			Help:      "Remote object updates rejected by the version rule.",
		}),
		RateLimitDenials: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "collabboard",
			Name:      "rate_limit_denials_total",
			Help:      "AI commands rejected by the per-user rate limiter.",
		}),
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "collabboard",
			Name:      "active_connections",
			Help:      "Currently connected websocket clients.",
		}),
		CommandLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "collabboard",
			Name:      "ai_command_latency_seconds",
			Help:      "End-to-end latency of AI command execution.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.BroadcastsSent,
			m.BroadcastFailures,
			m.StaleUpdatesDropped,
			m.RateLimitDenials,
			m.ActiveConnections,
			m.CommandLatency,
		)
	}
	return m
}

// NewNopMetrics returns an unregistered metric set for tests and tools that
// do not expose a scrape endpoint.
func NewNopMetrics() *Metrics {
	return NewMetrics(nil)
}
