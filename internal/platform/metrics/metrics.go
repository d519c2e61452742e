package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	VerdictsTotal *prometheus.CounterVec
	GateDuration  prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		VerdictsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gravity_gate_verdicts_total",
			Help: "Security gate verdicts by route and outcome (secure or failure code)",
		}, []string{"route", "outcome"}),
		GateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gravity_gate_duration_seconds",
			Help:    "Wall time spent inside the security gate per request",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveVerdict records one gate outcome. Nil receivers are allowed so unit
// tests can run the gate without touching the default registry.
func (m *Metrics) ObserveVerdict(route, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.VerdictsTotal.WithLabelValues(route, outcome).Inc()
	m.GateDuration.Observe(elapsed.Seconds())
}
