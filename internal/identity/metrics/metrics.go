// Package metrics holds the Prometheus metrics of the identity service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the identity service counters and histograms.
type Metrics struct {
	MintsTotal          prometheus.Counter
	MintFailuresTotal   *prometheus.CounterVec
	UpdatesTotal        prometheus.Counter
	UpdateFailuresTotal *prometheus.CounterVec
	MintDuration        prometheus.Histogram
	UpdateDuration      prometheus.Histogram
}

// New creates and registers all identity metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		MintsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "identity_mints_total",
			Help: "Total number of credentials minted",
		}),
		MintFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_mint_failures_total",
			Help: "Mint attempts rejected, by error code",
		}, []string{"reason"}),
		UpdatesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "identity_updates_total",
			Help: "Total number of credential updates",
		}),
		UpdateFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_update_failures_total",
			Help: "Update attempts rejected, by error code",
		}, []string{"reason"}),
		MintDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "identity_mint_duration_seconds",
			Help:    "Latency of mint invocations",
			Buckets: prometheus.DefBuckets,
		}),
		UpdateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "identity_update_duration_seconds",
			Help:    "Latency of update invocations",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveMint records one mint outcome.
func (m *Metrics) ObserveMint(start time.Time, reason string) {
	if m == nil {
		return
	}
	m.MintDuration.Observe(time.Since(start).Seconds())
	if reason == "" {
		m.MintsTotal.Inc()
		return
	}
	m.MintFailuresTotal.WithLabelValues(reason).Inc()
}

// ObserveUpdate records one update outcome.
func (m *Metrics) ObserveUpdate(start time.Time, reason string) {
	if m == nil {
		return
	}
	m.UpdateDuration.Observe(time.Since(start).Seconds())
	if reason == "" {
		m.UpdatesTotal.Inc()
		return
	}
	m.UpdateFailuresTotal.WithLabelValues(reason).Inc()
}
