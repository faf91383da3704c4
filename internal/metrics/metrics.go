// Package metrics exposes poll loop outcomes and the last rendered queue
// counters as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "minionboard"

// Result label values for the cycle counter.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds the collectors of one dashboard instance.
//
// Each Metrics owns its registry so several instances (and tests) never
// collide on the global default registerer.
type Metrics struct {
	registry      *prometheus.Registry
	cycles        *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	stats         *prometheus.GaugeVec
	uptime        prometheus.Gauge
	lastSuccess   prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		cycles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "poll_cycles_total",
				Help:      "Total number of stats poll cycles by result",
			},
			[]string{"result"},
		),
		fetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Duration of stats endpoint requests",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
			},
		),
		stats: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stats",
				Help:      "Last reported queue counters by field",
			},
			[]string{"field"},
		),
		uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "queue_uptime_seconds",
				Help:      "Last reported uptime of the queue backend",
			},
		),
		lastSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful stats poll",
			},
		),
	}
}

// ObserveCycle records the outcome of one poll cycle.
func (m *Metrics) ObserveCycle(ok bool, latency time.Duration, at time.Time) {
	m.fetchDuration.Observe(latency.Seconds())
	if !ok {
		m.cycles.WithLabelValues(ResultFailure).Inc()
		return
	}
	m.cycles.WithLabelValues(ResultSuccess).Inc()
	m.lastSuccess.Set(float64(at.Unix()))
}

// SetCount sets the gauge for a single stats field.
func (m *Metrics) SetCount(field string, value int64) {
	m.stats.WithLabelValues(field).Set(float64(value))
}

// ResetCounts drops every stats field gauge, so a field the next payload
// leaves out disappears instead of keeping its old value.
func (m *Metrics) ResetCounts() {
	m.stats.Reset()
}

// SetUptime sets the backend uptime gauge.
func (m *Metrics) SetUptime(seconds float64) {
	m.uptime.Set(seconds)
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
