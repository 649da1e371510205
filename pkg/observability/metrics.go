package observability

import (
	"net/http"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for widget activity.
type Metrics struct {
	registry  *prometheus.Registry
	created   *prometheus.CounterVec
	commits   *prometheus.CounterVec
	warnings  *prometheus.CounterVec
	signals   *prometheus.CounterVec
	selection *prometheus.HistogramVec
	payoff    *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bombrisk_gauges_created_total",
			Help: "Total number of gauges built, by method.",
		}, []string{"method"}),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bombrisk_commits_total",
			Help: "Total number of accepted commits, by method and result.",
		}, []string{"method", "result"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bombrisk_commit_warnings_total",
			Help: "Total number of rejected commit attempts, by method.",
		}, []string{"method"}),
		signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bombrisk_signals_total",
			Help: "Total number of lifecycle signals delivered, by signal.",
		}, []string{"signal"}),
		selection: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bombrisk_committed_selection",
			Help:    "Committed selection sizes, by method.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}, []string{"method"}),
		payoff: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bombrisk_payoff",
			Help:    "Committed payoffs, by method.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"method"}),
	}
	m.registry.MustRegister(m.created, m.commits, m.warnings, m.signals, m.selection, m.payoff)
	return m
}

// Registry exposes the underlying registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGaugeCreated: func(e *domain.GaugeEvent) {
			m.created.WithLabelValues(e.Method).Inc()
		},
		OnCommit: func(e *domain.GaugeEvent) {
			result := "lose"
			if e.Outcome != nil && e.Outcome.IsWinner {
				result = "win"
			}
			m.commits.WithLabelValues(e.Method, result).Inc()
			m.selection.WithLabelValues(e.Method).Observe(float64(e.Selection))
			if e.Outcome != nil {
				m.payoff.WithLabelValues(e.Method).Observe(e.Outcome.Payoff.InexactFloat64())
			}
		},
		OnWarning: func(e *domain.GaugeEvent) {
			m.warnings.WithLabelValues(e.Method).Inc()
		},
		OnSignal: func(e *domain.GaugeEvent) {
			m.signals.WithLabelValues(e.Signal).Inc()
		},
	}
}
