// Package metrics exposes prometheus counters for the growth service. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "growstat"

type Metrics struct {
	growths      *prometheus.CounterVec
	growthAmount prometheus.Histogram
	adminActions *prometheus.CounterVec
	storeErrors  *prometheus.CounterVec
	commands     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		growths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "growth_attempts_total",
			Help:      "Growth attempts by outcome (allowed, denied).",
		}, []string{"outcome"}),
		growthAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "growth_amount",
			Help:      "Increment applied by successful growth actions.",
			Buckets:   []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4},
		}),
		adminActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_actions_total",
			Help:      "Privileged mutations by action and outcome.",
		}, []string{"action", "outcome"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Record store failures by operation.",
		}, []string{"op"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Dispatched commands by name and result kind.",
		}, []string{"command", "kind"}),
	}
	reg.MustRegister(m.growths, m.growthAmount, m.adminActions, m.storeErrors, m.commands)
	return m
}

func (m *Metrics) GrowthAllowed(amount float64) {
	if m == nil {
		return
	}
	m.growths.WithLabelValues("allowed").Inc()
	m.growthAmount.Observe(amount)
}

func (m *Metrics) GrowthDenied() {
	if m == nil {
		return
	}
	m.growths.WithLabelValues("denied").Inc()
}

func (m *Metrics) AdminAction(action, outcome string) {
	if m == nil {
		return
	}
	m.adminActions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) StoreError(op string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) Command(command, kind string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, kind).Inc()
}
