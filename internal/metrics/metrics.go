package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"investconnect/internal/store"
)

// Metrics counts dispatched store actions on its own registry.
type Metrics struct {
	registry *prometheus.Registry
	actions  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "investconnect_store_actions_total",
			Help: "Store actions applied, by slice and action type.",
		}, []string{"slice", "action"}),
	}
	m.registry.MustRegister(m.actions)
	return m
}

// Observe is a store.Listener.
func (m *Metrics) Observe(actionType string, _ store.State) {
	m.actions.WithLabelValues(store.Slice(actionType), actionType).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
