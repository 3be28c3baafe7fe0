package metricsvc

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/masomo-apply/core"
)

// Metrics counts persistence attempts and exports. It is a core.PersistObserver.
type Metrics struct {
	Registry *prometheus.Registry

	persists *prometheus.CounterVec
	exports  *prometheus.CounterVec
}

var _ core.PersistObserver = (*Metrics)(nil)

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		persists: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "masomo",
			Name:      "store_persist_total",
			Help:      "Store persistence attempts by key and result.",
		}, []string{"key", "result"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "masomo",
			Name:      "pdf_exports_total",
			Help:      "PDF exports by kind and result.",
		}, []string{"kind", "result"}),
	}
	m.Registry.MustRegister(m.persists, m.exports)
	return m
}

func (m *Metrics) Persisted(key string, err error) {
	m.persists.WithLabelValues(key, result(err)).Inc()
}

func (m *Metrics) Exported(kind string, err error) {
	m.exports.WithLabelValues(kind, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
