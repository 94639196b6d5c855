package pathcount

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics guarda os contadores Prometheus do middleware.
// Sem label por path: a cardinalidade seria ilimitada. Nil é no-op.
type Metrics struct {
	increments  prometheus.Counter
	storeFaults prometheus.Counter
	fallbacks   prometheus.Counter
}

// NewMetrics registra as métricas em reg. reg nil cria sem registrar.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		increments: f.NewCounter(prometheus.CounterOpts{
			Namespace: "pathcount",
			Name:      "increments_total",
			Help:      "Total number of successful counter increments",
		}),
		storeFaults: f.NewCounter(prometheus.CounterOpts{
			Namespace: "pathcount",
			Name:      "store_faults_total",
			Help:      "Total number of fatal counter store faults",
		}),
		fallbacks: f.NewCounter(prometheus.CounterOpts{
			Namespace: "pathcount",
			Name:      "fallbacks_total",
			Help:      "Total number of responses produced by the fallback branch",
		}),
	}
}

func (m *Metrics) incIncrements() {
	if m == nil {
		return
	}
	m.increments.Inc()
}

func (m *Metrics) incStoreFaults() {
	if m == nil {
		return
	}
	m.storeFaults.Inc()
}

func (m *Metrics) incFallbacks() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}
