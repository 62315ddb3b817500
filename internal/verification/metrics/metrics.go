package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Approvals prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Approvals: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "pezkuwi_citizenship_approvals_total",
			Help: "Identity claims approved as citizenship",
		}),
	}
}

func (m *Metrics) IncrementApprovals() {
	if m != nil {
		m.Approvals.Inc()
	}
}
