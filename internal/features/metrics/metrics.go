package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Checks *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Checks: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "pezkuwi_feature_checks_total",
			Help: "Feature access checks by tier and result",
		}, []string{"tier", "granted"}),
	}
}

func (m *Metrics) IncrementChecks(tier string, granted bool) {
	if m != nil {
		m.Checks.WithLabelValues(tier, strconv.FormatBool(granted)).Inc()
	}
}
