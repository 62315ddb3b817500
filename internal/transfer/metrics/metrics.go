package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for the transfers counter.
const (
	OutcomeCompleted    = "completed"
	OutcomeInsufficient = "insufficient_balance"
	OutcomeFailed       = "failed"
)

type Metrics struct {
	Transfers *prometheus.CounterVec
	Volume    *prometheus.CounterVec
	LockWait  prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transfers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pezkuwi_transfers_total",
			Help: "Transfer attempts by token type and outcome",
		}, []string{"token_type", "outcome"}),
		Volume: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pezkuwi_transfer_volume_total",
			Help: "Completed transfer volume in whole tokens",
		}, []string{"token_type"}),
		LockWait: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pezkuwi_transfer_lock_wait_seconds",
			Help:    "Time spent waiting for the sender wallet lock",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}

func (m *Metrics) ObserveTransfer(token, outcome string) {
	if m != nil {
		m.Transfers.WithLabelValues(token, outcome).Inc()
	}
}

// AddVolume records minor units as whole tokens.
func (m *Metrics) AddVolume(token string, minorUnits int64) {
	if m != nil {
		m.Volume.WithLabelValues(token).Add(float64(minorUnits) / 100)
	}
}

func (m *Metrics) ObserveLockWait(seconds float64) {
	if m != nil {
		m.LockWait.Observe(seconds)
	}
}
