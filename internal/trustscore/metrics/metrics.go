package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ScoreUpdates prometheus.Counter
	Scores       prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ScoreUpdates: f.NewCounter(prometheus.CounterOpts{
			Name: "pezkuwi_trust_score_updates_total",
			Help: "Stored trust scores rewritten after recomputation",
		}),
		Scores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pezkuwi_trust_score",
			Help:    "Distribution of computed trust scores",
			Buckets: []float64{100, 150, 250, 500, 600, 800, 1000, 2000},
		}),
	}
}

func (m *Metrics) IncrementScoreUpdates() {
	if m != nil {
		m.ScoreUpdates.Inc()
	}
}

func (m *Metrics) ObserveScore(score int) {
	if m != nil {
		m.Scores.Observe(float64(score))
	}
}
