package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Votes             *prometheus.CounterVec
	ProposalsResolved *prometheus.CounterVec
	ResolveDuration   prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Votes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pezkuwi_votes_total",
			Help: "Votes cast by direction",
		}, []string{"vote_type"}),
		ProposalsResolved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pezkuwi_proposals_resolved_total",
			Help: "Proposals closed by the resolution sweep, by final status",
		}, []string{"status"}),
		ResolveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pezkuwi_proposal_resolve_duration_seconds",
			Help:    "Duration of one proposal resolution sweep",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementVotes(voteType string) {
	if m != nil {
		m.Votes.WithLabelValues(voteType).Inc()
	}
}

func (m *Metrics) IncrementResolved(status string) {
	if m != nil {
		m.ProposalsResolved.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) ObserveResolveDuration(seconds float64) {
	if m != nil {
		m.ResolveDuration.Observe(seconds)
	}
}
