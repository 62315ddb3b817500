package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the account module.
type Metrics struct {
	AccountsCreated prometheus.Counter
	Logins          *prometheus.CounterVec
}

// New registers the account metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AccountsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "pezkuwi_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pezkuwi_logins_total",
			Help: "Wallet address logins by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncrementAccountsCreated() {
	if m != nil {
		m.AccountsCreated.Inc()
	}
}

func (m *Metrics) IncrementLogin(outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(outcome).Inc()
	}
}
