package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for domain events.
type Metrics struct {
	AccountsCreated     prometheus.Counter
	AccountsDeleted     prometheus.Counter
	DonationsRecorded   prometheus.Counter
	DonationsAnonymized prometheus.Counter
}

// New creates and registers all counters on the default registry. Call it
// once per process.
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "medishare_accounts_created_total",
			Help: "Total number of accounts registered",
		}),
		AccountsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "medishare_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),
		DonationsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "medishare_donations_recorded_total",
			Help: "Total number of donations recorded",
		}),
		DonationsAnonymized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "medishare_donations_anonymized_total",
			Help: "Total number of donation records detached from a deleted account",
		}),
	}
}

// The increment helpers tolerate a nil receiver so tests can run services
// without a registry.

func (m *Metrics) IncrementAccountsCreated() {
	if m == nil {
		return
	}
	m.AccountsCreated.Inc()
}

func (m *Metrics) IncrementAccountsDeleted() {
	if m == nil {
		return
	}
	m.AccountsDeleted.Inc()
}

func (m *Metrics) IncrementDonationsRecorded() {
	if m == nil {
		return
	}
	m.DonationsRecorded.Inc()
}

func (m *Metrics) AddDonationsAnonymized(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.DonationsAnonymized.Add(float64(n))
}
