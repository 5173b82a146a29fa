package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsCreated  *prometheus.CounterVec
	TransactionsApproved prometheus.Counter
	TransactionsDenied   prometheus.Counter
	TransactionsPosted   prometheus.Counter
	TransactionsDeleted  prometheus.Counter
	TransactionAmount    prometheus.Histogram
	ProcessDuration      prometheus.Histogram

	// Account metrics
	AccountsOpened prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transaction metrics
		TransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goteller_transactions_created_total",
				Help: "Total number of transactions created by type",
			},
			[]string{"type"},
		),
		TransactionsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goteller_transactions_approved_total",
			Help: "Total number of transactions approved",
		}),
		TransactionsDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goteller_transactions_denied_total",
			Help: "Total number of transactions denied",
		}),
		TransactionsPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goteller_transactions_posted_total",
			Help: "Total number of transactions posted",
		}),
		TransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goteller_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "goteller_transaction_amount_cents",
			Help:    "Transaction amounts in the smallest currency unit",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		ProcessDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "goteller_process_duration_seconds",
			Help:    "Duration of transaction processing",
			Buckets: prometheus.DefBuckets,
		}),

		// Account metrics
		AccountsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goteller_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
	}
}
