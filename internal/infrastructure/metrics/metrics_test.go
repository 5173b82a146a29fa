package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Replace global default registry to allow test inspection.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	if m.TransactionsCreated == nil || m.TransactionsPosted == nil || m.AccountsOpened == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestCountersIncrement(t *testing.T) {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	m.TransactionsApproved.Inc()
	m.TransactionsPosted.Inc()
	m.TransactionsPosted.Inc()
	m.TransactionsCreated.WithLabelValues("PURCHASE").Inc()

	if got := testutil.ToFloat64(m.TransactionsApproved); got != 1 {
		t.Errorf("approved counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.TransactionsPosted); got != 2 {
		t.Errorf("posted counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.TransactionsCreated.WithLabelValues("PURCHASE")); got != 1 {
		t.Errorf("created counter = %v, want 1", got)
	}
}
