// Package metrics exposes prometheus instrumentation for billing runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

// Module provides the metrics registry bindings.
var Module = fx.Provide(New)

type Metrics struct {
	ReconcileRuns     prometheus.Counter
	InvoicesGenerated prometheus.Counter
	ReconcileErrors   prometheus.Counter
	RunDuration       prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		ReconcileRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meterbill_reconcile_runs_total",
			Help: "Billing reconciliation runs started.",
		}),
		InvoicesGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meterbill_invoices_generated_total",
			Help: "Invoices generated across all reconciliation runs.",
		}),
		ReconcileErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meterbill_reconcile_errors_total",
			Help: "Recoverable per-line errors collected during reconciliation.",
		}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "meterbill_reconcile_duration_seconds",
			Help:    "Wall time of one reconciliation run.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Observe is a nil-safe helper so services can treat metrics as optional.
func (m *Metrics) ObserveRun(invoices, errs int, seconds float64) {
	if m == nil {
		return
	}
	m.ReconcileRuns.Inc()
	m.InvoicesGenerated.Add(float64(invoices))
	m.ReconcileErrors.Add(float64(errs))
	m.RunDuration.Observe(seconds)
}
