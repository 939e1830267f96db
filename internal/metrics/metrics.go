// Package metrics provides the hub's Prometheus metrics.
package metrics

import (
	"github.com/ethanbaker/influencer-hub/pkg/importer"
	"github.com/ethanbaker/influencer-hub/pkg/reminders"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const NAMESPACE = "hub"

var (
	// ImportRowsTotal counts external rows seen by imports.
	// Labels: result (imported, flagged, skipped)
	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Total number of external spreadsheet rows processed by imports",
		},
		[]string{"result"},
	)

	// ImportSourceErrorsTotal counts external spreadsheets that could not be read.
	ImportSourceErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Subsystem: "import",
			Name:      "source_errors_total",
			Help:      "Total number of external spreadsheets that could not be read",
		},
	)

	// RemindersGenerated holds the size of the last reminder computation.
	// Labels: priority (high, medium, low)
	RemindersGenerated = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: NAMESPACE,
			Subsystem: "reminders",
			Name:      "generated",
			Help:      "Number of reminders produced by the last computation",
		},
		[]string{"priority"},
	)

	// DigestDeliveriesTotal counts reminder digest runs.
	// Labels: result (success, error, empty)
	DigestDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Subsystem: "digest",
			Name:      "deliveries_total",
			Help:      "Total number of reminder digest runs by outcome",
		},
		[]string{"result"},
	)

	// StoreOperationsTotal counts record store calls.
	// Labels: backend, op, result (success, error)
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of record store operations",
		},
		[]string{"backend", "op", "result"},
	)
)

// RecordImport updates import metrics from a mapping result
func RecordImport(result *importer.Result) {
	flagged := 0
	for _, row := range result.FlaggedRows {
		if row.Error != "" {
			ImportSourceErrorsTotal.Inc()
			continue
		}
		flagged++
	}

	ImportRowsTotal.WithLabelValues("imported").Add(float64(len(result.Campaigns)))
	ImportRowsTotal.WithLabelValues("flagged").Add(float64(flagged))
	ImportRowsTotal.WithLabelValues("skipped").Add(float64(result.Skipped))
}

// RecordReminders replaces the reminder gauges with the counts from summary
func RecordReminders(summary reminders.Summary) {
	for _, p := range []reminders.Priority{reminders.PriorityHigh, reminders.PriorityMedium, reminders.PriorityLow} {
		RemindersGenerated.WithLabelValues(string(p)).Set(float64(summary.ByPriority[p]))
	}
}

// RecordStoreOperation counts a store call by outcome
func RecordStoreOperation(backend, op string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	StoreOperationsTotal.WithLabelValues(backend, op, result).Inc()
}
