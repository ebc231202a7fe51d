package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_reconciler_runs_total",
			Help: "Total number of reconciliation runs",
		},
		[]string{"trigger", "status"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vault_reconciler_run_duration_seconds",
			Help:    "Duration of reconciliation runs",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~2048s (~34 minutes)
		},
	)

	EntitiesValidated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_reconciler_entities_validated_total",
			Help: "Total number of entity validations",
		},
		[]string{"status"},
	)

	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_reconciler_warehouse_queries_total",
			Help: "Total number of warehouse queries",
		},
		[]string{"status"},
	)

	QueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vault_reconciler_warehouse_query_duration_seconds",
			Help:    "Duration of warehouse queries",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 0.01s to ~41s
		},
	)

	RowsLost = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vault_reconciler_rows_lost",
			Help: "Rows lost per entity in the latest run",
		},
		[]string{"entity"},
	)
)
