// Package metrics declares the Prometheus instrumentation for the vault
// reconciler.
//
// All collectors are registered on the default registry via promauto and
// exposed by the metrics listener started in serve mode. Run- and
// entity-level counters are incremented by the reconciliation engine; the
// per-entity rows-lost gauge reflects the most recent run.
package metrics
