// Package warehouse provides read-only SQL access to the warehouse that
// hosts the Data Vault layers.
//
// A single Executor interface abstracts over the supported backends:
//
//   - MySQL, through GORM (the default)
//   - PostgreSQL, through a pgx connection pool
//   - ClickHouse, through the native protocol client
//
// Executors return rows as column-keyed maps so callers can run arbitrary
// projections without declaring row structs. Query failures are wrapped in
// QueryError, which keeps the offending SQL for diagnostics.
//
// An executor is created once per run via NewExecutor and shared across
// entities; all implementations are safe for concurrent use.
package warehouse
