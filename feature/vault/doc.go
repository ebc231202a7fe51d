// Package vault validates that records survive the hops of a Data Vault
// warehouse: from the source layer into hubs (and links), onward into the
// current satellites, and finally into the business views consumers read.
//
// # Model
//
// Every validated entity names one table per layer. Hub entities carry a
// single business key from source to hub; link entities relate two or more
// hubs and track their combination through a link table. Both variants end
// in a current satellite and a bizview. Sources may soft-delete rows via a
// boolean flag column; flagged rows are excluded from the comparison and
// reported separately.
//
// # Flow
//
// The Engine walks the configured entities and, for each one, counts the
// rows per layer, runs an EXCEPT set-difference per adjacent layer pair,
// and captures a bounded sample of the missing records. The LayerCounter
// issues the count queries, the MismatchFinder runs the differences, and
// the compiler folds both into one ValidationResult row per entity. A
// failing entity produces a FAILED row and never aborts the run.
//
// # Serving
//
// The Service caches the most recent Report with a TTL and collapses
// concurrent run triggers into a single engine run. The Handler exposes
// runs, the cached report, and the entity list over HTTP.
package vault
