package warehouse

import (
	"context"
	"fmt"
	"strings"
)

// Result holds the rows returned by a warehouse query.
type Result struct {
	// Columns lists the result columns in select order.
	Columns []string
	// Rows holds one column-keyed map per returned row.
	Rows []map[string]any
}

// Executor runs read-only SQL against a single warehouse backend.
type Executor interface {
	// Execute runs query and returns every resulting row.
	Execute(ctx context.Context, query string) (*Result, error)
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the underlying connection pool.
	Close() error
}

// QueryError reports a failed warehouse query. The full query text is
// retained for diagnostics but truncated in the message so log lines stay
// readable.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v (query: %s)", e.Err, truncateQuery(e.Query))
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func truncateQuery(q string) string {
	q = strings.Join(strings.Fields(q), " ")
	if len(q) > 120 {
		return q[:117] + "..."
	}
	return q
}

// NewExecutor opens a connection pool for the configured driver and
// verifies it with a ping. The caller owns the returned executor and must
// Close it when done.
func NewExecutor(ctx context.Context, cfg Config) (Executor, error) {
	switch strings.ToLower(cfg.Driver) {
	case "mysql", "":
		return newMySQLExecutor(ctx, cfg)
	case "postgres", "postgresql":
		return newPostgresExecutor(ctx, cfg)
	case "clickhouse":
		return newClickHouseExecutor(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported warehouse driver %q", cfg.Driver)
	}
}
