package warehouse

import (
	"context"
	"crypto/tls"
	"fmt"
	"reflect"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// clickhouseExecutor runs queries over the native ClickHouse protocol.
type clickhouseExecutor struct {
	conn driver.Conn
}

var _ Executor = (*clickhouseExecutor)(nil)

// newClickHouseExecutor opens a native connection and verifies it with a
// ping.
func newClickHouseExecutor(ctx context.Context, cfg Config) (*clickhouseExecutor, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	options := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Name,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": timeout,
		},
		DialTimeout: 5 * time.Second,
	}

	// ClickHouse Cloud requires TLS (port 9440).
	if cfg.Secure {
		options.TLS = &tls.Config{}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping warehouse: %w", err)
	}

	return &clickhouseExecutor{conn: conn}, nil
}

// Execute runs query and scans every row into a column-keyed map.
func (e *clickhouseExecutor) Execute(ctx context.Context, query string) (*Result, error) {
	rows, err := e.conn.Query(ctx, query)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	defer rows.Close()

	columns := rows.Columns()
	columnTypes := rows.ColumnTypes()

	result := &Result{Columns: columns}
	for rows.Next() {
		targets := scanTargets(columnTypes)
		if err := rows.Scan(targets...); err != nil {
			return nil, &QueryError{Query: query, Err: err}
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = dereference(targets[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}

	return result, nil
}

// scanTargets allocates one typed scan destination per column. The driver
// reports Nullable(T) columns with scan type *T, so their targets end up
// as pointers to pointers.
func scanTargets(columnTypes []driver.ColumnType) []any {
	targets := make([]any, len(columnTypes))
	for i, ct := range columnTypes {
		targets[i] = reflect.New(ct.ScanType()).Interface()
	}
	return targets
}

// dereference unwraps a scan target back to its value. For nullable
// columns a nil inner pointer means SQL NULL.
func dereference(target any) any {
	v := reflect.ValueOf(target).Elem()
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

func (e *clickhouseExecutor) Ping(ctx context.Context) error {
	return e.conn.Ping(ctx)
}

func (e *clickhouseExecutor) Close() error {
	return e.conn.Close()
}
