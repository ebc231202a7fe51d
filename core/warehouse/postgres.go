package warehouse

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresExecutor runs queries through a pgx connection pool.
type postgresExecutor struct {
	pool *pgxpool.Pool
}

var _ Executor = (*postgresExecutor)(nil)

// newPostgresExecutor connects to Postgres and verifies the pool with a
// ping bounded by the configured timeout.
func newPostgresExecutor(ctx context.Context, cfg Config) (*postgresExecutor, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	sslMode := "disable"
	if cfg.Secure {
		sslMode = "require"
	}

	connString := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=%d",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password),
		cfg.Host, cfg.Port, cfg.Name, sslMode, timeout)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping warehouse: %w", err)
	}

	return &postgresExecutor{pool: pool}, nil
}

// Execute runs query and maps each row by field name.
func (e *postgresExecutor) Execute(ctx context.Context, query string) (*Result, error) {
	rows, err := e.pool.Query(ctx, query)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = string(fd.Name)
	}

	result := &Result{Columns: columns}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, &QueryError{Query: query, Err: err}
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}

	return result, nil
}

func (e *postgresExecutor) Ping(ctx context.Context) error {
	return e.pool.Ping(ctx)
}

func (e *postgresExecutor) Close() error {
	e.pool.Close()
	return nil
}
