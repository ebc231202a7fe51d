package vault

import (
	"context"
	"fmt"
	"time"

	"vault-reconciler/core/utils"
	"vault-reconciler/core/warehouse"
)

// queryRunner executes warehouse queries with a per-query timeout.
type queryRunner struct {
	exec    warehouse.Executor
	timeout time.Duration
}

func (r *queryRunner) run(ctx context.Context, query string) (*warehouse.Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.exec.Execute(ctx, query)
}

// scalar runs a query expected to return a single numeric value, like a
// COUNT(*).
func (r *queryRunner) scalar(ctx context.Context, query string) (int64, error) {
	result, err := r.run(ctx, query)
	if err != nil {
		return 0, err
	}
	if len(result.Rows) == 0 || len(result.Columns) == 0 {
		return 0, fmt.Errorf("scalar query returned no rows")
	}
	return utils.ToInt64(result.Rows[0][result.Columns[0]]), nil
}

// LayerCounts holds the per-layer row counts for one entity. Link is only
// meaningful for link entities.
type LayerCounts struct {
	Source    int64
	Deleted   int64
	Hub       int64
	Link      int64
	Satellite int64
	Bizview   int64
}

// LayerCounter issues the row-count queries of a run.
type LayerCounter struct {
	runner queryRunner
}

// NewLayerCounter creates a counter over an executor. A zero timeout leaves
// queries bounded only by the caller's context.
func NewLayerCounter(exec warehouse.Executor, timeout time.Duration) *LayerCounter {
	return &LayerCounter{runner: queryRunner{exec: exec, timeout: timeout}}
}

// CountSource counts live source rows, honoring the soft-delete flag.
func (c *LayerCounter) CountSource(ctx context.Context, e *EntityConfig) (int64, error) {
	return c.runner.scalar(ctx, sourceCountQuery(e))
}

// CountDeleted counts soft-deleted source rows. Entities without a
// soft-delete flag report zero without issuing a query.
func (c *LayerCounter) CountDeleted(ctx context.Context, e *EntityConfig) (int64, error) {
	if e.DeletedColumn == "" {
		return 0, nil
	}
	return c.runner.scalar(ctx, deletedCountQuery(e))
}

// CountLayer counts all rows of one layer table.
func (c *LayerCounter) CountLayer(ctx context.Context, table string) (int64, error) {
	return c.runner.scalar(ctx, countQuery(table))
}
