package vault

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vault-reconciler/core/warehouse"
)

// Mismatch is one comparison's exact difference count plus a bounded,
// annotated sample of the missing records.
type Mismatch struct {
	Count   int64
	Records []map[string]any
}

// MismatchFinder runs set-difference queries and captures samples of the
// rows they return.
type MismatchFinder struct {
	runner     queryRunner
	sampleSize int
	runID      string
}

// NewMismatchFinder creates a finder. Captured samples are capped at
// sampleSize records per comparison.
func NewMismatchFinder(exec warehouse.Executor, timeout time.Duration, sampleSize int, runID string) *MismatchFinder {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &MismatchFinder{
		runner:     queryRunner{exec: exec, timeout: timeout},
		sampleSize: sampleSize,
		runID:      runID,
	}
}

// Find runs diffQuery twice: once wrapped in a COUNT for the exact
// difference size, once capped at the sample limit for the records
// themselves. Each sampled record is annotated with the entity's table
// metadata; when the difference exceeds the cap, a NOTE record saying so is
// appended after the samples.
//
// hubTable is passed explicitly because link entities compare against one
// hub at a time.
func (f *MismatchFinder) Find(ctx context.Context, e *EntityConfig, transition, hubTable, diffQuery string) (*Mismatch, error) {
	diffQuery = strings.TrimSpace(diffQuery)

	count, err := f.runner.scalar(ctx, countWrap(diffQuery))
	if err != nil {
		return nil, err
	}

	result, err := f.runner.run(ctx, limitWrap(diffQuery, f.sampleSize))
	if err != nil {
		return nil, err
	}

	capturedAt := time.Now().UTC().Format(time.RFC3339)
	records := make([]map[string]any, 0, len(result.Rows)+1)
	for _, row := range result.Rows {
		record := make(map[string]any, len(row)+2)
		for col, val := range row {
			record[col] = val
		}
		record["__metadata"] = map[string]any{
			"source_table":    e.SourceTable,
			"hub_table":       hubTable,
			"satellite_table": e.SatelliteTable,
			"bizview_table":   e.BizviewTable,
			"record_type":     "missing",
			"layer":           transition,
			"run_id":          f.runID,
			"captured_at":     capturedAt,
		}
		record["__record_separator"] = true
		records = append(records, record)
	}

	if count > int64(f.sampleSize) {
		records = append(records, map[string]any{
			"NOTE":            fmt.Sprintf("Showing %d of %d total missing records", f.sampleSize, count),
			"source_table":    e.SourceTable,
			"hub_table":       hubTable,
			"satellite_table": e.SatelliteTable,
			"bizview_table":   e.BizviewTable,
		})
	}

	return &Mismatch{Count: count, Records: records}, nil
}
