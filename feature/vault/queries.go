package vault

import (
	"fmt"
	"strings"
)

// Transition names identify the adjacent layer pairs. They key the
// mismatch samples and appear in record metadata.
const (
	TransitionSourceToHub        = "source_to_hub"
	TransitionHubToLink          = "hub_to_link"
	TransitionHubToSatellite     = "hub_to_satellite"
	TransitionLinkToSatellite    = "link_to_satellite"
	TransitionSatelliteToBizview = "satellite_to_bizview"
)

// countQuery counts all rows of a table.
func countQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}

// sourceCountQuery counts live source rows, excluding soft-deleted ones
// when the entity has a soft-delete flag.
func sourceCountQuery(e *EntityConfig) string {
	if e.DeletedColumn == "" {
		return countQuery(e.SourceTable)
	}
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = FALSE", e.SourceTable, e.DeletedColumn)
}

// deletedCountQuery counts soft-deleted source rows.
func deletedCountQuery(e *EntityConfig) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = TRUE", e.SourceTable, e.DeletedColumn)
}

// countWrap counts the rows a difference query would return.
func countWrap(query string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS diff", query)
}

// limitWrap caps the rows a difference query returns.
func limitWrap(query string, limit int) string {
	return fmt.Sprintf("SELECT * FROM (%s) AS sample LIMIT %d", query, limit)
}

// exceptQuery builds the set-difference between two projections. Both sides
// must project the same number of columns.
func exceptQuery(entity, transition string, upstreamCols []string, upstreamFrom string, downstreamCols []string, downstreamFrom string) (string, error) {
	if len(upstreamCols) != len(downstreamCols) {
		return "", &SchemaMismatchError{
			Entity:         entity,
			Transition:     transition,
			UpstreamCols:   len(upstreamCols),
			DownstreamCols: len(downstreamCols),
		}
	}
	return fmt.Sprintf("SELECT %s FROM %s EXCEPT SELECT %s FROM %s",
		strings.Join(upstreamCols, ", "), upstreamFrom,
		strings.Join(downstreamCols, ", "), downstreamFrom), nil
}

// liveSourceFrom returns the source table reference for difference queries,
// filtered to live rows when the entity soft-deletes.
func liveSourceFrom(e *EntityConfig) string {
	if e.DeletedColumn == "" {
		return e.SourceTable
	}
	return fmt.Sprintf("%s WHERE %s = FALSE", e.SourceTable, e.DeletedColumn)
}

// hubSourceToHubQuery finds source records missing from the hub. It compares
// the business key plus the configured content columns against the hub
// joined to its current satellite, so key drift and content drift both
// surface.
func hubSourceToHubQuery(e *EntityConfig) (string, error) {
	upstream := append([]string{e.SourceKey}, e.ColumnsToCompare...)
	downstream := append([]string{"h." + e.HubKey}, e.ColumnsToCompare...)
	downstreamFrom := fmt.Sprintf("%s h JOIN %s s ON h.%s = s.%s",
		e.HubTable, e.SatelliteTable, e.SatelliteHashKey, e.SatelliteHashKey)

	return exceptQuery(e.DisplayName(), TransitionSourceToHub,
		upstream, liveSourceFrom(e),
		downstream, downstreamFrom)
}

// hubToSatelliteQuery finds hub hash keys with no current satellite row.
func hubToSatelliteQuery(e *EntityConfig) (string, error) {
	cols := []string{e.SatelliteHashKey}
	return exceptQuery(e.DisplayName(), TransitionHubToSatellite,
		cols, e.HubTable,
		cols, e.SatelliteTable)
}

// hubSatelliteToBizviewQuery finds satellite records whose business key never
// reached the bizview. The satellite is joined back to the hub to recover the
// business key the bizview is keyed on.
func hubSatelliteToBizviewQuery(e *EntityConfig) (string, error) {
	upstreamFrom := fmt.Sprintf("%s s JOIN %s h ON s.%s = h.%s",
		e.SatelliteTable, e.HubTable, e.SatelliteHashKey, e.SatelliteHashKey)

	return exceptQuery(e.DisplayName(), TransitionSatelliteToBizview,
		[]string{"h." + e.HubKey}, upstreamFrom,
		[]string{e.BizviewKey}, e.BizviewTable)
}

// linkSourceToHubQuery finds source keys missing from the i-th hub of a link
// entity. Each hub gets its own comparison.
func linkSourceToHubQuery(e *EntityConfig, i int) (string, error) {
	cols := []string{e.HubKeys[i]}
	return exceptQuery(e.DisplayName(), TransitionSourceToHub,
		cols, liveSourceFrom(e),
		cols, e.HubTables[i])
}

// linkHubToLinkQuery finds hash keys of the i-th hub missing from the link
// table.
func linkHubToLinkQuery(e *EntityConfig, i int) (string, error) {
	cols := []string{e.LinkHashKeys[i]}
	return exceptQuery(e.DisplayName(), TransitionHubToLink,
		cols, e.HubTables[i],
		cols, e.LinkTable)
}

// linkToSatelliteQuery finds link hash keys with no current satellite row.
func linkToSatelliteQuery(e *EntityConfig) (string, error) {
	cols := []string{e.SatelliteHashKey}
	return exceptQuery(e.DisplayName(), TransitionLinkToSatellite,
		cols, e.LinkTable,
		cols, e.SatelliteTable)
}

// linkSatelliteToBizviewQuery finds satellite hash keys missing from the
// bizview of a link entity.
func linkSatelliteToBizviewQuery(e *EntityConfig) (string, error) {
	return exceptQuery(e.DisplayName(), TransitionSatelliteToBizview,
		[]string{e.SatelliteHashKey}, e.SatelliteTable,
		[]string{e.BizviewKey}, e.BizviewTable)
}
