package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"vault-reconciler/core/storage"
	"vault-reconciler/core/utils"

	"github.com/minio/minio-go/v7"
)

// Entity kinds. A hub entity carries one business key from source to hub;
// a link entity relates two or more hubs through a link table.
const (
	KindHub  = "hub"
	KindLink = "link"
)

// EntityConfig describes one validated entity: its table per vault layer
// and the key columns that connect them.
type EntityConfig struct {
	// Name identifies the entity in reports and logs. Defaults to the last
	// dot-separated segment of SourceTable.
	Name string `json:"name,omitempty"`

	// Kind is "hub" or "link". Empty means hub.
	Kind string `json:"type,omitempty"`

	// SourceTable is the fully qualified source layer table.
	SourceTable string `json:"source_table"`

	// SourceKey is the business key column on the source table. Hub entities
	// compare it against HubKey; link entities use HubKeys instead.
	SourceKey string `json:"source_key,omitempty"`

	// HubTable and HubKey apply to hub entities only.
	HubTable string `json:"hub_table,omitempty"`
	HubKey   string `json:"hub_key,omitempty"`

	// HubTables, HubKeys, LinkTable and LinkHashKeys apply to link entities
	// only. HubKeys[i] is the source column feeding HubTables[i], and
	// LinkHashKeys[i] is the hash key shared between HubTables[i] and
	// LinkTable. All three slices must have equal length.
	HubTables    []string `json:"hub_tables,omitempty"`
	HubKeys      []string `json:"hub_keys,omitempty"`
	LinkTable    string   `json:"link_table,omitempty"`
	LinkHashKeys []string `json:"link_hash_keys,omitempty"`

	// SatelliteTable is the current satellite, SatelliteHashKey the hash key
	// it shares with the hub (or link).
	SatelliteTable   string `json:"satellite_table"`
	SatelliteHashKey string `json:"satellite_hash_key"`

	// BizviewTable is the consumer-facing view, BizviewKey its business key.
	BizviewTable string `json:"bizview_table"`
	BizviewKey   string `json:"bizview_key"`

	// DeletedColumn names the boolean soft-delete flag on the source table.
	// Empty means the source has no soft deletes.
	DeletedColumn string `json:"deleted_column,omitempty"`

	// ColumnsToCompare lists content columns included in the source-to-hub
	// comparison, in projection order. May be empty to compare keys only.
	ColumnsToCompare []string `json:"columns_to_compare,omitempty"`

	// CustomComparisonQuery replaces the generated source-to-hub difference
	// query. All other comparisons keep their generated shape.
	CustomComparisonQuery string `json:"custom_comparison_query,omitempty"`
}

// IsLink reports whether the entity is a link entity.
func (e *EntityConfig) IsLink() bool {
	return e.Kind == KindLink
}

// DisplayName returns the name used in reports and logs.
func (e *EntityConfig) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return utils.LastDotSegment(e.SourceTable)
}

// HubTableLabel returns the hub table name for report rows and sample
// metadata. Link entities render their full hub list comma-joined.
func (e *EntityConfig) HubTableLabel() string {
	if e.IsLink() {
		return strings.Join(e.HubTables, ",")
	}
	return e.HubTable
}

// Validate checks the configuration for completeness. Checks run in a fixed
// order so the same broken config always reports the same first error.
func (e *EntityConfig) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"source_table", e.SourceTable},
		{"satellite_table", e.SatelliteTable},
		{"satellite_hash_key", e.SatelliteHashKey},
		{"bizview_table", e.BizviewTable},
		{"bizview_key", e.BizviewKey},
	}
	for _, r := range required {
		if r.value == "" {
			return &ConfigError{Entity: e.DisplayName(), Field: r.field, Reason: "must not be empty"}
		}
	}

	switch e.Kind {
	case KindHub, "":
		if e.HubTable == "" {
			return &ConfigError{Entity: e.DisplayName(), Field: "hub_table", Reason: "must not be empty"}
		}
		if e.HubKey == "" {
			return &ConfigError{Entity: e.DisplayName(), Field: "hub_key", Reason: "must not be empty"}
		}
		if e.SourceKey == "" {
			return &ConfigError{Entity: e.DisplayName(), Field: "source_key", Reason: "must not be empty"}
		}
	case KindLink:
		if e.LinkTable == "" {
			return &ConfigError{Entity: e.DisplayName(), Field: "link_table", Reason: "must not be empty"}
		}
		if len(e.HubTables) < 2 {
			return &ConfigError{Entity: e.DisplayName(), Field: "hub_tables", Reason: "link entities need at least two hubs"}
		}
		if len(e.HubKeys) != len(e.HubTables) {
			return &ConfigError{
				Entity: e.DisplayName(),
				Field:  "hub_keys",
				Reason: fmt.Sprintf("got %d keys for %d hub tables", len(e.HubKeys), len(e.HubTables)),
			}
		}
		if len(e.LinkHashKeys) != len(e.HubTables) {
			return &ConfigError{
				Entity: e.DisplayName(),
				Field:  "link_hash_keys",
				Reason: fmt.Sprintf("got %d keys for %d hub tables", len(e.LinkHashKeys), len(e.HubTables)),
			}
		}
	default:
		return &ConfigError{
			Entity: e.DisplayName(),
			Field:  "type",
			Reason: fmt.Sprintf("unknown entity type %q", e.Kind),
		}
	}

	return nil
}

// LoadEntitiesFile reads an entity list from a JSON file on disk.
func LoadEntitiesFile(path string) ([]EntityConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entities file: %w", err)
	}
	return parseEntities(data)
}

// LoadEntitiesObject reads an entity list from a JSON object in storage.
func LoadEntitiesObject(ctx context.Context, client storage.Client, bucket, object string) ([]EntityConfig, error) {
	reader, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entities object %s: %w", object, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read entities object %s: %w", object, err)
	}
	return parseEntities(data)
}

func parseEntities(data []byte) ([]EntityConfig, error) {
	var entities []EntityConfig
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("failed to parse entities: %w", err)
	}
	return entities, nil
}
