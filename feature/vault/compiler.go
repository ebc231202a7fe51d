package vault

import (
	"encoding/json"
	"time"
)

// Validation statuses of a result row.
const (
	StatusValidated = "VALIDATED"
	StatusFailed    = "FAILED"
)

// ValidationResult is one report row. The JSON field names are the column
// contract consumed by downstream dashboards and must not change. Numeric
// fields are pointers so a FAILED row serializes them as null rather than a
// misleading zero.
type ValidationResult struct {
	TableName             string `json:"TABLE_NAME"`
	SourceTable           string `json:"SOURCE_TABLE"`
	HubTable              string `json:"HUB_TABLE"`
	SatelliteTable        string `json:"SATELLITE_TABLE"`
	BizviewTable          string `json:"BIZVIEW_TABLE"`
	SourceCount           *int64 `json:"SOURCE_COUNT"`
	HubCount              *int64 `json:"HUB_COUNT"`
	LinkCount             *int64 `json:"LINK_COUNT"`
	CurrentSatelliteCount *int64 `json:"CURRENT_SATELLITE_COUNT"`
	BizviewCount          *int64 `json:"BIZVIEW_COUNT"`
	SourceToHubLoss       *int64 `json:"SOURCE_TO_HUB_LOSS"`
	HubToLinkLoss         *int64 `json:"HUB_TO_LINK_LOSS"`
	HubToSatLoss          *int64 `json:"HUB_TO_SAT_LOSS"`
	LinkToSatLoss         *int64 `json:"LINK_TO_SAT_LOSS"`
	SatToBizviewLoss      *int64 `json:"SAT_TO_BIZVIEW_LOSS"`
	TotalRowsLost         *int64 `json:"TOTAL_ROWS_LOST"`
	DeletedRecords        *int64 `json:"DELETED_RECORDS"`
	LostRecordsDetails    string `json:"LOST_RECORDS_DETAILS"`
	Status                string `json:"STATUS"`
	ErrorMessage          string `json:"ERROR_MESSAGE,omitempty"`
}

// Report is the outcome of one reconciliation run. Results keep the order
// of the entity configuration.
type Report struct {
	RunID      string             `json:"run_id"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Results    []ValidationResult `json:"results"`
	Summary    Summary            `json:"summary"`
}

// Summary aggregates a run for logs, CLI output, and metrics.
type Summary struct {
	Entities       int   `json:"entities"`
	Validated      int   `json:"validated"`
	Failed         int   `json:"failed"`
	TotalRowsLost  int64 `json:"total_rows_lost"`
	DeletedRecords int64 `json:"deleted_records"`
}

// lostDetails is the LOST_RECORDS_DETAILS blob. Field order matches the
// layout downstream tooling parses.
type lostDetails struct {
	SourceToHub        []map[string]any `json:"source_to_hub"`
	MissingCount       int64            `json:"missing_count"`
	HubToSatellite     []map[string]any `json:"hub_to_satellite"`
	HubToLink          []map[string]any `json:"hub_to_link"`
	LinkToSatellite    []map[string]any `json:"link_to_satellite"`
	SatelliteToBizview []map[string]any `json:"satellite_to_bizview"`
	Deleted            int64            `json:"deleted"`
}

// entityMeasurements collects everything the engine observed for one entity.
type entityMeasurements struct {
	counts     LayerCounts
	mismatches map[string]*Mismatch
}

// addMismatch merges a comparison into the transition's slot. Link entities
// run one comparison per hub for some transitions; their counts add up and
// their samples concatenate.
func (m *entityMeasurements) addMismatch(transition string, mm *Mismatch) {
	if existing := m.mismatches[transition]; existing != nil {
		existing.Count += mm.Count
		existing.Records = append(existing.Records, mm.Records...)
		return
	}
	m.mismatches[transition] = mm
}

// clampLoss returns the rows lost between an upstream and a downstream
// count. Downstream layers can legitimately hold more rows than upstream,
// so negatives clamp to zero instead of reporting a nonsense negative loss.
func clampLoss(upstream, downstream int64) int64 {
	if upstream > downstream {
		return upstream - downstream
	}
	return 0
}

func int64Ptr(v int64) *int64 {
	return &v
}

// compileResult folds an entity's counts and mismatches into its report row.
func compileResult(e *EntityConfig, m *entityMeasurements) (ValidationResult, error) {
	res := ValidationResult{
		TableName:      e.DisplayName(),
		SourceTable:    e.SourceTable,
		HubTable:       e.HubTableLabel(),
		SatelliteTable: e.SatelliteTable,
		BizviewTable:   e.BizviewTable,
		Status:         StatusValidated,
	}

	counts := m.counts
	res.SourceCount = int64Ptr(counts.Source)
	res.HubCount = int64Ptr(counts.Hub)
	res.CurrentSatelliteCount = int64Ptr(counts.Satellite)
	res.BizviewCount = int64Ptr(counts.Bizview)
	res.DeletedRecords = int64Ptr(counts.Deleted)

	// Source-to-hub loss is the exact difference count; the remaining
	// transitions derive their loss from the layer counts.
	var sourceToHub int64
	if mm := m.mismatches[TransitionSourceToHub]; mm != nil {
		sourceToHub = mm.Count
	}
	hubToSat := clampLoss(counts.Hub, counts.Satellite)
	satToBizview := clampLoss(counts.Satellite, counts.Bizview)

	res.SourceToHubLoss = int64Ptr(sourceToHub)
	res.HubToSatLoss = int64Ptr(hubToSat)
	res.SatToBizviewLoss = int64Ptr(satToBizview)

	total := sourceToHub + hubToSat + satToBizview
	if e.IsLink() {
		hubToLink := clampLoss(counts.Hub, counts.Link)
		linkToSat := clampLoss(counts.Link, counts.Satellite)
		res.LinkCount = int64Ptr(counts.Link)
		res.HubToLinkLoss = int64Ptr(hubToLink)
		res.LinkToSatLoss = int64Ptr(linkToSat)
		total += hubToLink + linkToSat
	}
	res.TotalRowsLost = int64Ptr(total)

	details, err := buildDetails(m)
	if err != nil {
		return ValidationResult{}, err
	}
	res.LostRecordsDetails = details

	return res, nil
}

// buildDetails serializes the mismatch samples into the details blob.
// Transitions without samples stay as empty arrays so the blob's shape is
// stable across entity kinds.
func buildDetails(m *entityMeasurements) (string, error) {
	details := lostDetails{
		SourceToHub:        []map[string]any{},
		HubToSatellite:     []map[string]any{},
		HubToLink:          []map[string]any{},
		LinkToSatellite:    []map[string]any{},
		SatelliteToBizview: []map[string]any{},
		Deleted:            m.counts.Deleted,
	}

	if mm := m.mismatches[TransitionSourceToHub]; mm != nil {
		details.MissingCount = mm.Count
		if mm.Records != nil {
			details.SourceToHub = mm.Records
		}
	}
	if mm := m.mismatches[TransitionHubToSatellite]; mm != nil && mm.Records != nil {
		details.HubToSatellite = mm.Records
	}
	if mm := m.mismatches[TransitionHubToLink]; mm != nil && mm.Records != nil {
		details.HubToLink = mm.Records
	}
	if mm := m.mismatches[TransitionLinkToSatellite]; mm != nil && mm.Records != nil {
		details.LinkToSatellite = mm.Records
	}
	if mm := m.mismatches[TransitionSatelliteToBizview]; mm != nil && mm.Records != nil {
		details.SatelliteToBizview = mm.Records
	}

	data, err := json.MarshalIndent(details, "", "    ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// failedResult builds the row for an entity whose validation could not
// complete. Counts and losses stay null so dashboards do not mistake
// absence for zero.
func failedResult(e *EntityConfig, err error) ValidationResult {
	return ValidationResult{
		TableName:      e.DisplayName(),
		SourceTable:    e.SourceTable,
		HubTable:       e.HubTableLabel(),
		SatelliteTable: e.SatelliteTable,
		BizviewTable:   e.BizviewTable,
		Status:         StatusFailed,
		ErrorMessage:   err.Error(),
	}
}

// summarize aggregates the per-entity results of a run.
func summarize(results []ValidationResult) Summary {
	s := Summary{Entities: len(results)}
	for i := range results {
		r := &results[i]
		if r.Status == StatusFailed {
			s.Failed++
			continue
		}
		s.Validated++
		if r.TotalRowsLost != nil {
			s.TotalRowsLost += *r.TotalRowsLost
		}
		if r.DeletedRecords != nil {
			s.DeletedRecords += *r.DeletedRecords
		}
	}
	return s
}
