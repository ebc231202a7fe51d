// Package report renders finished validation reports and moves them where
// people and tooling consume them.
//
// Reports render to two formats: a JSON file carrying the full report
// including the per-entity details blobs, and an Excel workbook with one
// row per validated entity for spreadsheet review. The Uploader pushes both
// renditions to object storage under a per-run prefix and prunes runs
// beyond the configured retention. The Handler serves the workbook as a
// download of the most recent report.
package report
