package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"vault-reconciler/feature/vault"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the result rows.
const SheetName = "Validation Results"

// excelColumns is the header row, in the column order of the report
// contract.
var excelColumns = []string{
	"TABLE_NAME",
	"SOURCE_TABLE",
	"HUB_TABLE",
	"SATELLITE_TABLE",
	"BIZVIEW_TABLE",
	"SOURCE_COUNT",
	"HUB_COUNT",
	"LINK_COUNT",
	"CURRENT_SATELLITE_COUNT",
	"BIZVIEW_COUNT",
	"SOURCE_TO_HUB_LOSS",
	"HUB_TO_LINK_LOSS",
	"HUB_TO_SAT_LOSS",
	"LINK_TO_SAT_LOSS",
	"SAT_TO_BIZVIEW_LOSS",
	"TOTAL_ROWS_LOST",
	"DELETED_RECORDS",
	"LOST_RECORDS_DETAILS",
	"STATUS",
	"ERROR_MESSAGE",
}

// ExcelFileName returns the workbook file name for a given timestamp.
func ExcelFileName(ts time.Time) string {
	return fmt.Sprintf("validation_report_%d.xlsx", ts.Unix())
}

// cellValues flattens a result row into the excelColumns order. Nil counts
// stay nil so their cells render empty instead of zero.
func cellValues(res *vault.ValidationResult) []any {
	nullable := func(v *int64) any {
		if v == nil {
			return nil
		}
		return *v
	}
	return []any{
		res.TableName,
		res.SourceTable,
		res.HubTable,
		res.SatelliteTable,
		res.BizviewTable,
		nullable(res.SourceCount),
		nullable(res.HubCount),
		nullable(res.LinkCount),
		nullable(res.CurrentSatelliteCount),
		nullable(res.BizviewCount),
		nullable(res.SourceToHubLoss),
		nullable(res.HubToLinkLoss),
		nullable(res.HubToSatLoss),
		nullable(res.LinkToSatLoss),
		nullable(res.SatToBizviewLoss),
		nullable(res.TotalRowsLost),
		nullable(res.DeletedRecords),
		res.LostRecordsDetails,
		res.Status,
		res.ErrorMessage,
	}
}

// buildWorkbook renders the report into a new workbook.
func buildWorkbook(r *vault.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, name := range excelColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return nil, err
		}
	}

	for row := range r.Results {
		for col, value := range cellValues(&r.Results[row]) {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// WriteExcel renders the report as an Excel workbook.
func WriteExcel(r *vault.Report, w io.Writer) error {
	f, err := buildWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveExcel writes the report workbook into dir as a timestamped file and
// returns the full path.
func SaveExcel(r *vault.Report, dir string) (string, error) {
	path := filepath.Join(dir, ExcelFileName(r.FinishedAt))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create workbook file: %w", err)
	}
	defer f.Close()

	if err := WriteExcel(r, f); err != nil {
		return "", err
	}
	return path, nil
}
