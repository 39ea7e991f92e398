// Package report exports the sort history as an XLSX workbook for the
// office workflows downstream of the sorter.
package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/idimitrov/docsorter/internal/core/domain"
	"github.com/idimitrov/docsorter/internal/core/ports"
)

const sheetName = "Sort History"

var headers = []string{"Sorted At", "Filename", "Label", "Confidence", "Status", "Reason", "Target"}

type Exporter struct {
	history ports.SortHistory
}

func NewExporter(history ports.SortHistory) *Exporter {
	return &Exporter{history: history}
}

// Export writes the most recent history records to path as a workbook.
func (e *Exporter) Export(ctx context.Context, path string, limit int) (int, error) {
	records, err := e.history.ListRecent(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("load sort history: %w", err)
	}
	if err := WriteWorkbook(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// WriteWorkbook renders records into a single-sheet XLSX file at path.
func WriteWorkbook(path string, records []domain.SortRecord) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("write header %s: %w", header, err)
		}
	}

	for i, rec := range records {
		row := i + 2
		values := []any{
			rec.SortedAt.Format("2006-01-02 15:04:05"),
			rec.Filename,
			string(rec.Label),
			rec.Confidence,
			string(rec.Status),
			rec.Reason,
			rec.Target,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
