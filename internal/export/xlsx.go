package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tmorell/tabledict/constants"
	"github.com/tmorell/tabledict/internal/llm"
)

const sheetName = "Records"

// WriteXLSX writes the record set to a single-sheet workbook with the same
// column order as the CSV output. The workbook is a companion artifact; the
// CSV remains canonical.
func WriteXLSX(path string, rs llm.RecordSet) error {
	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheetName); index == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return fmt.Errorf("create sheet: %w", err)
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)

	for i, h := range constants.CSVHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("write header cell: %w", err)
		}
	}

	for rowIdx, r := range rs.DataRecords {
		values := []any{
			r.FileName,
			r.Key,
			r.Item,
			r.DataType,
			r.Format,
			r.Length,
			r.Start,
			r.End,
			r.Comments,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx %s: %w", path, err)
	}
	return nil
}
