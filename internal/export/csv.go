// Package export serializes validated record sets to CSV and XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/tmorell/tabledict/constants"
	"github.com/tmorell/tabledict/internal/llm"
)

// WriteCSV writes the fixed header row followed by one row per record in
// the set's original order. No reordering, deduplication, filtering, or
// value transformation happens here. An existing file at path is
// overwritten unconditionally.
func WriteCSV(path string, rs llm.RecordSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(constants.CSVHeader); err != nil {
		_ = f.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rs.DataRecords {
		row := []string{
			r.FileName,
			r.Key,
			r.Item,
			r.DataType,
			r.Format,
			strconv.Itoa(r.Length),
			strconv.Itoa(r.Start),
			strconv.Itoa(r.End),
			r.Comments,
		}
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush csv %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv %s: %w", path, err)
	}
	return nil
}
