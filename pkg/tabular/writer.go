package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile persists a table as a CSV file with a header row. The directory
// is created if needed; output is written fresh, inputs are never mutated.
func WriteFile(path string, table *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(table.Columns))
	for _, rec := range table.Rows {
		for i, col := range table.Columns {
			row[i] = rec.Field(col).Value()
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", rec.Index, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}
