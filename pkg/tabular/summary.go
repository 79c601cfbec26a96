package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// BatchEntry describes one persisted batch file and the contiguous global
// index range its records occupy.
type BatchEntry struct {
	Batch         int
	Filename      string
	ArticlesCount int
	StartIdx      int
	EndIdx        int
}

// RenumberSummary rebuilds a batch summary from per-file survivor counts.
// Batches with zero surviving records are omitted and their index range is
// not reserved: each retained batch starts at the immediate successor of the
// previous retained batch's last record.
func RenumberSummary(entries []BatchEntry) []BatchEntry {
	out := make([]BatchEntry, 0, len(entries))
	next := 0
	batch := 1
	for _, e := range entries {
		if e.ArticlesCount == 0 {
			continue
		}
		out = append(out, BatchEntry{
			Batch:         batch,
			Filename:      e.Filename,
			ArticlesCount: e.ArticlesCount,
			StartIdx:      next,
			EndIdx:        next + e.ArticlesCount - 1,
		})
		next += e.ArticlesCount
		batch++
	}
	return out
}

var summaryHeader = []string{"batch", "filename", "articles_count", "start_idx", "end_idx"}

// WriteSummary persists a batch summary CSV.
func WriteSummary(path string, entries []BatchEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating summary directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(summaryHeader); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}
	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.Batch),
			e.Filename,
			strconv.Itoa(e.ArticlesCount),
			strconv.Itoa(e.StartIdx),
			strconv.Itoa(e.EndIdx),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing summary row for %s: %w", e.Filename, err)
		}
	}

	w.Flush()
	return w.Error()
}

// ReadSummary loads a batch summary CSV.
func ReadSummary(path string) ([]BatchEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("reading summary header: %w", err)
	}

	var entries []BatchEntry
	for {
		row, err := r.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading summary row: %w", err)
		}
		if len(row) < 5 {
			return nil, fmt.Errorf("summary row has %d fields, want 5", len(row))
		}

		e := BatchEntry{Filename: row[1]}
		if e.Batch, err = strconv.Atoi(row[0]); err != nil {
			return nil, fmt.Errorf("parsing batch number %q: %w", row[0], err)
		}
		if e.ArticlesCount, err = strconv.Atoi(row[2]); err != nil {
			return nil, fmt.Errorf("parsing articles_count %q: %w", row[2], err)
		}
		if e.StartIdx, err = strconv.Atoi(row[3]); err != nil {
			return nil, fmt.Errorf("parsing start_idx %q: %w", row[3], err)
		}
		if e.EndIdx, err = strconv.Atoi(row[4]); err != nil {
			return nil, fmt.Errorf("parsing end_idx %q: %w", row[4], err)
		}
		entries = append(entries, e)
	}
}
