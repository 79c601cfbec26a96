package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// unnamedColumn matches index-artifact columns left behind by spreadsheet
// exports ("Unnamed: 0", "unnamed: 12", ...) and blank headers.
var unnamedColumn = regexp.MustCompile(`(?i)^unnamed(:\s*\d+)?$`)

func isArtifactColumn(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed == "" || unnamedColumn.MatchString(trimmed)
}

// Reader decodes CSV rows into records, dropping index-artifact columns on
// load. Rows shorter than the header produce missing fields rather than
// errors, matching the loose shape of the source datasets.
type Reader struct {
	csv      *csv.Reader
	columns  []string
	rawNames []string
	nextRow  int
	closer   io.Closer
}

// NewReader wraps an input stream. The first row is consumed as the header.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	reader := &Reader{csv: cr, rawNames: header}
	for _, name := range header {
		if !isArtifactColumn(name) {
			reader.columns = append(reader.columns, strings.TrimSpace(name))
		}
	}
	if len(reader.columns) == 0 {
		return nil, fmt.Errorf("header contains no usable columns")
	}
	return reader, nil
}

// OpenFile opens a CSV file for reading. The caller owns Close.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closer = f
	return r, nil
}

// Columns returns the retained column names in file order.
func (r *Reader) Columns() []string {
	return r.columns
}

// Next reads one record. Returns io.EOF after the last row.
func (r *Reader) Next() (Record, error) {
	row, err := r.csv.Read()
	if err != nil {
		return Record{}, err
	}

	rec := NewRecord(r.nextRow)
	r.nextRow++
	for i, name := range r.rawNames {
		if isArtifactColumn(name) {
			continue
		}
		if i < len(row) {
			rec.Set(strings.TrimSpace(name), row[i])
		}
	}
	return rec, nil
}

// ReadChunk reads up to size records. A short (possibly empty) chunk together
// with io.EOF signals the end of the file.
func (r *Reader) ReadChunk(size int) ([]Record, error) {
	chunk := make([]Record, 0, size)
	for len(chunk) < size {
		rec, err := r.Next()
		if err == io.EOF {
			return chunk, io.EOF
		}
		if err != nil {
			return chunk, err
		}
		chunk = append(chunk, rec)
	}
	return chunk, nil
}

// ReadAll drains the reader into a table.
func (r *Reader) ReadAll() (*Table, error) {
	table := &Table{Columns: r.columns}
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return table, nil
		}
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, rec)
	}
}

// Close releases the underlying file when the reader was opened from a path.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// ReadFile loads an entire CSV file as a table.
func ReadFile(path string) (*Table, error) {
	r, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	table, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return table, nil
}
