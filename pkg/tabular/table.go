package tabular

// Record is one row of a tabular dataset. Index is the zero-based position
// of the row in the file it was read from and survives filtering unchanged.
type Record struct {
	Index  int
	fields map[string]Field
}

// NewRecord creates an empty record at the given row position.
func NewRecord(index int) Record {
	return Record{Index: index, fields: make(map[string]Field)}
}

// Field returns the named cell, or a missing field when the column does not
// exist for this record.
func (r Record) Field(name string) Field {
	if f, ok := r.fields[name]; ok {
		return f
	}
	return MissingField()
}

// Set assigns a cell value.
func (r Record) Set(name, value string) {
	r.fields[name] = NewField(value)
}

// Table is an ordered collection of records sharing one column set.
type Table struct {
	Columns []string
	Rows    []Record
}

// Filter returns a new table keeping only rows for which keep returns true.
// Survivor order and row indices are preserved.
func (t *Table) Filter(keep func(Record) bool) *Table {
	out := &Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
