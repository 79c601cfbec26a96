package tabular

import "strings"

// Field is a single scalar cell. Source datasets carry values that may be
// missing entirely (short rows, absent columns), so every consumer sees the
// same present/absent distinction instead of re-checking per call site.
type Field struct {
	value   string
	present bool
}

// NewField wraps a value read from the dataset.
func NewField(value string) Field {
	return Field{value: value, present: true}
}

// MissingField represents a cell that was absent from the source row.
func MissingField() Field {
	return Field{}
}

// Present reports whether the cell existed in the source row.
func (f Field) Present() bool {
	return f.present
}

// Value returns the raw cell value, empty when absent.
func (f Field) Value() string {
	return f.value
}

// Trimmed returns the cell value with surrounding whitespace removed.
func (f Field) Trimmed() string {
	return strings.TrimSpace(f.value)
}

// IsBlank reports whether the cell is absent or contains only whitespace.
func (f Field) IsBlank() bool {
	return !f.present || f.Trimmed() == ""
}
