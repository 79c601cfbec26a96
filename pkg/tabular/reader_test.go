package tabular

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderDropsArtifactColumns(t *testing.T) {
	csv := "Unnamed: 0,author,label,\n0,John Smith,Fake,x\n1,Jane Doe,Real,y\n"

	r, err := NewReader(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"author", "label"}, r.Columns())

	table, err := r.ReadAll()
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	assert.Equal(t, "John Smith", table.Rows[0].Field("author").Value())
	assert.False(t, table.Rows[0].Field("Unnamed: 0").Present())
}

func TestReaderShortRowsYieldMissingFields(t *testing.T) {
	csv := "author,label,text\nJohn,Fake\n"

	r, err := NewReader(strings.NewReader(csv))
	require.NoError(t, err)

	rec, err := r.Next()
	require.NoError(t, err)

	assert.True(t, rec.Field("label").Present())
	assert.False(t, rec.Field("text").Present())
	assert.True(t, rec.Field("text").IsBlank())
}

func TestReadChunk(t *testing.T) {
	var b strings.Builder
	b.WriteString("n\n")
	for i := 0; i < 5; i++ {
		b.WriteString("row\n")
	}

	r, err := NewReader(strings.NewReader(b.String()))
	require.NoError(t, err)

	chunk, err := r.ReadChunk(2)
	require.NoError(t, err)
	assert.Len(t, chunk, 2)

	chunk, err = r.ReadChunk(2)
	require.NoError(t, err)
	assert.Len(t, chunk, 2)

	chunk, err = r.ReadChunk(2)
	assert.Equal(t, io.EOF, err)
	assert.Len(t, chunk, 1)
	assert.Equal(t, 4, chunk[0].Index)
}

func TestWriteAndReadFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "data.csv")

	table := &Table{Columns: []string{"author", "text"}}
	rec := NewRecord(0)
	rec.Set("author", "Jane Doe")
	rec.Set("text", "a line, with a comma")
	table.Rows = append(table.Rows, rec)

	require.NoError(t, WriteFile(path, table))

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, "a line, with a comma", loaded.Rows[0].Field("text").Value())
}

func TestFilterPreservesOrderAndIndex(t *testing.T) {
	table := &Table{Columns: []string{"n"}}
	for i := 0; i < 6; i++ {
		rec := NewRecord(i)
		rec.Set("n", string(rune('a'+i)))
		table.Rows = append(table.Rows, rec)
	}

	// Keep even positions only.
	filtered := table.Filter(func(rec Record) bool { return rec.Index%2 == 0 })

	require.Equal(t, 3, filtered.Len())
	assert.Equal(t, 0, filtered.Rows[0].Index)
	assert.Equal(t, 2, filtered.Rows[1].Index)
	assert.Equal(t, 4, filtered.Rows[2].Index)
}

func TestFieldBlankness(t *testing.T) {
	assert.True(t, MissingField().IsBlank())
	assert.True(t, NewField("   ").IsBlank())
	assert.False(t, NewField(" x ").IsBlank())
	assert.Equal(t, "x", NewField(" x ").Trimmed())
}
