package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionInsertionOrder(t *testing.T) {
	r := New("TEST REPORT")
	r.Section("zeta").Add("first")
	r.Section("alpha").Add("second")
	r.Section("zeta").Add("third")

	rendered := r.Render()
	zeta := strings.Index(rendered, "--- zeta ---")
	alpha := strings.Index(rendered, "--- alpha ---")
	require.GreaterOrEqual(t, zeta, 0)
	require.GreaterOrEqual(t, alpha, 0)
	assert.Less(t, zeta, alpha)

	// Same name returns the same section.
	assert.Equal(t, 1, strings.Count(rendered, "--- zeta ---"))
	assert.Contains(t, rendered, "first")
	assert.Contains(t, rendered, "third")
}

func TestAddCount(t *testing.T) {
	r := New("TEST REPORT")
	s := r.Section("counts")
	s.AddCount("kept", 3, 4)
	s.AddCount("orphans", 7, 0)

	rendered := r.Render()
	assert.Contains(t, rendered, "kept: 3 (75.0%)")
	assert.Contains(t, rendered, "orphans: 7")
	assert.NotContains(t, rendered, "orphans: 7 (")
}

func TestRenderHeader(t *testing.T) {
	r := New("MY TITLE")
	rendered := r.Render()

	assert.Contains(t, rendered, "MY TITLE")
	assert.Contains(t, rendered, "run id: "+r.RunID)
	assert.Contains(t, rendered, strings.Repeat("=", 60))
	assert.NotEmpty(t, r.RunID)
}

func TestRunIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, New("a").RunID, New("b").RunID)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.txt")

	r := New("PERSISTED")
	r.Section("stats").Add("rows: %d", 42)
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, r.Render(), string(data))
	assert.Contains(t, string(data), "rows: 42")
}
