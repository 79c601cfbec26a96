package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEmailFixture(t *testing.T, dir string) string {
	t.Helper()
	lines := []string{
		"sender,receiver,subject,body,urls,label",
		"alice@example.com,bob@example.com,Hello," + goodText + ",https://a.com http://b.com,phish",
		"not-an-email,,Hello," + goodText + ",,legit",
		"carla@x.org,dan@y.org,Win money,Click now,https://c.com,phish",
	}
	path := filepath.Join(dir, "emails.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestEmailAuditorRun(t *testing.T) {
	dir := t.TempDir()
	input := writeEmailFixture(t, dir)

	config := DefaultEmailConfig()
	config.ChunkSize = 2
	config.CorporaDir = filepath.Join(dir, "no-such-corpora")
	a := NewEmailAuditor(config)

	r, err := a.Run(input)
	require.NoError(t, err)
	rendered := r.Render()

	assert.Contains(t, rendered, "EMAIL DATA QUALITY ASSESSMENT")
	assert.Contains(t, rendered, "rows: 3")
	assert.Contains(t, rendered, "detector mode: basic")

	// One blank receiver, one blank urls cell.
	assert.Contains(t, rendered, "receiver: 1")
	assert.Contains(t, rendered, "urls: 1")

	assert.Contains(t, rendered, "duplicate bodies: 1")
	assert.Contains(t, rendered, "duplicate subjects: 1")

	assert.Contains(t, rendered, "phish: 2")
	assert.Contains(t, rendered, "legit: 1")

	assert.Contains(t, rendered, "sender valid: 2")
	assert.Contains(t, rendered, "sender invalid: 1")
	assert.Contains(t, rendered, "receiver valid: 2")
	assert.Contains(t, rendered, "receiver empty: 1")

	assert.Contains(t, rendered, "total urls: 3")
	assert.Contains(t, rendered, "https: 2, http: 1")
	assert.Contains(t, rendered, "rows without urls: 1")

	assert.Contains(t, rendered, "short bodies (<50 chars): 1")
	assert.Contains(t, rendered, "bodies sampled: 3")
	assert.Contains(t, rendered, "english: 2")
}

func TestEmailAuditorMissingInput(t *testing.T) {
	config := DefaultEmailConfig()
	config.CorporaDir = filepath.Join(t.TempDir(), "no-such-corpora")
	a := NewEmailAuditor(config)

	_, err := a.Run(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestEmailAuditorLanguageSampleCap(t *testing.T) {
	dir := t.TempDir()
	lines := []string{"sender,receiver,subject,body,urls,label"}
	for i := 0; i < 5; i++ {
		lines = append(lines, "a@b.co,c@d.co,Hi,"+goodText+",,legit")
	}
	path := filepath.Join(dir, "emails.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	config := DefaultEmailConfig()
	config.LanguageSample = 2
	config.CorporaDir = filepath.Join(dir, "no-such-corpora")
	a := NewEmailAuditor(config)

	r, err := a.Run(path)
	require.NoError(t, err)
	assert.Contains(t, r.Render(), "bodies sampled: 2")
}

func TestCountDuplicates(t *testing.T) {
	assert.Equal(t, 0, countDuplicates(map[string]int{"a": 1, "b": 1}))
	assert.Equal(t, 3, countDuplicates(map[string]int{"a": 3, "b": 2, "c": 1}))
}
