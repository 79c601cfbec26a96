package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phalanx-cyber/datakit/internal/quality"
	"github.com/phalanx-cyber/datakit/pkg/tabular"
)

// Long enough to clear the simple preset's 100-char floor.
const refineText = goodText + " The boy had a big red hat and he wore it all day long."

func writeBatchFixtures(t *testing.T, dir string) {
	t.Helper()
	lines := []string{
		"title_without_stopwords,text_without_stopwords,label",
		goodTitle + "," + refineText + ",real",
		goodTitle + ",way too short,fake",
	}
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "articles_batch_001.csv"),
		[]byte(strings.Join(lines, "\n")+"\n"), 0o644))

	// An empty file has no header and fails to load.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "articles_batch_002.csv"), nil, 0o644))
}

func TestBatchRefinerRun(t *testing.T) {
	dir := t.TempDir()
	inputDir := filepath.Join(dir, "batches")
	outDir := filepath.Join(dir, "refined")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))
	writeBatchFixtures(t, inputDir)

	config := DefaultRefineConfig()
	b := NewBatchRefiner(config, quality.NewScorer(config.Thresholds, nil))

	stats, err := b.Run(inputDir, outDir)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Processed)
	assert.Equal(t, 1, stats.Refined)
	assert.Equal(t, 1, stats.Removed)
	assert.InDelta(t, 0.5, stats.RetentionRate(), 1e-9)

	require.Len(t, stats.Files, 2)

	first := stats.Files[0]
	assert.Equal(t, "articles_batch_001.csv", first.Filename)
	assert.False(t, first.Failed)
	assert.Equal(t, 2, first.Processed)
	assert.Equal(t, 1, first.Refined)
	assert.Equal(t, 1, first.Removed)
	require.NotEmpty(t, first.Reasons)
	assert.Contains(t, first.Reasons[0], "too short")

	second := stats.Files[1]
	assert.Equal(t, "articles_batch_002.csv", second.Filename)
	assert.True(t, second.Failed)
	assert.Zero(t, second.Processed)

	refined, err := tabular.ReadFile(filepath.Join(outDir, "articles_batch_001.csv"))
	require.NoError(t, err)
	require.Equal(t, 1, refined.Len())
	assert.GreaterOrEqual(t, len(refined.Rows[0].Field(ColText).Value()), 100)

	// The failed file contributes nothing, so the summary holds one
	// renumbered batch.
	entries, err := tabular.ReadSummary(filepath.Join(outDir, "batch_summary.csv"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, tabular.BatchEntry{Batch: 1, Filename: "articles_batch_001.csv", ArticlesCount: 1, StartIdx: 0, EndIdx: 0}, entries[0])

	reportText, err := os.ReadFile(filepath.Join(outDir, "refinement_report.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(reportText), "BATCH REFINEMENT REPORT")
	assert.Contains(t, string(reportText), "[failed]")
	assert.Contains(t, string(reportText), "retention rate: 50.0%")
}

func TestBatchRefinerWriteFailureZeroesCounts(t *testing.T) {
	dir := t.TempDir()
	inputDir := filepath.Join(dir, "batches")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))
	writeBatchFixtures(t, inputDir)

	// A regular file where the output directory should be makes every
	// write fail.
	outDir := filepath.Join(dir, "occupied")
	require.NoError(t, os.WriteFile(outDir, []byte("x"), 0o644))

	config := DefaultRefineConfig()
	b := NewBatchRefiner(config, quality.NewScorer(config.Thresholds, nil))

	result := b.processFile(filepath.Join(inputDir, "articles_batch_001.csv"), outDir)
	assert.True(t, result.Failed)
	assert.Zero(t, result.Processed)
	assert.Zero(t, result.Refined)
	assert.Zero(t, result.Removed)
	assert.Empty(t, result.Reasons)
}

func TestBatchRefinerNoMatchingFiles(t *testing.T) {
	config := DefaultRefineConfig()
	b := NewBatchRefiner(config, quality.NewScorer(config.Thresholds, nil))

	_, err := b.Run(t.TempDir(), t.TempDir())
	assert.Error(t, err)
}

func TestBatchRefinerRecheckMinLength(t *testing.T) {
	dir := t.TempDir()
	inputDir := filepath.Join(dir, "batches")
	outDir := filepath.Join(dir, "refined")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))

	// Passes the initial length check only because of the URL; the refiner
	// strips it and the recheck drops the record.
	padded := "The man ran far and his dog sat low near our old barn door today" +
		" http://example.com/abcdefghijklmnopqrstuvwxyz0123456789"
	lines := []string{
		"title_without_stopwords,text_without_stopwords,label",
		goodTitle + "," + padded + ",real",
	}
	require.NoError(t, os.WriteFile(
		filepath.Join(inputDir, "articles_batch_001.csv"),
		[]byte(strings.Join(lines, "\n")+"\n"), 0o644))

	config := DefaultRefineConfig()
	b := NewBatchRefiner(config, quality.NewScorer(config.Thresholds, nil))

	stats, err := b.Run(inputDir, outDir)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 0, stats.Refined)
	assert.Equal(t, 1, stats.Removed)
	require.NotEmpty(t, stats.Files[0].Reasons)
	assert.Contains(t, stats.Files[0].Reasons[0], "Refined text too short")
}
