package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phalanx-cyber/datakit/internal/pipeline"
	"github.com/phalanx-cyber/datakit/internal/quality"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load("")
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.Equal(t, pipeline.DefaultNewsConfig(), cfg.NewsConfig())
	assert.Equal(t, pipeline.DefaultEmailConfig(), cfg.EmailConfig())
	assert.Equal(t, pipeline.DefaultRefineConfig(), cfg.RefineConfig())
}

func TestLoadYAMLOverrides(t *testing.T) {
	raw := `
logging:
  level: debug
corporaDir: /srv/corpora
news:
  batchSize: 25
  thresholds:
    min_text_length: 80
email:
  chunkSize: 500
refine:
  pattern: "custom_batch_*.csv"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg := Load(path)
	assert.Equal(t, "debug", cfg.Logging.Level)

	news := cfg.NewsConfig()
	assert.Equal(t, "/srv/corpora", news.CorporaDir)
	assert.Equal(t, 25, news.BatchSize)
	assert.Equal(t, 80, news.Thresholds.MinTextLength)

	email := cfg.EmailConfig()
	assert.Equal(t, "/srv/corpora", email.CorporaDir)
	assert.Equal(t, 500, email.ChunkSize)
	// Unset fields keep their defaults.
	assert.Equal(t, 100, email.LanguageSample)

	refine := cfg.RefineConfig()
	assert.Equal(t, "custom_batch_*.csv", refine.Pattern)
	assert.Equal(t, quality.SimpleThresholds(), refine.Thresholds)
}

func TestPartialThresholdOverrideKeepsDefaults(t *testing.T) {
	raw := `
news:
  thresholds:
    min_text_length: 80
refine:
  thresholds:
    strict: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg := Load(path)

	news := cfg.NewsConfig().Thresholds
	assert.Equal(t, 80, news.MinTextLength)
	// Unnamed fields keep the comprehensive preset values.
	assert.Equal(t, 10, news.MinTitleLength)
	assert.Equal(t, 50000, news.MaxTextLength)
	assert.Equal(t, 30.0, news.MinReadabilityScore)
	assert.Equal(t, 0.4, news.MaxMisspelledRatio)
	assert.False(t, news.Strict)

	refine := cfg.RefineConfig().Thresholds
	assert.False(t, refine.Strict)
	assert.Equal(t, 100, refine.MinTextLength)
}

func TestBadThresholdOverrideKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("news:\n  thresholds: notamap\n"), 0o644))

	cfg := Load(path)
	assert.Equal(t, quality.ComprehensiveThresholds(), cfg.NewsConfig().Thresholds)
}

func TestLoadFromEnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("news:\n  batchSize: 7\n"), 0o644))
	t.Setenv(configPathEnv, path)

	cfg := Load("")
	assert.Equal(t, 7, cfg.NewsConfig().BatchSize)
}

func TestLoadBadFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("news: [not a mapping"), 0o644))

	cfg := Load(path)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, pipeline.DefaultNewsConfig(), cfg.NewsConfig())

	cfg = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Equal(t, pipeline.DefaultNewsConfig(), cfg.NewsConfig())
}
