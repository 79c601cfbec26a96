package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogConfig(t *testing.T) {
	cfg := DefaultLogConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "pretty", cfg.Format)
	assert.True(t, cfg.Console)
	assert.Empty(t, cfg.OutputFile)
}

func TestSetupLoggerInvalidLevel(t *testing.T) {
	cfg := DefaultLogConfig()
	cfg.Level = "loud"
	assert.Error(t, SetupLogger(cfg))
}

func TestSetupLoggerFileOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := &LogConfig{
		Level:      "debug",
		Format:     "json",
		OutputFile: filepath.Join(dir, "logs", "run.log"),
	}
	require.NoError(t, SetupLogger(cfg))

	logger := GetLogger("test")
	logger.Info().Msg("hello")

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, string(data), "hello")
}
