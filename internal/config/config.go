package config

import (
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/phalanx-cyber/datakit/internal/pipeline"
	"github.com/phalanx-cyber/datakit/internal/quality"
	"github.com/phalanx-cyber/datakit/pkg/logging"
)

const configPathEnv = "DATAKIT_CONFIG"

// Config holds run settings for the dataset tools. Every field is optional;
// absent values fall back to the built-in defaults so the tools run without
// any configuration file at all.
type Config struct {
	Logging    *logging.LogConfig `yaml:"logging"`
	CorporaDir string             `yaml:"corporaDir"`
	News       NewsSection        `yaml:"news"`
	Email      EmailSection       `yaml:"email"`
	Refine     RefineSection      `yaml:"refine"`
}

// NewsSection overrides for the news preprocessing run. Thresholds is kept
// as a raw node so partial blocks merge field-wise over the preset instead
// of replacing it.
type NewsSection struct {
	BatchSize  int        `yaml:"batchSize"`
	Thresholds *yaml.Node `yaml:"thresholds"`
}

// EmailSection overrides for the email assessment run.
type EmailSection struct {
	ChunkSize      int `yaml:"chunkSize"`
	LanguageSample int `yaml:"languageSample"`
}

// RefineSection overrides for the batch refinement run.
type RefineSection struct {
	Pattern    string     `yaml:"pattern"`
	Thresholds *yaml.Node `yaml:"thresholds"`
}

// mergeThresholds decodes a partial thresholds block over a preset. Fields
// the block does not name keep their preset values; a block that fails to
// decode leaves the preset untouched.
func mergeThresholds(node *yaml.Node, preset quality.Thresholds) quality.Thresholds {
	merged := preset
	if err := node.Decode(&merged); err != nil {
		log.Warn().Err(err).Msg("Cannot parse thresholds override, keeping defaults")
		return preset
	}
	return merged
}

// Load reads YAML configuration when present and falls back to defaults.
// The path argument wins over the DATAKIT_CONFIG environment variable.
func Load(path string) Config {
	var cfg Config

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Cannot read config, using defaults")
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Cannot parse config, using defaults")
			cfg = Config{}
		}
	}

	if cfg.Logging == nil {
		cfg.Logging = logging.DefaultLogConfig()
	}
	return cfg
}

// NewsConfig resolves the news pipeline configuration.
func (c Config) NewsConfig() pipeline.NewsConfig {
	out := pipeline.DefaultNewsConfig()
	if c.CorporaDir != "" {
		out.CorporaDir = c.CorporaDir
	}
	if c.News.BatchSize > 0 {
		out.BatchSize = c.News.BatchSize
	}
	if c.News.Thresholds != nil {
		out.Thresholds = mergeThresholds(c.News.Thresholds, out.Thresholds)
	}
	return out
}

// EmailConfig resolves the email assessment configuration.
func (c Config) EmailConfig() pipeline.EmailConfig {
	out := pipeline.DefaultEmailConfig()
	if c.CorporaDir != "" {
		out.CorporaDir = c.CorporaDir
	}
	if c.Email.ChunkSize > 0 {
		out.ChunkSize = c.Email.ChunkSize
	}
	if c.Email.LanguageSample > 0 {
		out.LanguageSample = c.Email.LanguageSample
	}
	return out
}

// RefineConfig resolves the batch refinement configuration.
func (c Config) RefineConfig() pipeline.RefineConfig {
	out := pipeline.DefaultRefineConfig()
	if c.Refine.Pattern != "" {
		out.Pattern = c.Refine.Pattern
	}
	if c.Refine.Thresholds != nil {
		out.Thresholds = mergeThresholds(c.Refine.Thresholds, out.Thresholds)
	}
	return out
}
