package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/phalanx-cyber/datakit/internal/langdetect"
	"github.com/phalanx-cyber/datakit/internal/quality"
	"github.com/phalanx-cyber/datakit/internal/report"
	"github.com/phalanx-cyber/datakit/internal/validate"
	"github.com/phalanx-cyber/datakit/pkg/logging"
	"github.com/phalanx-cyber/datakit/pkg/tabular"
)

// News dataset column names.
const (
	ColAuthor = "author"
	ColTitle  = "title_without_stopwords"
	ColText   = "text_without_stopwords"
	ColLabel  = "label"
)

// Output artifact names for the news preprocessing run.
const (
	step1File       = "news_articles_step1_cleaned.csv"
	step2File       = "news_articles_step2_cleaned.csv"
	step3File       = "news_articles_step3_cleaned.csv"
	batchSummaryCSV = "batch_summary.csv"
	newsReportFile  = "processing_report.txt"
)

// DefaultArticleBatchSize is the number of articles per persisted batch.
const DefaultArticleBatchSize = 50

// NewsConfig configures a news preprocessing run.
type NewsConfig struct {
	Thresholds quality.Thresholds
	BatchSize  int
	CorporaDir string
}

// DefaultNewsConfig returns the standard comprehensive configuration.
func DefaultNewsConfig() NewsConfig {
	return NewsConfig{
		Thresholds: quality.ComprehensiveThresholds(),
		BatchSize:  DefaultArticleBatchSize,
		CorporaDir: "data/corpora",
	}
}

// NewsStats summarizes one preprocessing run.
type NewsStats struct {
	Initial      int
	AfterAuthors int
	AfterLabels  int
	AfterQuality int
	Batches      int
}

// NewsPreprocessor drives the three cleanup steps over a raw article dataset
// and persists the surviving rows as fixed-size batch files with a summary.
type NewsPreprocessor struct {
	config   NewsConfig
	scorer   *quality.Scorer
	detector *langdetect.Detector
}

// NewNewsPreprocessor wires the preprocessing pipeline. Corpus loading
// failure degrades the language detector to basic mode and disables the
// misspelling check rather than failing the run.
func NewNewsPreprocessor(config NewsConfig) *NewsPreprocessor {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultArticleBatchSize
	}

	corpus, err := langdetect.LoadCorpus(config.CorporaDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", config.CorporaDir).
			Msg("Language corpus unavailable, using basic detection")
		corpus = nil
	}

	return &NewsPreprocessor{
		config:   config,
		scorer:   quality.NewScorer(config.Thresholds, corpus),
		detector: langdetect.NewDetector(corpus, config.Thresholds.LanguageConfidenceThreshold),
	}
}

// Run executes the full pipeline: author cleanup, label cleanup, quality and
// language filtering, then batching. Inputs are never mutated; every step
// writes a fresh artifact under outDir.
func (p *NewsPreprocessor) Run(inputPath, outDir string) (*NewsStats, error) {
	logger := logging.GetPipelineLogger("news_preprocess", "run")

	table, err := tabular.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	stats := &NewsStats{Initial: table.Len()}
	logger.Info().Int("rows", table.Len()).Str("input", inputPath).Msg("Dataset loaded")

	// Step 1: drop rows with placeholder, garbage or mis-encoded authors.
	step1 := table.Filter(func(rec tabular.Record) bool {
		return !validate.ShouldRemoveAuthor(rec.Field(ColAuthor))
	})
	stats.AfterAuthors = step1.Len()
	if err := tabular.WriteFile(filepath.Join(outDir, step1File), step1); err != nil {
		return nil, err
	}
	logger.Info().Int("kept", step1.Len()).Int("removed", stats.Initial-step1.Len()).
		Msg("Author cleanup complete")

	// Step 2: drop rows whose label is not exactly fake/real.
	step2 := step1.Filter(func(rec tabular.Record) bool {
		return validate.IsValidLabel(rec.Field(ColLabel))
	})
	stats.AfterLabels = step2.Len()
	if err := tabular.WriteFile(filepath.Join(outDir, step2File), step2); err != nil {
		return nil, err
	}
	logger.Info().Int("kept", step2.Len()).Int("removed", step1.Len()-step2.Len()).
		Msg("Label cleanup complete")

	// Step 3: quality scoring plus language confidence.
	step3 := step2.Filter(func(rec tabular.Record) bool {
		title := rec.Field(ColTitle).Trimmed()
		text := rec.Field(ColText).Trimmed()
		if !p.scorer.Assess(title, text).Keep {
			return false
		}
		return p.detector.Detect(text).IsEnglish
	})
	stats.AfterQuality = step3.Len()
	if err := tabular.WriteFile(filepath.Join(outDir, step3File), step3); err != nil {
		return nil, err
	}
	logger.Info().Int("kept", step3.Len()).Int("removed", step2.Len()-step3.Len()).
		Msg("Quality filtering complete")

	entries, err := p.writeBatches(step3, outDir)
	if err != nil {
		return nil, err
	}
	stats.Batches = len(entries)

	if err := p.writeReport(stats, outDir); err != nil {
		return nil, err
	}

	logger.Info().
		Int("initial", stats.Initial).
		Int("final", stats.AfterQuality).
		Int("batches", stats.Batches).
		Msg("Preprocessing run complete")
	return stats, nil
}

// writeBatches partitions the surviving rows into fixed-size batch files and
// writes the contiguous batch summary.
func (p *NewsPreprocessor) writeBatches(table *tabular.Table, outDir string) ([]tabular.BatchEntry, error) {
	batchDir := filepath.Join(outDir, "batches")
	var entries []tabular.BatchEntry

	for start := 0; start < table.Len(); start += p.config.BatchSize {
		end := start + p.config.BatchSize
		if end > table.Len() {
			end = table.Len()
		}

		batch := &tabular.Table{Columns: table.Columns, Rows: table.Rows[start:end]}
		filename := fmt.Sprintf("articles_batch_%03d.csv", len(entries)+1)
		if err := tabular.WriteFile(filepath.Join(batchDir, filename), batch); err != nil {
			return nil, fmt.Errorf("writing batch %s: %w", filename, err)
		}
		entries = append(entries, tabular.BatchEntry{
			Filename:      filename,
			ArticlesCount: batch.Len(),
		})
	}

	entries = tabular.RenumberSummary(entries)
	if err := tabular.WriteSummary(filepath.Join(outDir, batchSummaryCSV), entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (p *NewsPreprocessor) writeReport(stats *NewsStats, outDir string) error {
	r := report.New("NEWS ARTICLE PREPROCESSING REPORT")

	s := r.Section("basic_info")
	s.Add("input rows: %d", stats.Initial)
	s.Add("batch size: %d", p.config.BatchSize)
	s.Add("detector mode: %s", p.detector.Mode())

	s = r.Section("step_breakdown")
	s.AddCount("after author cleanup", stats.AfterAuthors, stats.Initial)
	s.AddCount("after label cleanup", stats.AfterLabels, stats.Initial)
	s.AddCount("after quality filtering", stats.AfterQuality, stats.Initial)

	s = r.Section("batching")
	s.Add("batches written: %d", stats.Batches)
	s.Add("summary file: %s", batchSummaryCSV)

	return r.WriteFile(filepath.Join(outDir, newsReportFile))
}
