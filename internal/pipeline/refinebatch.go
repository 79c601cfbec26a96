package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/phalanx-cyber/datakit/internal/quality"
	"github.com/phalanx-cyber/datakit/internal/refine"
	"github.com/phalanx-cyber/datakit/internal/report"
	"github.com/phalanx-cyber/datakit/pkg/logging"
	"github.com/phalanx-cyber/datakit/pkg/tabular"
)

// RefineConfig configures a batch refinement run.
type RefineConfig struct {
	Thresholds quality.Thresholds
	// Pattern selects batch files inside the input directory.
	Pattern     string
	TitleColumn string
	TextColumn  string
	// RecheckMinLength drops records whose refined text fell under the
	// minimum length. This is refiner-caller policy, not scorer policy.
	RecheckMinLength bool
	// ReasonSampleCap bounds the removal reasons kept per file for the
	// report.
	ReasonSampleCap int
}

// DefaultRefineConfig returns the standard simple-refiner configuration.
func DefaultRefineConfig() RefineConfig {
	return RefineConfig{
		Thresholds:       quality.SimpleThresholds(),
		Pattern:          "articles_batch_*.csv",
		TitleColumn:      ColTitle,
		TextColumn:       ColText,
		RecheckMinLength: true,
		ReasonSampleCap:  5,
	}
}

// FileResult is the outcome for one batch file. A file that failed to load
// contributes a zero-count result and does not abort the run.
type FileResult struct {
	Filename  string
	Processed int
	Refined   int
	Removed   int
	Reasons   []string
	Failed    bool
}

// RefineStats aggregates one refinement run.
type RefineStats struct {
	Files     []FileResult
	Processed int
	Refined   int
	Removed   int
}

// RetentionRate returns refined records as a share of processed records.
func (s *RefineStats) RetentionRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.Refined) / float64(s.Processed)
}

// BatchRefiner re-scores and rewrites the text of already-batched records,
// writes surviving rows to equivalently named output files and regenerates
// the batch summary with contiguous indices.
type BatchRefiner struct {
	config  RefineConfig
	scorer  *quality.Scorer
	refiner *refine.Refiner
}

// NewBatchRefiner wires a refiner run. The scorer shares the run's
// thresholds; the corpus may be nil (misspelling check skipped).
func NewBatchRefiner(config RefineConfig, scorer *quality.Scorer) *BatchRefiner {
	if config.ReasonSampleCap <= 0 {
		config.ReasonSampleCap = 5
	}
	return &BatchRefiner{
		config:  config,
		scorer:  scorer,
		refiner: refine.NewRefiner(),
	}
}

// Run processes every batch file matching the pattern in lexicographic
// order. Per-file failures are logged and isolated.
func (b *BatchRefiner) Run(inputDir, outDir string) (*RefineStats, error) {
	paths, err := filepath.Glob(filepath.Join(inputDir, b.config.Pattern))
	if err != nil {
		return nil, fmt.Errorf("listing batch files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no batch files matching %q in %s", b.config.Pattern, inputDir)
	}
	sort.Strings(paths)

	logger := logging.GetPipelineLogger("batch_refine", "run")
	logger.Info().Int("files", len(paths)).Str("input", inputDir).Msg("Refinement run starting")

	stats := &RefineStats{}
	for _, path := range paths {
		result := b.processFile(path, outDir)
		stats.Files = append(stats.Files, result)
		stats.Processed += result.Processed
		stats.Refined += result.Refined
		stats.Removed += result.Removed
	}

	entries := make([]tabular.BatchEntry, 0, len(stats.Files))
	for _, fr := range stats.Files {
		entries = append(entries, tabular.BatchEntry{
			Filename:      fr.Filename,
			ArticlesCount: fr.Refined,
		})
	}
	entries = tabular.RenumberSummary(entries)
	if err := tabular.WriteSummary(filepath.Join(outDir, batchSummaryCSV), entries); err != nil {
		return nil, err
	}

	if err := b.writeReport(stats, outDir); err != nil {
		return nil, err
	}

	logger.Info().
		Int("processed", stats.Processed).
		Int("refined", stats.Refined).
		Int("removed", stats.Removed).
		Float64("retention", stats.RetentionRate()).
		Msg("Refinement run complete")
	return stats, nil
}

// processFile refines one batch file. Any read failure yields a zero-count
// result so the remaining files still run.
func (b *BatchRefiner) processFile(path, outDir string) FileResult {
	filename := filepath.Base(path)
	result := FileResult{Filename: filename}

	table, err := tabular.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("file", filename).Msg("Skipping unreadable batch file")
		result.Failed = true
		return result
	}

	out := &tabular.Table{Columns: table.Columns}
	for _, rec := range table.Rows {
		result.Processed++

		title := rec.Field(b.config.TitleColumn).Trimmed()
		text := rec.Field(b.config.TextColumn).Trimmed()

		verdict := b.scorer.Assess(title, text)
		if !verdict.Keep {
			result.Removed++
			b.sampleReasons(&result, verdict.Issues)
			continue
		}

		refined := b.refiner.Refine(text)
		if b.config.RecheckMinLength && len(refined) < b.scorer.Thresholds().MinTextLength {
			result.Removed++
			b.sampleReasons(&result, []string{
				fmt.Sprintf("Refined text too short (%d chars)", len(refined)),
			})
			continue
		}

		rec.Set(b.config.TextColumn, refined)
		if title != "" {
			rec.Set(b.config.TitleColumn, b.refiner.Refine(title))
		}
		out.Rows = append(out.Rows, rec)
		result.Refined++
	}

	if err := tabular.WriteFile(filepath.Join(outDir, filename), out); err != nil {
		log.Error().Err(err).Str("file", filename).Msg("Failed writing refined batch")
		// Same zero-count contract as a read failure: a file that produced
		// no output contributes nothing to the run totals.
		return FileResult{Filename: filename, Failed: true}
	}

	log.Debug().
		Str("file", filename).
		Int("processed", result.Processed).
		Int("refined", result.Refined).
		Int("removed", result.Removed).
		Msg("Batch file refined")
	return result
}

func (b *BatchRefiner) sampleReasons(result *FileResult, issues []string) {
	for _, issue := range issues {
		if len(result.Reasons) >= b.config.ReasonSampleCap {
			return
		}
		result.Reasons = append(result.Reasons, issue)
	}
}

func (b *BatchRefiner) writeReport(stats *RefineStats, outDir string) error {
	r := report.New("BATCH REFINEMENT REPORT")

	s := r.Section("totals")
	s.Add("records processed: %d", stats.Processed)
	s.AddCount("records refined", stats.Refined, stats.Processed)
	s.AddCount("records removed", stats.Removed, stats.Processed)
	s.Add("retention rate: %.1f%%", stats.RetentionRate()*100)

	s = r.Section("per_file_breakdown")
	for _, fr := range stats.Files {
		status := ""
		if fr.Failed {
			status = " [failed]"
		}
		s.Add("%s: processed=%d refined=%d removed=%d%s",
			fr.Filename, fr.Processed, fr.Refined, fr.Removed, status)
		for _, reason := range fr.Reasons {
			s.Add("    - %s", reason)
		}
	}

	return r.WriteFile(filepath.Join(outDir, "refinement_report.txt"))
}
