package quality

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phalanx-cyber/datakit/internal/langdetect"
)

// Verdict is the scorer's per-record result. Issues document every finding;
// only those matching a critical marker cause removal.
type Verdict struct {
	Keep   bool
	Issues []string
}

// criticalMarkers decide retention by substring match against the issue
// list. Non-critical issues (readability, misspellings, over-length) are
// recorded but do not remove the record.
var criticalMarkers = []string{"too short", "nonsensical", "corrupted", "concatenation"}

// Scorer decides whether one record's free-text fields justify retention.
// All checks run unconditionally; results accumulate as issue strings.
type Scorer struct {
	thresholds Thresholds
	corpus     *langdetect.Corpus
}

// NewScorer builds a scorer. The corpus backs the misspelling check and may
// be nil, in which case that check is skipped.
func NewScorer(thresholds Thresholds, corpus *langdetect.Corpus) *Scorer {
	return &Scorer{thresholds: thresholds, corpus: corpus}
}

// Thresholds returns the configured thresholds.
func (s *Scorer) Thresholds() Thresholds {
	return s.thresholds
}

// Assess scores one record's title and body. Inputs are expected pre-trimmed.
func (s *Scorer) Assess(title, text string) Verdict {
	var issues []string

	if len(text) < s.thresholds.MinTextLength {
		issues = append(issues, fmt.Sprintf("Text too short (%d chars)", len(text)))
	}
	if len(title) < s.thresholds.MinTitleLength {
		issues = append(issues, fmt.Sprintf("Title too short (%d chars)", len(title)))
	}
	if len(text) > s.thresholds.MaxTextLength {
		issues = append(issues, fmt.Sprintf("Text too long (%d chars)", len(text)))
	}

	switch DetectCorruption(text, s.thresholds.Strict) {
	case NotCorrupted:
	case CorruptConcatenation:
		issues = append(issues, "Text contains unbroken concatenation run")
	default:
		issues = append(issues, "Text appears nonsensical or corrupted")
	}

	if check := MisspelledRatio(text, s.corpus); !check.Skipped && check.Score > s.thresholds.MaxMisspelledRatio {
		issues = append(issues, fmt.Sprintf("Excessive misspellings (ratio %.2f)", check.Score))
	}

	if check := FleschReadingEase(text); !check.Skipped && check.Score < s.thresholds.MinReadabilityScore {
		issues = append(issues, fmt.Sprintf("Low readability score (%.1f)", check.Score))
	}

	verdict := Verdict{Keep: !hasCriticalIssue(issues), Issues: issues}
	if len(issues) > 0 {
		log.Debug().
			Strs("issues", issues).
			Bool("keep", verdict.Keep).
			Msg("Record flagged by quality scorer")
	}
	return verdict
}

func hasCriticalIssue(issues []string) bool {
	for _, issue := range issues {
		lower := strings.ToLower(issue)
		for _, marker := range criticalMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}
