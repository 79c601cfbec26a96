package quality

import (
	"github.com/phalanx-cyber/datakit/internal/langdetect"
)

// Spelling-sample limits: only the first sampleSize alphabetic tokens are
// checked, and texts with fewer than minSampleTokens are not judged at all.
const (
	sampleSize      = 50
	minSampleTokens = 10
)

// MisspelledRatio checks a sample of a text's alphabetic tokens against the
// word corpus and returns the unknown-word ratio. The check is skipped when
// no corpus is available or the text carries too few tokens to be judged.
func MisspelledRatio(text string, corpus *langdetect.Corpus) SoftCheck {
	if corpus == nil {
		return SkippedCheck()
	}

	tokens := alphabeticTokens(text)
	if len(tokens) < minSampleTokens {
		return SkippedCheck()
	}
	if len(tokens) > sampleSize {
		tokens = tokens[:sampleSize]
	}

	unknown := 0
	for _, tok := range tokens {
		if !corpus.Contains(tok) {
			unknown++
		}
	}
	return Applied(float64(unknown) / float64(len(tokens)))
}

func alphabeticTokens(text string) []string {
	var tokens []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
		}
	}
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			current = append(current, r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
