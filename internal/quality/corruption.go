package quality

import "strings"

// Corruption detection limits. The strict variant is tighter on long words
// and additionally requires a plausible vowel ratio.
const (
	longWordLimit          = 30
	longWordLimitStrict    = 25
	longWordMaxRatio       = 0.10
	longWordMaxRatioStrict = 0.15

	symbolMaxRatio       = 0.20
	symbolMaxRatioStrict = 0.15

	minVowelRatio = 0.10

	repeatedRunLength = 3
	repeatedRunCount  = 3
)

// CorruptionKind names which sub-check fired.
type CorruptionKind int

const (
	NotCorrupted CorruptionKind = iota
	CorruptLongWords
	CorruptConcatenation
	CorruptRepeatedRun
	CorruptSymbolRatio
	CorruptVowelRatio
)

// DetectCorruption runs the composite corruption check over a text. Any
// single sub-condition marks the text as corrupted.
func DetectCorruption(text string, strict bool) CorruptionKind {
	if text == "" {
		return NotCorrupted
	}

	longLimit := longWordLimit
	longRatio := longWordMaxRatio
	symbolRatio := symbolMaxRatio
	if strict {
		longLimit = longWordLimitStrict
		longRatio = longWordMaxRatioStrict
		symbolRatio = symbolMaxRatioStrict
	}

	words := strings.Fields(text)
	if len(words) > 0 {
		long := 0
		for _, w := range words {
			if len(w) > longLimit {
				long++
			}
		}
		if float64(long)/float64(len(words)) > longRatio {
			return CorruptLongWords
		}
	}

	// A long text whose opening 100 characters contain no space is almost
	// always a concatenation artifact.
	if len(text) > 200 && !strings.Contains(text[:100], " ") {
		return CorruptConcatenation
	}

	if hasRepeatedRun(text, repeatedRunLength, repeatedRunCount) {
		return CorruptRepeatedRun
	}

	symbols := 0
	for _, r := range text {
		if !isPlainChar(r) {
			symbols++
		}
	}
	if float64(symbols)/float64(len(text)) > symbolRatio {
		return CorruptSymbolRatio
	}

	if strict {
		vowels := 0
		for _, r := range strings.ToLower(text) {
			if strings.ContainsRune("aeiou", r) {
				vowels++
			}
		}
		if float64(vowels)/float64(len(text)) < minVowelRatio {
			return CorruptVowelRatio
		}
	}

	return NotCorrupted
}

// hasRepeatedRun reports whether any substring of at least minLen repeats
// consecutively at least count times. There is no upper bound on the unit
// length: a unit of length L repeated count times shows up as (count-1)*L
// consecutive self-matches at shift L. Quadratic in the text length in the
// worst case.
func hasRepeatedRun(text string, minLen, count int) bool {
	n := len(text)
	for shift := minLen; shift*count <= n; shift++ {
		run := 0
		for i := 0; i+shift < n; i++ {
			if text[i] != text[i+shift] {
				run = 0
				continue
			}
			run++
			if run >= shift*(count-1) {
				return true
			}
		}
	}
	return false
}

func isPlainChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune(" .,!?;:-'", r)
}
