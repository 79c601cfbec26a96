package langdetect

import (
	"math"
	"regexp"
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Signal is one independent sub-score in the detection ensemble. Scores are
// in [0,1] and must not depend on any other signal's output.
type Signal interface {
	Name() string
	Score(text string) float64
}

// LangIDSignal delegates to a general-purpose statistical language
// identifier. It contributes the identifier's reported confidence only when
// the top-ranked language is English, otherwise zero.
type LangIDSignal struct{}

func (s *LangIDSignal) Name() string { return "langid" }

func (s *LangIDSignal) Score(text string) float64 {
	info := whatlanggo.Detect(text)
	if info.Lang != whatlanggo.Eng {
		return 0
	}
	return math.Min(info.Confidence, 1.0)
}

// DetectedLanguage returns the identifier's top-ranked language name.
func (s *LangIDSignal) DetectedLanguage(text string) string {
	info := whatlanggo.Detect(text)
	return whatlanggo.Langs[info.Lang]
}

// DictionarySignal scores the fraction of alphabetic tokens found in the
// English word corpus.
type DictionarySignal struct {
	corpus *Corpus
}

func (s *DictionarySignal) Name() string { return "dictionary" }

func (s *DictionarySignal) Score(text string) float64 {
	tokens := alphabeticTokens(text)
	if len(tokens) == 0 {
		return 0
	}
	known := 0
	for _, tok := range tokens {
		if s.corpus.Contains(tok) {
			known++
		}
	}
	return float64(known) / float64(len(tokens))
}

// Canonical English letter frequencies in percent.
var englishLetterFreq = map[rune]float64{
	'a': 8.2, 'b': 1.5, 'c': 2.8, 'd': 4.3, 'e': 12.7, 'f': 2.2,
	'g': 2.0, 'h': 6.1, 'i': 7.0, 'j': 0.15, 'k': 0.77, 'l': 4.0,
	'm': 2.4, 'n': 6.7, 'o': 7.5, 'p': 1.9, 'q': 0.095, 'r': 6.0,
	's': 6.3, 't': 9.1, 'u': 2.8, 'v': 0.98, 'w': 2.4, 'x': 0.15,
	'y': 2.0, 'z': 0.074,
}

// LetterFreqSignal compares the text's per-letter distribution against
// canonical English frequencies. Each of the 26 letters is worth up to 10
// points, reduced by the absolute deviation in percentage points; the sum is
// normalized by 260. Texts with fewer than 10 letters score zero.
type LetterFreqSignal struct{}

func (s *LetterFreqSignal) Name() string { return "letter_freq" }

func (s *LetterFreqSignal) Score(text string) float64 {
	counts := make(map[rune]int)
	total := 0
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			counts[r]++
			total++
		}
	}
	if total < 10 {
		return 0
	}

	points := 0.0
	for letter, expected := range englishLetterFreq {
		observed := float64(counts[letter]) / float64(total) * 100
		deviation := math.Abs(observed - expected)
		points += math.Max(0, 10-deviation)
	}
	return points / 260.0
}

// StopwordSignal scores the fraction of tokens that are common English
// function words.
type StopwordSignal struct {
	corpus *Corpus
}

func (s *StopwordSignal) Name() string { return "stopwords" }

func (s *StopwordSignal) Score(text string) float64 {
	tokens := alphabeticTokens(text)
	if len(tokens) == 0 {
		return 0
	}
	hits := 0
	for _, tok := range tokens {
		if s.corpus.Stopwords[strings.ToLower(tok)] {
			hits++
		}
	}
	return float64(hits) / float64(len(tokens))
}

// The 20 most common English letter bigrams.
var englishBigrams = map[string]bool{
	"th": true, "he": true, "in": true, "er": true, "an": true,
	"re": true, "nd": true, "on": true, "en": true, "at": true,
	"ou": true, "ed": true, "ha": true, "to": true, "or": true,
	"it": true, "is": true, "hi": true, "es": true, "ng": true,
}

// BigramSignal scores the fraction of consecutive character pairs that
// belong to the common English bigram set, computed over the text reduced
// to lowercase letters and spaces. Pairs containing a space count as
// misses, so heavily fragmented text scores lower.
type BigramSignal struct{}

func (s *BigramSignal) Name() string { return "bigrams" }

func (s *BigramSignal) Score(text string) float64 {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || r == ' ' {
			b.WriteRune(r)
		}
	}

	filtered := b.String()
	if len(filtered) < 2 {
		return 0
	}
	hits := 0
	for i := 0; i+1 < len(filtered); i++ {
		if englishBigrams[filtered[i:i+2]] {
			hits++
		}
	}
	return float64(hits) / float64(len(filtered)-1)
}

// Hard-coded fallback word list for environments without the corpus files.
var basicEnglishWords = map[string]bool{
	"the": true, "be": true, "to": true, "of": true, "and": true,
	"a": true, "in": true, "that": true, "have": true, "i": true,
	"it": true, "for": true, "not": true, "on": true, "with": true,
	"he": true, "as": true, "you": true, "do": true, "at": true,
	"this": true, "but": true, "his": true, "by": true, "from": true,
	"they": true, "we": true, "say": true, "her": true, "she": true,
	"or": true, "an": true, "will": true, "my": true, "one": true,
	"all": true, "would": true, "there": true, "their": true, "what": true,
	"so": true, "up": true, "out": true, "if": true, "about": true,
	"who": true, "get": true, "which": true, "go": true, "me": true,
	"when": true, "make": true, "can": true, "like": true, "time": true,
	"new": true, "was": true, "is": true, "are": true, "were": true,
	"been": true, "has": true, "had": true, "said": true, "its": true,
}

var basicEnglishPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(the|and|that|with|this)\b`),
	regexp.MustCompile(`(?i)\b\w+n't\b`),
	regexp.MustCompile(`(?i)\b\w+'s\b`),
	regexp.MustCompile(`(?i)\w+(ing|tion|ment|ness)\b`),
}

// BasicSignal is the sole signal in basic mode: token coverage against a
// small built-in word list, with a secondary pattern check (at least two of
// the common-word, contraction and suffix patterns plus 10% coverage) that
// lifts borderline text over the decision threshold.
type BasicSignal struct{}

func (s *BasicSignal) Name() string { return "basic" }

func (s *BasicSignal) Score(text string) float64 {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return 0
	}

	hits := 0
	for _, tok := range tokens {
		if basicEnglishWords[strings.Trim(tok, ".,!?;:'\"()")] {
			hits++
		}
	}
	coverage := float64(hits) / float64(len(tokens))

	matched := 0
	for _, pat := range basicEnglishPatterns {
		if pat.MatchString(text) {
			matched++
		}
	}
	if matched >= 2 && coverage >= 0.1 {
		return math.Max(coverage, 0.7)
	}
	return coverage
}

func alphabeticTokens(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		trimmed := strings.Trim(f, ".,!?;:'\"()[]{}")
		if trimmed == "" {
			continue
		}
		alphabetic := true
		for _, r := range trimmed {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
				alphabetic = false
				break
			}
		}
		if alphabetic {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens
}
