package refine

import (
	"regexp"
	"strings"
	"unicode"
)

// RewriteRule is a single deterministic rewrite stage. Rules are applied in
// a fixed order; later stages assume the normalization of earlier ones.
type RewriteRule interface {
	Name() string
	Apply(text string) (string, error)
}

// SpacingRule repairs missing and excessive spacing: spaces after sentence
// punctuation, spacing around commas and semicolons, splitting of run-on
// tokens at common word anchors, and whitespace collapse.
type SpacingRule struct{}

func (r *SpacingRule) Name() string { return "spacing" }

var (
	afterSentencePunct = regexp.MustCompile(`([.!?])([A-Za-z])`)
	spaceBeforeComma   = regexp.MustCompile(`\s+([,;:])`)
	afterComma         = regexp.MustCompile(`([,;:])([A-Za-z])`)
	multiWhitespace    = regexp.MustCompile(`\s+`)
)

// Anchors used to break apart concatenated tokens. Short common words first
// so splits land on natural boundaries.
var splitAnchors = []string{
	"the", "and", "that", "with", "this", "from", "have", "will",
	"would", "there", "their", "about", "said", "when", "they",
	"tion", "ment", "ing",
}

const longTokenLimit = 20

func (r *SpacingRule) Apply(text string) (string, error) {
	fields := strings.Fields(text)
	for i, tok := range fields {
		// URL-ish tokens are left intact for the formatting stage to strip
		// whole; breaking them apart here would leave fragments behind.
		if urlLike(tok) {
			continue
		}
		fixed := afterSentencePunct.ReplaceAllString(tok, "$1 $2")
		fixed = afterComma.ReplaceAllString(fixed, "$1 $2")
		if fixed == tok && len(tok) > longTokenLimit {
			fixed = splitLongToken(tok)
		}
		fields[i] = fixed
	}

	out := strings.Join(fields, " ")
	out = spaceBeforeComma.ReplaceAllString(out, "$1")
	return strings.TrimSpace(multiWhitespace.ReplaceAllString(out, " ")), nil
}

func urlLike(token string) bool {
	lower := strings.ToLower(token)
	return strings.Contains(lower, "://") ||
		strings.Contains(lower, "@") ||
		strings.HasPrefix(lower, "www.")
}

// splitLongToken inserts spaces before anchor words found inside an
// over-long token. The earliest anchor occurrence wins each round so the
// result does not depend on anchor list order beyond tie-breaks.
func splitLongToken(token string) string {
	var parts []string
	rest := token
	for len(rest) > longTokenLimit {
		lower := strings.ToLower(rest)
		best := -1
		for _, anchor := range splitAnchors {
			idx := strings.Index(lower[3:], anchor)
			if idx < 0 {
				continue
			}
			idx += 3
			if len(rest)-idx < 3 {
				continue
			}
			if best == -1 || idx < best {
				best = idx
			}
		}
		if best < 0 {
			break
		}
		parts = append(parts, rest[:best])
		rest = rest[best:]
	}
	parts = append(parts, rest)
	return strings.Join(parts, " ")
}

// PunctuationRule repairs sentence punctuation: collapses runs of identical
// terminal marks, removes space-before-punctuation artifacts and appends a
// period to substantial sentences left without a terminator.
type PunctuationRule struct{}

func (r *PunctuationRule) Name() string { return "punctuation" }

var (
	periodRun       = regexp.MustCompile(`\.{2,}`)
	exclamationRun  = regexp.MustCompile(`!{2,}`)
	questionRun     = regexp.MustCompile(`\?{2,}`)
	spaceBeforeStop = regexp.MustCompile(`\s+([.,!?;:])`)
	sentenceBounds  = regexp.MustCompile(`([.!?])\s+`)
)

const minSentenceLength = 40

func (r *PunctuationRule) Apply(text string) (string, error) {
	out := periodRun.ReplaceAllString(text, ".")
	out = exclamationRun.ReplaceAllString(out, "!")
	out = questionRun.ReplaceAllString(out, "?")
	out = spaceBeforeStop.ReplaceAllString(out, "$1")

	marked := sentenceBounds.ReplaceAllString(out, "$1\x00")
	sentences := strings.Split(marked, "\x00")
	for i, sentence := range sentences {
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) >= minSentenceLength && !strings.ContainsAny(trimmed[len(trimmed)-1:], ".!?") {
			sentences[i] = trimmed + "."
		} else {
			sentences[i] = trimmed
		}
	}
	return strings.Join(sentences, " "), nil
}

// CapitalizationRule capitalizes sentence openers and restores the casing of
// a fixed table of proper nouns.
type CapitalizationRule struct{}

func (r *CapitalizationRule) Name() string { return "capitalization" }

type properNoun struct {
	pattern     *regexp.Regexp
	replacement string
}

var properNouns = buildProperNouns(map[string]string{
	"america":    "America",
	"american":   "American",
	"washington": "Washington",
	"california": "California",
	"texas":      "Texas",
	"russia":     "Russia",
	"russian":    "Russian",
	"china":      "China",
	"chinese":    "Chinese",
	"europe":     "Europe",
	"london":     "London",
	"israel":     "Israel",
	"iran":       "Iran",
	"syria":      "Syria",
	"trump":      "Trump",
	"obama":      "Obama",
	"clinton":    "Clinton",
	"putin":      "Putin",
	"congress":   "Congress",
	"senate":     "Senate",
	"fbi":        "FBI",
	"cia":        "CIA",
	"nato":       "NATO",
	"isis":       "ISIS",
})

func buildProperNouns(table map[string]string) []properNoun {
	nouns := make([]properNoun, 0, len(table))
	for lower, proper := range table {
		nouns = append(nouns, properNoun{
			pattern:     regexp.MustCompile(`(?i)\b` + lower + `\b`),
			replacement: proper,
		})
	}
	return nouns
}

func (r *CapitalizationRule) Apply(text string) (string, error) {
	runes := []rune(text)
	newSentence := true
	for i, c := range runes {
		switch {
		case c == '.' || c == '!' || c == '?':
			newSentence = true
		case unicode.IsLetter(c):
			if newSentence {
				runes[i] = unicode.ToUpper(c)
			}
			newSentence = false
		}
	}

	out := string(runes)
	for _, noun := range properNouns {
		out = noun.pattern.ReplaceAllString(out, noun.replacement)
	}
	return out, nil
}

// RepetitionRule collapses a single word or two-word phrase repeated three
// or more times consecutively (case-insensitive) down to one occurrence.
type RepetitionRule struct{}

func (r *RepetitionRule) Name() string { return "repetition" }

const minRepeats = 3

func (r *RepetitionRule) Apply(text string) (string, error) {
	words := strings.Fields(text)
	words = collapsePhraseRuns(words)
	words = collapseWordRuns(words)
	return strings.Join(words, " "), nil
}

// tokenKey normalizes a word for repetition comparison: case and trailing
// punctuation are ignored so "world" and "World." count as the same unit.
func tokenKey(word string) string {
	return strings.ToLower(strings.Trim(word, ".,!?;:"))
}

func collapsePhraseRuns(words []string) []string {
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		if i+1 < len(words) {
			repeats := 1
			for j := i + 2; j+1 < len(words) &&
				tokenKey(words[j]) == tokenKey(words[i]) &&
				tokenKey(words[j+1]) == tokenKey(words[i+1]); j += 2 {
				repeats++
			}
			if repeats >= minRepeats {
				out = append(out, words[i], words[i+1])
				i += repeats * 2
				continue
			}
		}
		out = append(out, words[i])
		i++
	}
	return out
}

func collapseWordRuns(words []string) []string {
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		repeats := 1
		for j := i + 1; j < len(words) && tokenKey(words[j]) == tokenKey(words[i]); j++ {
			repeats++
		}
		out = append(out, words[i])
		if repeats >= minRepeats {
			i += repeats
		} else {
			i++
		}
	}
	return out
}

// FormattingRule is the final cleanup pass: embedded URLs and addresses are
// stripped, empty quote pairs and orphaned punctuation runs removed, and
// whitespace collapsed one last time.
type FormattingRule struct{}

func (r *FormattingRule) Name() string { return "formatting" }

var (
	embeddedURL    = regexp.MustCompile(`(https?://|www\.)\S+`)
	embeddedEmail  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	emptyQuotePair = regexp.MustCompile(`"\s*"|'\s*'`)
	orphanedPunct  = regexp.MustCompile(`(\s|^)[[:punct:]]{2,}(\s|$)`)
)

func (r *FormattingRule) Apply(text string) (string, error) {
	out := embeddedURL.ReplaceAllString(text, " ")
	out = embeddedEmail.ReplaceAllString(out, " ")
	out = emptyQuotePair.ReplaceAllString(out, " ")
	out = orphanedPunct.ReplaceAllString(out, " ")
	return strings.TrimSpace(multiWhitespace.ReplaceAllString(out, " ")), nil
}
