package validate

import (
	"regexp"
	"strings"

	"github.com/phalanx-cyber/datakit/pkg/tabular"
)

// Placeholder values that mark a row as having no real author. Matched
// case-insensitively after trimming.
var authorBlocklist = map[string]bool{
	"no author":   true,
	"anonymous":   true,
	"-no author-": true,
	"unknown":     true,
	"n/a":         true,
	"na":          true,
	"":            true,
}

var questionMarkRun = regexp.MustCompile(`^[\?\s]+$`)

// Mis-encoding signatures: a non-ASCII letter directly followed by another
// letter is the typical shape of double-encoded UTF-8 (e.g. "Ã©" rendered as
// two characters).
var misencodingSignatures = []*regexp.Regexp{
	regexp.MustCompile(`Ã[a-zA-Z]`),
	regexp.MustCompile(`Â[a-zA-Z ]`),
	regexp.MustCompile(`â€`),
	regexp.MustCompile(`[ÀÁÄÅÈÉÊËÌÍÎÏÒÓÔÖÙÚÛÜ][a-zA-Z]`),
}

// ShouldRemoveAuthor reports whether a row's author value marks it for
// removal: missing values, blocklisted placeholders, question-mark garbage
// and mis-encoded names all qualify.
func ShouldRemoveAuthor(author tabular.Field) bool {
	if !author.Present() {
		return true
	}
	normalized := strings.ToLower(author.Trimmed())
	if authorBlocklist[normalized] {
		return true
	}
	if IsQuestionMarkPattern(author.Value()) {
		return true
	}
	return HasWeirdCharacters(author.Value())
}

// IsQuestionMarkPattern reports whether a value is mostly question marks:
// strictly more than half of its non-whitespace characters are '?', or the
// trimmed value consists of nothing but question marks and whitespace.
func IsQuestionMarkPattern(value string) bool {
	stripped := strings.Join(strings.Fields(value), "")
	if len(stripped) > 0 {
		marks := strings.Count(stripped, "?")
		if float64(marks) > float64(len(stripped))*0.5 {
			return true
		}
	}

	trimmed := strings.TrimSpace(value)
	return trimmed != "" && questionMarkRun.MatchString(trimmed)
}

// HasWeirdCharacters reports whether a value carries mis-encoding signatures
// or any character outside the printable ASCII range.
//
// The ASCII-range check also rejects every legitimately non-English name
// (e.g. "José Martínez"). That is over-broad, but it is the established
// behavior of the cleanup step and downstream datasets depend on it; see the
// tracking note in DESIGN.md before changing it.
func HasWeirdCharacters(value string) bool {
	for _, sig := range misencodingSignatures {
		if sig.MatchString(value) {
			return true
		}
	}
	for _, r := range value {
		if r < 32 || r > 126 {
			return true
		}
	}
	return false
}
