package validate

import (
	"regexp"
	"strings"

	"github.com/phalanx-cyber/datakit/pkg/tabular"
)

// IsValidLabel reports whether an article label is exactly "fake" or "real"
// after trimming, case-insensitively. Numeric labels, "unknown", "bias" and
// every other variant are invalid; there are no partial matches.
func IsValidLabel(label tabular.Field) bool {
	if !label.Present() {
		return false
	}
	switch strings.ToLower(label.Trimmed()) {
	case "fake", "real":
		return true
	}
	return false
}

// EmailBucket classifies an address field for reporting purposes. Empty is
// its own bucket rather than a flavor of invalid so the assessment report
// can distinguish absent senders from malformed ones.
type EmailBucket int

const (
	EmailEmpty EmailBucket = iota
	EmailValid
	EmailInvalid
)

func (b EmailBucket) String() string {
	switch b {
	case EmailEmpty:
		return "empty"
	case EmailValid:
		return "valid"
	default:
		return "invalid"
	}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ClassifyEmail buckets an address as empty, valid or invalid against the
// local-part@domain.tld shape.
func ClassifyEmail(address tabular.Field) EmailBucket {
	if address.IsBlank() {
		return EmailEmpty
	}
	if emailPattern.MatchString(address.Trimmed()) {
		return EmailValid
	}
	return EmailInvalid
}
