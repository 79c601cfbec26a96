package refine

import (
	"github.com/rs/zerolog/log"

	"github.com/phalanx-cyber/datakit/pkg/tabular"
)

// Refiner deterministically rewrites a free-text field to a cleaner form by
// applying the rewrite rules in order. It carries no retention policy of its
// own; dropping records that became too short after cleanup is a caller
// decision.
type Refiner struct {
	rules []RewriteRule
}

// NewRefiner builds the standard rewrite chain. Order matters: later stages
// assume the normalization performed by earlier ones.
func NewRefiner() *Refiner {
	return &Refiner{
		rules: []RewriteRule{
			&SpacingRule{},
			&PunctuationRule{},
			&CapitalizationRule{},
			&RepetitionRule{},
			&FormattingRule{},
		},
	}
}

// Rules returns the names of the configured rules in application order.
func (rf *Refiner) Rules() []string {
	names := make([]string, len(rf.rules))
	for i, rule := range rf.rules {
		names[i] = rule.Name()
	}
	return names
}

// Refine rewrites one text span. The output is always a string; a failing
// rule is logged and skipped rather than aborting the record.
func (rf *Refiner) Refine(text string) string {
	out := text
	for _, rule := range rf.rules {
		next, err := rule.Apply(out)
		if err != nil {
			log.Warn().Err(err).Str("rule", rule.Name()).Msg("Rewrite rule failed, skipping")
			continue
		}
		out = next
	}
	return out
}

// RefineField rewrites a tabular cell. Absent cells map to the empty string.
func (rf *Refiner) RefineField(field tabular.Field) string {
	if !field.Present() {
		return ""
	}
	return rf.Refine(field.Value())
}
