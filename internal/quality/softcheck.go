package quality

// SoftCheck is the result of a check that may not apply to a given input.
// A skipped check is distinguishable from a zero score so tests can tell
// "not applicable" apart from "failed"; callers treat both as passing.
type SoftCheck struct {
	Score   float64
	Skipped bool
}

// Applied builds a check result carrying a score.
func Applied(score float64) SoftCheck {
	return SoftCheck{Score: score}
}

// Skipped marks a check that did not run for this input.
func SkippedCheck() SoftCheck {
	return SoftCheck{Skipped: true}
}
