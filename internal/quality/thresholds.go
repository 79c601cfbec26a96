package quality

// Thresholds is the construction-time configuration surface of the scorer.
// Two named presets exist because the comprehensive preprocessing pass and
// the simple batch refiner historically used divergent constants for the
// same nominal task; they are deliberately not reconciled.
type Thresholds struct {
	MinTextLength               int     `yaml:"min_text_length" json:"min_text_length"`
	MinTitleLength              int     `yaml:"min_title_length" json:"min_title_length"`
	MaxTextLength               int     `yaml:"max_text_length" json:"max_text_length"`
	MinReadabilityScore         float64 `yaml:"min_readability_score" json:"min_readability_score"`
	MaxMisspelledRatio          float64 `yaml:"max_misspelled_ratio" json:"max_misspelled_ratio"`
	LanguageConfidenceThreshold float64 `yaml:"language_confidence_threshold" json:"language_confidence_threshold"`

	// Strict adds the vowel-ratio corruption check and tightens the
	// long-word limits.
	Strict bool `yaml:"strict" json:"strict"`
}

// ComprehensiveThresholds is the preset used by the full news preprocessing
// pass.
func ComprehensiveThresholds() Thresholds {
	return Thresholds{
		MinTextLength:               50,
		MinTitleLength:              10,
		MaxTextLength:               50000,
		MinReadabilityScore:         30.0,
		MaxMisspelledRatio:          0.4,
		LanguageConfidenceThreshold: 0.5,
	}
}

// SimpleThresholds is the preset used by the batch refinement pass.
func SimpleThresholds() Thresholds {
	return Thresholds{
		MinTextLength:               100,
		MinTitleLength:              10,
		MaxTextLength:               50000,
		MinReadabilityScore:         30.0,
		MaxMisspelledRatio:          0.4,
		LanguageConfidenceThreshold: 0.5,
		Strict:                      true,
	}
}
