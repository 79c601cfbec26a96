package langdetect

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Verdict is the result of one detection pass.
type Verdict struct {
	IsEnglish        bool
	Confidence       float64
	DetectedLanguage string
	MethodScores     map[string]float64
}

// Mode names the signal set a detector was constructed with.
type Mode string

const (
	ModeEnhanced Mode = "enhanced"
	ModeBasic    Mode = "basic"
)

type weightedSignal struct {
	signal Signal
	weight float64
}

// Detector estimates whether a text span is English using a weighted
// ensemble of independent signals. The mode is chosen once at construction
// from corpus availability and is sticky for the detector's lifetime. The
// per-mode weights sum to 1.0 by construction.
type Detector struct {
	signals   []weightedSignal
	langID    *LangIDSignal
	threshold float64
	mode      Mode
}

// DefaultConfidenceThreshold is the score at or above which text is
// considered English.
const DefaultConfidenceThreshold = 0.5

// NewDetector builds a detector. A nil corpus selects basic mode.
func NewDetector(corpus *Corpus, threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}

	d := &Detector{threshold: threshold}
	if corpus == nil {
		d.mode = ModeBasic
		d.signals = []weightedSignal{
			{&BasicSignal{}, 1.0},
		}
	} else {
		d.mode = ModeEnhanced
		d.langID = &LangIDSignal{}
		d.signals = []weightedSignal{
			{d.langID, 0.40},
			{&DictionarySignal{corpus: corpus}, 0.25},
			{&LetterFreqSignal{}, 0.15},
			{&StopwordSignal{corpus: corpus}, 0.10},
			{&BigramSignal{}, 0.10},
		}
	}

	log.Debug().Str("mode", string(d.mode)).Float64("threshold", threshold).
		Msg("Language detector initialized")
	return d
}

// Mode returns the signal set selected at construction.
func (d *Detector) Mode() Mode {
	return d.mode
}

// Detect scores one text span. Degenerate inputs (trimmed length under 3)
// are never English and skip every signal.
func (d *Detector) Detect(text string) Verdict {
	if len(strings.TrimSpace(text)) < 3 {
		return Verdict{MethodScores: map[string]float64{}}
	}

	scores := make(map[string]float64, len(d.signals))
	confidence := 0.0
	for _, ws := range d.signals {
		score := ws.signal.Score(text)
		scores[ws.signal.Name()] = score
		confidence += score * ws.weight
	}

	verdict := Verdict{
		IsEnglish:    confidence >= d.threshold,
		Confidence:   confidence,
		MethodScores: scores,
	}
	if d.langID != nil {
		verdict.DetectedLanguage = d.langID.DetectedLanguage(text)
	}
	return verdict
}

// IsLikelyEnglish is the boolean shortcut over Detect.
func (d *Detector) IsLikelyEnglish(text string) bool {
	return d.Detect(text).IsEnglish
}
