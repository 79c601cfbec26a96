package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phalanx-cyber/datakit/internal/langdetect"
	"github.com/phalanx-cyber/datakit/internal/report"
	"github.com/phalanx-cyber/datakit/internal/validate"
	"github.com/phalanx-cyber/datakit/pkg/logging"
	"github.com/phalanx-cyber/datakit/pkg/tabular"
)

// Email dataset column names.
const (
	ColSender   = "sender"
	ColReceiver = "receiver"
	ColSubject  = "subject"
	ColBody     = "body"
	ColURLs     = "urls"
)

// EmailConfig configures an email data-quality assessment run.
type EmailConfig struct {
	// ChunkSize bounds how many rows are held in memory at once.
	ChunkSize int
	// LanguageSample is how many bodies are scored for English.
	LanguageSample int
	CorporaDir     string
}

// DefaultEmailConfig returns the standard assessment configuration.
func DefaultEmailConfig() EmailConfig {
	return EmailConfig{
		ChunkSize:      1000,
		LanguageSample: 100,
		CorporaDir:     "data/corpora",
	}
}

// EmailAuditor runs the phishing-email dataset quality assessment: chunked
// ingestion, per-column completeness, duplicate detection, address format
// buckets, URL blob analysis, body statistics and a language sample. It
// produces a report, never a modified dataset.
type EmailAuditor struct {
	config   EmailConfig
	detector *langdetect.Detector
}

// NewEmailAuditor wires an assessment run; corpus failure degrades language
// sampling to basic mode.
func NewEmailAuditor(config EmailConfig) *EmailAuditor {
	if config.ChunkSize <= 0 {
		config.ChunkSize = 1000
	}
	if config.LanguageSample <= 0 {
		config.LanguageSample = 100
	}

	corpus, err := langdetect.LoadCorpus(config.CorporaDir)
	if err != nil {
		log.Warn().Err(err).Msg("Language corpus unavailable, using basic detection")
		corpus = nil
	}

	return &EmailAuditor{
		config:   config,
		detector: langdetect.NewDetector(corpus, langdetect.DefaultConfidenceThreshold),
	}
}

type emailAccumulator struct {
	rows    int
	columns []string
	missing map[string]int

	bodySeen    map[string]int
	subjectSeen map[string]int

	labels map[string]int

	senderBuckets   map[validate.EmailBucket]int
	receiverBuckets map[validate.EmailBucket]int

	urlTotal     int
	urlHTTP      int
	urlHTTPS     int
	urlEmptyRows int

	bodyChars   int
	bodyWords   int
	shortBodies int

	langSampled int
	langEnglish int
	langConfSum float64
}

// Run assesses the dataset and returns the accumulated quality report.
func (a *EmailAuditor) Run(inputPath string) (*report.Report, error) {
	reader, err := tabular.OpenFile(inputPath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	acc := &emailAccumulator{
		columns:         reader.Columns(),
		missing:         make(map[string]int),
		bodySeen:        make(map[string]int),
		subjectSeen:     make(map[string]int),
		labels:          make(map[string]int),
		senderBuckets:   make(map[validate.EmailBucket]int),
		receiverBuckets: make(map[validate.EmailBucket]int),
	}

	logger := logging.GetPipelineLogger("email_audit", "run")
	for {
		chunk, err := reader.ReadChunk(a.config.ChunkSize)
		for _, rec := range chunk {
			a.accumulate(acc, rec)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", inputPath, err)
		}
		logger.Debug().Int("rows", acc.rows).Msg("Chunk processed")
	}

	logger.Info().Int("rows", acc.rows).Msg("Assessment complete")
	return a.buildReport(acc), nil
}

func (a *EmailAuditor) accumulate(acc *emailAccumulator, rec tabular.Record) {
	acc.rows++

	for _, col := range acc.columns {
		if rec.Field(col).IsBlank() {
			acc.missing[col]++
		}
	}

	if body := rec.Field(ColBody).Trimmed(); body != "" {
		acc.bodySeen[body]++
		acc.bodyChars += len(body)
		words := len(strings.Fields(body))
		acc.bodyWords += words
		if len(body) < 50 {
			acc.shortBodies++
		}

		if acc.langSampled < a.config.LanguageSample {
			verdict := a.detector.Detect(body)
			acc.langSampled++
			acc.langConfSum += verdict.Confidence
			if verdict.IsEnglish {
				acc.langEnglish++
			}
		}
	}
	if subject := rec.Field(ColSubject).Trimmed(); subject != "" {
		acc.subjectSeen[subject]++
	}

	acc.labels[rec.Field(ColLabel).Trimmed()]++
	acc.senderBuckets[validate.ClassifyEmail(rec.Field(ColSender))]++
	acc.receiverBuckets[validate.ClassifyEmail(rec.Field(ColReceiver))]++

	urls := rec.Field(ColURLs).Trimmed()
	if urls == "" {
		acc.urlEmptyRows++
		return
	}
	for _, raw := range strings.FieldsFunc(urls, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '\n'
	}) {
		acc.urlTotal++
		switch {
		case strings.HasPrefix(raw, "https://"):
			acc.urlHTTPS++
		case strings.HasPrefix(raw, "http://"):
			acc.urlHTTP++
		}
	}
}

func (a *EmailAuditor) buildReport(acc *emailAccumulator) *report.Report {
	r := report.New("EMAIL DATA QUALITY ASSESSMENT")

	s := r.Section("basic_info")
	s.Add("rows: %d", acc.rows)
	s.Add("columns: %s", strings.Join(acc.columns, ", "))
	s.Add("detector mode: %s", a.detector.Mode())

	s = r.Section("missing_values")
	for _, col := range acc.columns {
		s.AddCount(col, acc.missing[col], acc.rows)
	}

	s = r.Section("duplicates")
	s.Add("duplicate bodies: %d", countDuplicates(acc.bodySeen))
	s.Add("duplicate subjects: %d", countDuplicates(acc.subjectSeen))

	s = r.Section("label_distribution")
	for label, count := range acc.labels {
		if label == "" {
			label = "(blank)"
		}
		s.AddCount(label, count, acc.rows)
	}

	s = r.Section("email_validation")
	for _, bucket := range []validate.EmailBucket{validate.EmailValid, validate.EmailInvalid, validate.EmailEmpty} {
		s.AddCount("sender "+bucket.String(), acc.senderBuckets[bucket], acc.rows)
	}
	for _, bucket := range []validate.EmailBucket{validate.EmailValid, validate.EmailInvalid, validate.EmailEmpty} {
		s.AddCount("receiver "+bucket.String(), acc.receiverBuckets[bucket], acc.rows)
	}

	s = r.Section("url_analysis")
	s.Add("total urls: %d", acc.urlTotal)
	s.Add("https: %d, http: %d", acc.urlHTTPS, acc.urlHTTP)
	s.AddCount("rows without urls", acc.urlEmptyRows, acc.rows)

	s = r.Section("text_analysis")
	bodies := acc.rows - acc.missing[ColBody]
	if bodies > 0 {
		s.Add("avg body length: %.0f chars", float64(acc.bodyChars)/float64(bodies))
		s.Add("avg body words: %.0f", float64(acc.bodyWords)/float64(bodies))
	}
	s.AddCount("short bodies (<50 chars)", acc.shortBodies, acc.rows)

	s = r.Section("language_analysis")
	s.Add("bodies sampled: %d", acc.langSampled)
	if acc.langSampled > 0 {
		s.AddCount("english", acc.langEnglish, acc.langSampled)
		s.Add("avg confidence: %.2f", acc.langConfSum/float64(acc.langSampled))
	}

	return r
}

func countDuplicates(seen map[string]int) int {
	dupes := 0
	for _, count := range seen {
		if count > 1 {
			dupes += count - 1
		}
	}
	return dupes
}
