package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Report is an accumulating, section-keyed statistics document. Sections are
// kept in insertion order and rendered as a plain-text dump; the output is
// meant for humans, not machine parsing.
type Report struct {
	Title     string
	RunID     string
	StartedAt time.Time

	sections []*Section
	byName   map[string]*Section
}

// Section is one named block of report lines.
type Section struct {
	Name  string
	lines []string
}

// New creates an empty report with a fresh run id.
func New(title string) *Report {
	return &Report{
		Title:     title,
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		byName:    make(map[string]*Section),
	}
}

// Section returns the named section, creating it on first use.
func (r *Report) Section(name string) *Section {
	if s, ok := r.byName[name]; ok {
		return s
	}
	s := &Section{Name: name}
	r.sections = append(r.sections, s)
	r.byName[name] = s
	return s
}

// Add appends one formatted stat line to the section.
func (s *Section) Add(format string, args ...interface{}) {
	s.lines = append(s.lines, fmt.Sprintf(format, args...))
}

// AddCount appends a labeled count with a percentage of the given total.
func (s *Section) AddCount(label string, count, total int) {
	if total > 0 {
		s.Add("%s: %d (%.1f%%)", label, count, float64(count)/float64(total)*100)
	} else {
		s.Add("%s: %d", label, count)
	}
}

// Render produces the plain-text dump.
func (r *Report) Render() string {
	var b strings.Builder
	bar := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "%s\n%s\n%s\n", bar, r.Title, bar)
	fmt.Fprintf(&b, "run id: %s\n", r.RunID)
	fmt.Fprintf(&b, "started: %s\n\n", r.StartedAt.Format(time.RFC3339))

	for _, s := range r.sections {
		fmt.Fprintf(&b, "--- %s ---\n", s.Name)
		for _, line := range s.lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteFile persists the rendered report.
func (r *Report) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(r.Render()), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
