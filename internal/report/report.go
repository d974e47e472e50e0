// Package report aggregates one run's outcome into a printable summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"
	"time"
)

// Summary contains aggregated counts for a single pipeline run.
type Summary struct {
	RunID      string
	Queries    int
	LinksFound int
	Accepted   int
	// SkipsByReason counts links and queries skipped, keyed by reason
	// (search_fetch, no_links, fetch, no_text, extract, extract_error).
	SkipsByReason map[string]int
	TotalBytes    int64
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	OutputPath    string
}

// NewSummary returns an empty summary ready for accumulation.
func NewSummary(runID string) *Summary {
	return &Summary{
		RunID:         runID,
		SkipsByReason: make(map[string]int),
		StartTime:     time.Now().UTC(),
	}
}

// Skip increments the counter for one skip reason.
func (s *Summary) Skip(reason string) {
	s.SkipsByReason[reason]++
}

// Finish stamps the end time and duration.
func (s *Summary) Finish() {
	s.EndTime = time.Now().UTC()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

// WriteJSON writes the summary to the provided writer in JSON format.
func WriteJSON(w io.Writer, summary *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return nil
}

const textTmpl = `Run Summary ({{.RunID}})
------------------------
Duration:     {{.Duration}}
Queries:      {{.Queries}}
Links found:  {{.LinksFound}}
Accepted:     {{.Accepted}}
Total bytes:  {{.TotalBytes}}
{{- if .OutputPath}}
Output:       {{.OutputPath}}
{{- end}}

Skips:
{{- range $reason, $count := .SkipsByReason}}
  {{$reason}}: {{$count}}
{{- else}}
  None
{{- end}}
`

// WriteText writes a human-readable text summary to the provided writer.
func WriteText(w io.Writer, summary *Summary) error {
	t, err := template.New("textReport").Parse(textTmpl)
	if err != nil {
		return fmt.Errorf("parsing summary template: %w", err)
	}

	if err := t.Execute(w, summary); err != nil {
		return fmt.Errorf("rendering summary: %w", err)
	}
	return nil
}
