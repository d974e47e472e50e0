package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleSummary() *Summary {
	s := NewSummary("run-test")
	s.Queries = 4
	s.LinksFound = 30
	s.Accepted = 5
	s.Skip("no_text")
	s.Skip("no_text")
	s.Skip("extract")
	s.TotalBytes = 123456
	s.OutputPath = "phd_listings.csv"
	s.Finish()
	return s
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"run-test",
		"Queries:      4",
		"Links found:  30",
		"Accepted:     5",
		"no_text: 2",
		"extract: 1",
		"phd_listings.csv",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteTextNoSkips(t *testing.T) {
	s := NewSummary("run-clean")
	s.Finish()

	var buf bytes.Buffer
	if err := WriteText(&buf, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "None") {
		t.Errorf("expected 'None' under skips, got:\n%s", buf.String())
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Accepted != 5 || decoded.SkipsByReason["no_text"] != 2 {
		t.Errorf("unexpected decoded summary: %+v", decoded)
	}
}

func TestFinishStampsDuration(t *testing.T) {
	s := NewSummary("run-timing")
	time.Sleep(5 * time.Millisecond)
	s.Finish()

	if s.Duration <= 0 {
		t.Errorf("expected positive duration, got %v", s.Duration)
	}
	if s.EndTime.Before(s.StartTime) {
		t.Errorf("end time precedes start time")
	}
}
