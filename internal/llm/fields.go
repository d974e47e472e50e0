package llm

import (
	"context"
	"fmt"

	"github.com/karston/phdscout/internal/metrics"
)

const (
	// minBlobLen short-circuits extraction for blobs too thin to be a real
	// project description, saving the model call.
	minBlobLen = 50
	// maxBlobLen truncates the blob sent to the model to stay inside the
	// token budget.
	maxBlobLen = 4000
)

const fieldPromptTemplate = `Extract structured information from this PhD project description.

Project text:
%s

Return ONLY a JSON object with these fields (use null for missing info):
{
  "title": "Project title",
  "university": "University name",
  "supervisor": "Supervisor name(s)",
  "funding": "Funding information or null if not mentioned",
  "international_eligible": "true/false/null - is international funding available?",
  "alignment_score": 0-10 (how aligned with AI/ML/data science based on the text),
  "subject_area": "Main subject area (e.g., Machine Learning, NLP, CV)",
  "key_skills": "Key skills mentioned or required"
}`

// ExtractFields asks the model to structure a project page's text blob.
// A nil map with a nil error means "no result": the blob was too short to
// bother the model with, or the reply did not parse as a JSON object. Both
// are per-link skips, not failures. A non-nil error reports a transport
// problem with the model API. The source URL is attached by the caller and
// never sent to the model.
func ExtractFields(ctx context.Context, c Completer, blob string) (map[string]any, error) {
	if len(blob) < minBlobLen {
		metrics.RecordModelCall("fields", "skipped")
		return nil, nil
	}

	if len(blob) > maxBlobLen {
		blob = blob[:maxBlobLen]
	}

	raw, err := c.Complete(ctx, fmt.Sprintf(fieldPromptTemplate, blob))
	if err != nil {
		metrics.RecordModelCall("fields", "error")
		return nil, fmt.Errorf("extracting project fields: %w", err)
	}

	fields, err := decodeRecordFields(raw)
	if err != nil {
		metrics.RecordModelCall("fields", "decode_error")
		return nil, nil
	}

	metrics.RecordModelCall("fields", "ok")
	return fields, nil
}
