// Package storage defines the extracted project record and the interface
// for persisting a completed run.
package storage

import "context"

// ProjectRecord is one structured PhD listing produced by field extraction.
// Fields holds whatever keys the extractor returned; the schema is
// deliberately permissive and missing values stay null. URL is attached by
// the pipeline after extraction and is never sent to the model.
type ProjectRecord struct {
	URL    string
	Fields map[string]any
}

// KnownColumns is the canonical column order for the fields the extractor
// is asked for. Keys outside this set are appended after it.
var KnownColumns = []string{
	"title",
	"university",
	"supervisor",
	"funding",
	"international_eligible",
	"alignment_score",
	"subject_area",
	"key_skills",
}

// Writer persists the full result set of a run in a single shot. There are
// no partial or incremental writes.
type Writer interface {
	Write(ctx context.Context, records []*ProjectRecord) error
}
