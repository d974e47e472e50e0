// Package pipeline sequences the four stages of a run: query generation,
// link discovery, text extraction, and structured extraction, followed by a
// single persistence step.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/karston/phdscout/internal/llm"
	"github.com/karston/phdscout/internal/metrics"
	"github.com/karston/phdscout/internal/report"
	"github.com/karston/phdscout/internal/scraper"
	"github.com/karston/phdscout/internal/storage"
)

// PageFetcher fetches one URL; scraper.Fetcher is the real implementation.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*scraper.FetchResult, error)
}

// Pipeline orchestrates the stages of one run. Execution is strictly
// sequential; the only intentional suspension point is the fetcher's polite
// delay.
type Pipeline struct {
	Completer llm.Completer
	Fetcher   PageFetcher
	Writer    storage.Writer
	Logger    *slog.Logger

	// MaxRecords caps the accepted record count; zero means unlimited.
	// Once reached, remaining links and queries are not processed.
	MaxRecords int

	// Harvest and Extract default to the scraper implementations; tests
	// may substitute them.
	Harvest func(body []byte) []string
	Extract func(body []byte) string
}

// Run executes the full pipeline for one user prompt. It returns the
// accepted records and the run summary. The returned error is non-nil only
// for the fatal cases: a failed or unparseable query generation, or a
// failed persistence write. Everything else is logged and skipped.
func (p *Pipeline) Run(ctx context.Context, userPrompt string) ([]*storage.ProjectRecord, *report.Summary, error) {
	if p.Completer == nil {
		return nil, nil, fmt.Errorf("pipeline has no model client")
	}
	if p.Fetcher == nil {
		return nil, nil, fmt.Errorf("pipeline has no fetcher")
	}
	if p.Writer == nil {
		return nil, nil, fmt.Errorf("pipeline has no storage writer")
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	harvest := p.Harvest
	if harvest == nil {
		harvest = scraper.HarvestLinks
	}
	extract := p.Extract
	if extract == nil {
		extract = scraper.ExtractText
	}

	runID := uuid.New().String()
	logger = logger.With("run", runID)
	summary := report.NewSummary(runID)
	defer summary.Finish()

	logger.Info("starting run", "prompt", userPrompt, "max_records", p.MaxRecords)

	queries, err := llm.GenerateQueries(ctx, p.Completer, userPrompt)
	if err != nil {
		return nil, summary, err
	}
	summary.Queries = len(queries)
	logger.Info("generated search queries", "count", len(queries))

	var accepted []*storage.ProjectRecord

	for qi, query := range queries {
		if p.capReached(len(accepted)) {
			break
		}

		logger.Info("processing query", "index", qi+1, "total", len(queries), "url", query)

		searchPage, err := p.Fetcher.Fetch(ctx, query)
		if err != nil {
			logger.Error("search page fetch failed", "url", query, "err", err)
			summary.Skip("search_fetch")
			continue
		}
		summary.TotalBytes += int64(len(searchPage.Body))

		links := harvest(searchPage.Body)
		if len(links) == 0 {
			logger.Warn("no project links found", "url", query)
			summary.Skip("no_links")
			continue
		}
		summary.LinksFound += len(links)
		logger.Info("found project links", "count", len(links))

		for li, link := range links {
			if p.capReached(len(accepted)) {
				logger.Info("record cap reached", "cap", p.MaxRecords)
				break
			}

			logger.Info("processing project", "index", li+1, "total", len(links), "url", link)

			page, err := p.Fetcher.Fetch(ctx, link)
			if err != nil {
				logger.Error("project page fetch failed", "url", link, "err", err)
				summary.Skip("fetch")
				metrics.LinksSkippedTotal.WithLabelValues("fetch").Inc()
				continue
			}
			summary.TotalBytes += int64(len(page.Body))

			blob := extract(page.Body)
			if blob == "" {
				logger.Warn("no usable text on project page", "url", link)
				summary.Skip("no_text")
				metrics.LinksSkippedTotal.WithLabelValues("no_text").Inc()
				continue
			}

			fields, err := llm.ExtractFields(ctx, p.Completer, blob)
			if err != nil {
				logger.Error("field extraction failed", "url", link, "err", err)
				summary.Skip("extract_error")
				metrics.LinksSkippedTotal.WithLabelValues("extract_error").Inc()
				continue
			}
			if fields == nil {
				logger.Warn("field extraction produced no result", "url", link)
				summary.Skip("extract")
				metrics.LinksSkippedTotal.WithLabelValues("extract").Inc()
				continue
			}

			record := &storage.ProjectRecord{URL: link, Fields: fields}
			accepted = append(accepted, record)
			summary.Accepted++
			metrics.RecordsAccepted.Inc()
			logger.Info("accepted project", "title", fields["title"], "url", link)
		}
	}

	if len(accepted) == 0 {
		logger.Warn("no projects were extracted")
		return nil, summary, nil
	}

	if err := p.Writer.Write(ctx, accepted); err != nil {
		return accepted, summary, fmt.Errorf("persisting %d records: %w", len(accepted), err)
	}
	logger.Info("saved projects", "count", len(accepted))

	return accepted, summary, nil
}

func (p *Pipeline) capReached(accepted int) bool {
	return p.MaxRecords > 0 && accepted >= p.MaxRecords
}
