// Package scraper fetches listings pages and extracts links and visible
// text from them.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/karston/phdscout/internal/bypass"
	"github.com/karston/phdscout/internal/fingerprint"
	"github.com/karston/phdscout/internal/metrics"
	"github.com/karston/phdscout/pkg/httpclient"
	"github.com/karston/phdscout/pkg/ratelimit"
	"github.com/karston/phdscout/pkg/useragent"
)

// FetchConfig configures the page fetcher.
type FetchConfig struct {
	// Timeout bounds each request; defaults to 10s.
	Timeout time.Duration
	// Delay is the polite pause after every successful fetch; defaults to 3s.
	Delay time.Duration
	// Fingerprint selects the TLS profile; defaults to chrome.
	Fingerprint fingerprint.Profile
	// UAPool supplies the User-Agent header; defaults to the realistic pool.
	UAPool *useragent.Pool
}

// FetchResult holds a successfully fetched page.
type FetchResult struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// Fetcher performs sequential GET requests with a browser-like identity.
// Holding a single client across requests keeps connection pooling for the
// lifetime of the Fetcher.
type Fetcher struct {
	cfg     FetchConfig
	client  *httpclient.Client
	delayer *ratelimit.Delayer
	logger  *slog.Logger
}

// NewFetcher initializes a new Fetcher with the given configuration.
func NewFetcher(cfg FetchConfig, logger *slog.Logger) (*Fetcher, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Delay == 0 {
		cfg.Delay = 3 * time.Second
	}
	if string(cfg.Fingerprint) == "" {
		cfg.Fingerprint = fingerprint.ProfileChrome
	}
	if cfg.UAPool == nil {
		cfg.UAPool = useragent.NewPool(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	transport, err := fingerprint.Transport(cfg.Fingerprint)
	if err != nil {
		return nil, fmt.Errorf("setting up transport: %w", err)
	}

	client, err := httpclient.New(httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRedirects: 5,
		Transport:    transport,
	})
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return &Fetcher{
		cfg:     cfg,
		client:  client,
		delayer: ratelimit.NewDelayer(cfg.Delay),
		logger:  logger,
	}, nil
}

// Fetch executes a GET against targetURL with the fixed browser-like header
// set. Any network error or non-2xx status is returned as an error; callers
// treat that as "no data" and skip the page. After a successful response the
// polite delay runs before Fetch returns.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*FetchResult, error) {
	host := hostOf(targetURL)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		metrics.RecordFetch(host, 0, 0, 0)
		return nil, fmt.Errorf("creating request for %s: %w", targetURL, err)
	}
	setBrowserHeaders(req, f.cfg.UAPool.Next())

	resp, err := f.client.Do(ctx, req)
	if err != nil {
		metrics.RecordFetch(host, 0, 0, 0)
		return nil, fmt.Errorf("fetching %s: %w", targetURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordFetch(host, resp.StatusCode, 0, time.Since(start))
		return nil, fmt.Errorf("reading body of %s: %w", targetURL, err)
	}

	duration := time.Since(start)
	metrics.RecordFetch(host, resp.StatusCode, len(body), duration)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if src, ok := bypass.Identify(resp.StatusCode, resp.Header, body); ok {
			f.logger.Warn("blocked by bot protection", "url", targetURL, "status", resp.StatusCode, "source", src)
			return nil, fmt.Errorf("fetching %s: blocked by %s (status %d)", targetURL, src, resp.StatusCode)
		}
		return nil, fmt.Errorf("fetching %s: unexpected status %d", targetURL, resp.StatusCode)
	}

	if err := f.delayer.Delay(ctx); err != nil {
		return nil, fmt.Errorf("canceled while throttling after %s: %w", targetURL, err)
	}

	return &FetchResult{
		URL:        targetURL,
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
		Duration:   duration,
	}, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// setBrowserHeaders applies the fixed header set a real browser navigation
// sends. The site 403s bare clients.
func setBrowserHeaders(req *http.Request, ua string) {
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	// Accept-Encoding is left to the transport so gzip bodies decode transparently.
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Cache-Control", "max-age=0")
}
