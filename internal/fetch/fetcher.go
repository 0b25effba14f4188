// Package fetch retrieves pages from news sites with browser-like headers,
// bounded retries, and a read-through page cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonesrussell/newsgate/internal/cache"
	"github.com/jonesrussell/newsgate/internal/config/scraper"
	"github.com/jonesrussell/newsgate/internal/logger"
)

// HTTPError carries the status code of a non-2xx response.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// ErrBlockedPage indicates the site served a bot-block page instead of
// article content.
var ErrBlockedPage = fmt.Errorf("blocked or truncated page")

// blockMarkers are substrings that identify an anti-bot interstitial.
var blockMarkers = []string{
	"Access Denied",
	"Cloudflare",
	"cf-browser-verification",
	"Attention Required",
}

// Fetcher retrieves page bodies over HTTP.
type Fetcher struct {
	client        *http.Client
	cache         *cache.Service
	logger        logger.Interface
	policy        Policy
	userAgent     string
	maxBodyBytes  int64
	minBodyLength int
}

// New creates a Fetcher from scraper configuration.
func New(cfg *scraper.Config, cacheSvc *cache.Service, log logger.Interface) *Fetcher {
	policy := DefaultPolicy()
	policy.MaxAttempts = cfg.MaxAttempts
	policy.InitialDelay = cfg.InitialBackoff
	policy.MaxDelay = cfg.MaxBackoff

	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		cache:         cacheSvc,
		logger:        log,
		policy:        policy,
		userAgent:     cfg.UserAgent,
		maxBodyBytes:  cfg.MaxBodyBytes,
		minBodyLength: cfg.MinBodyLength,
	}
}

// Page returns the HTML body of the given URL, from cache when fresh. A
// successful fetch populates the cache; failures are never cached.
func (f *Fetcher) Page(ctx context.Context, url string) (string, error) {
	if body, ok := f.cache.GetPage(url); ok {
		f.logger.Debug("page cache hit", "url", url)
		return body, nil
	}

	start := time.Now()
	var body string
	err := f.policy.Do(ctx, func() error {
		var ferr error
		body, ferr = f.fetchOnce(ctx, url)
		return ferr
	})
	if err != nil {
		f.logger.Warn("page fetch failed", "url", url, "error", err)
		return "", err
	}

	f.logger.Debug("page fetched",
		"url", url,
		"bytes", len(body),
		"duration", time.Since(start))
	f.cache.SetPage(url, body)
	return body, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	f.setBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body %s: %w", url, err)
	}

	body := string(raw)
	if len(body) < f.minBodyLength {
		return "", fmt.Errorf("%w: %d bytes from %s", ErrBlockedPage, len(body), url)
	}
	for _, marker := range blockMarkers {
		if strings.Contains(body, marker) {
			return "", fmt.Errorf("%w: marker %q in %s", ErrBlockedPage, marker, url)
		}
	}

	return body, nil
}

// setBrowserHeaders makes requests look like a regular desktop browser.
// DF.cl serves reduced content to obvious bots.
func (f *Fetcher) setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept",
		"text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.8")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}
