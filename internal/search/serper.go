// Package search provides a Serper.dev client used as a last-resort
// fallback for locating articles that pattern enumeration and homepage
// harvesting could not find.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	searchcfg "github.com/jonesrussell/newsgate/internal/config/search"
	"github.com/jonesrussell/newsgate/internal/logger"
)

const requestTimeout = 10 * time.Second

// Result is a single organic search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type serperRequest struct {
	Query    string `json:"q"`
	Country  string `json:"gl"`
	Language string `json:"hl"`
	Num      int    `json:"num"`
}

type serperResponse struct {
	Organic []Result `json:"organic"`
}

// Client queries the Serper search API.
type Client struct {
	cfg    *searchcfg.Config
	client *http.Client
	logger logger.Interface
}

// NewClient creates a Serper client. A nil config or empty API key yields a
// disabled client whose lookups always miss.
func NewClient(cfg *searchcfg.Config, log logger.Interface) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
		logger: log,
	}
}

// Enabled reports whether the client can perform searches.
func (c *Client) Enabled() bool {
	return c.cfg.Enabled()
}

// Search runs a web search and returns the organic results.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if !c.Enabled() {
		return nil, nil
	}

	payload, err := json.Marshal(serperRequest{
		Query:    query,
		Country:  c.cfg.Country,
		Language: c.cfg.Language,
		Num:      c.cfg.NumResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request: unexpected status %d", resp.StatusCode)
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	c.logger.Debug("search completed", "query", query, "results", len(parsed.Organic))
	return parsed.Organic, nil
}

// FindArticleURL searches for an article and returns the first result link
// hosted on one of the given domains. An empty string means no match.
func (c *Client) FindArticleURL(ctx context.Context, query string, domains []string) (string, error) {
	results, err := c.Search(ctx, query)
	if err != nil {
		return "", err
	}
	for _, r := range results {
		for _, d := range domains {
			host := strings.TrimPrefix(strings.TrimPrefix(d, "https://"), "http://")
			if strings.Contains(r.Link, host) {
				return r.Link, nil
			}
		}
	}
	return "", nil
}
