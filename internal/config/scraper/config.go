// Package scraper provides configuration for the fetch and extraction layer.
package scraper

import (
	"errors"
	"time"
)

// Default scraper settings.
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultFetchTimeout      = 15 * time.Second
	DefaultResolutionTimeout = 60 * time.Second
	DefaultMaxAttempts       = 3
	DefaultInitialBackoff    = 1 * time.Second
	DefaultMaxBackoff        = 8 * time.Second
	DefaultMaxBodyBytes      = 10 << 20 // 10 MB

	DefaultPageCacheSize    = 20
	DefaultPageCacheTTL     = 30 * time.Minute
	DefaultArticleCacheSize = 100
	DefaultArticleCacheTTL  = 24 * time.Hour

	DefaultMinBodyLength   = 200
	DefaultRefreshInterval = 15 * time.Minute
)

// Config represents scraper-specific configuration settings.
type Config struct {
	// Domains lists article host domains, in probe order.
	Domains []string `yaml:"domains"`
	// Sections lists site section path segments used to enumerate candidate
	// article URLs.
	Sections []string `yaml:"sections"`
	// HomepageURL is the front page harvested for headline links.
	HomepageURL string `env:"NEWSGATE_SCRAPER_HOMEPAGE_URL" yaml:"homepage_url"`
	// UserAgent is the User-Agent header sent with every page fetch.
	UserAgent string `env:"NEWSGATE_SCRAPER_USER_AGENT" yaml:"user_agent"`
	// FetchTimeout bounds a single page fetch.
	FetchTimeout time.Duration `env:"NEWSGATE_SCRAPER_FETCH_TIMEOUT" yaml:"fetch_timeout"`
	// ResolutionTimeout bounds an entire resolution attempt across all
	// fallback stages.
	ResolutionTimeout time.Duration `env:"NEWSGATE_SCRAPER_RESOLUTION_TIMEOUT" yaml:"resolution_timeout"`
	// MaxAttempts is the number of tries for a retryable fetch.
	MaxAttempts int `env:"NEWSGATE_SCRAPER_MAX_ATTEMPTS" yaml:"max_attempts"`
	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	// MaxBackoff caps the exponential retry delay.
	MaxBackoff time.Duration `yaml:"max_backoff"`
	// MaxBodyBytes bounds how much of a response body is read.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
	// MinBodyLength is the response length below which a page is treated as
	// a block page and retried.
	MinBodyLength int `yaml:"min_body_length"`
	// PageCacheSize is the capacity of the fetched-page cache.
	PageCacheSize int `yaml:"page_cache_size"`
	// PageCacheTTL is the lifetime of a cached page.
	PageCacheTTL time.Duration `yaml:"page_cache_ttl"`
	// ArticleCacheSize is the capacity of the resolved-article cache.
	ArticleCacheSize int `yaml:"article_cache_size"`
	// ArticleCacheTTL is the lifetime of a cached article.
	ArticleCacheTTL time.Duration `yaml:"article_cache_ttl"`
	// RefreshInterval is how often the headline snapshot is rebuilt.
	RefreshInterval time.Duration `env:"NEWSGATE_SCRAPER_REFRESH_INTERVAL" yaml:"refresh_interval"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Domains) == 0 {
		return errors.New("at least one domain is required")
	}
	if c.HomepageURL == "" {
		return errors.New("homepage URL must be specified")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}
	if c.MaxAttempts < 1 {
		return errors.New("max attempts must be at least 1")
	}
	if c.PageCacheSize <= 0 || c.ArticleCacheSize <= 0 {
		return errors.New("cache sizes must be positive")
	}
	return nil
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Domains: []string{"https://www.df.cl", "https://df.cl"},
		Sections: []string{
			"empresas/industria",
			"empresas/energia",
			"empresas/actualidad",
			"empresas/retail",
			"economia-y-politica/macro",
			"economia-y-politica/politica",
			"economia-y-politica/pais",
			"mercados/bolsa-monedas",
			"mercados/commodities",
			"opinion/columnistas",
			"internacional/economia",
		},
		HomepageURL:       "https://www.df.cl",
		UserAgent:         DefaultUserAgent,
		FetchTimeout:      DefaultFetchTimeout,
		ResolutionTimeout: DefaultResolutionTimeout,
		MaxAttempts:       DefaultMaxAttempts,
		InitialBackoff:    DefaultInitialBackoff,
		MaxBackoff:        DefaultMaxBackoff,
		MaxBodyBytes:      DefaultMaxBodyBytes,
		MinBodyLength:     DefaultMinBodyLength,
		PageCacheSize:     DefaultPageCacheSize,
		PageCacheTTL:      DefaultPageCacheTTL,
		ArticleCacheSize:  DefaultArticleCacheSize,
		ArticleCacheTTL:   DefaultArticleCacheTTL,
		RefreshInterval:   DefaultRefreshInterval,
	}
}
