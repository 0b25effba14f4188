// Package config provides configuration management for the newsgate
// application. It assembles typed sub-configurations from viper-managed
// settings backed by defaults, an optional YAML file, and environment
// variables.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jonesrussell/newsgate/internal/config/app"
	"github.com/jonesrussell/newsgate/internal/config/elasticsearch"
	"github.com/jonesrussell/newsgate/internal/config/scraper"
	searchcfg "github.com/jonesrussell/newsgate/internal/config/search"
	"github.com/jonesrussell/newsgate/internal/config/server"
	"github.com/jonesrussell/newsgate/internal/config/summarizer"
)

// Interface defines the interface for configuration management.
type Interface interface {
	// GetAppConfig returns the application configuration.
	GetAppConfig() *app.Config
	// GetServerConfig returns the server configuration.
	GetServerConfig() *server.Config
	// GetElasticsearchConfig returns the Elasticsearch configuration.
	GetElasticsearchConfig() *elasticsearch.Config
	// GetScraperConfig returns the scraper configuration.
	GetScraperConfig() *scraper.Config
	// GetSearchConfig returns the web search configuration.
	GetSearchConfig() *searchcfg.Config
	// GetSummarizerConfig returns the summarizer configuration.
	GetSummarizerConfig() *summarizer.Config
	// Validate validates the configuration.
	Validate() error
}

// Ensure Config implements Interface
var _ Interface = (*Config)(nil)

// Config represents the application configuration.
type Config struct {
	// App holds application-level configuration
	App *app.Config `yaml:"app"`
	// Server holds server-specific configuration
	Server *server.Config `yaml:"server"`
	// Elasticsearch holds Elasticsearch configuration
	Elasticsearch *elasticsearch.Config `yaml:"elasticsearch"`
	// Scraper holds fetch and extraction configuration
	Scraper *scraper.Config `yaml:"scraper"`
	// Search holds web search fallback configuration
	Search *searchcfg.Config `yaml:"search"`
	// Summarizer holds AI summarizer configuration
	Summarizer *summarizer.Config `yaml:"summarizer"`
}

// GetAppConfig returns the application configuration.
func (c *Config) GetAppConfig() *app.Config { return c.App }

// GetServerConfig returns the server configuration.
func (c *Config) GetServerConfig() *server.Config { return c.Server }

// GetElasticsearchConfig returns the Elasticsearch configuration.
func (c *Config) GetElasticsearchConfig() *elasticsearch.Config { return c.Elasticsearch }

// GetScraperConfig returns the scraper configuration.
func (c *Config) GetScraperConfig() *scraper.Config { return c.Scraper }

// GetSearchConfig returns the web search configuration.
func (c *Config) GetSearchConfig() *searchcfg.Config { return c.Search }

// GetSummarizerConfig returns the summarizer configuration.
func (c *Config) GetSummarizerConfig() *summarizer.Config { return c.Summarizer }

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Elasticsearch.Validate(); err != nil {
		return fmt.Errorf("elasticsearch: %w", err)
	}
	if err := c.Scraper.Validate(); err != nil {
		return fmt.Errorf("scraper: %w", err)
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := c.Summarizer.Validate(); err != nil {
		return fmt.Errorf("summarizer: %w", err)
	}
	return nil
}

// Load assembles the configuration from the given viper instance. Defaults
// come from each sub-package's NewConfig; viper values override them when
// set.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App:           app.NewConfig(),
		Server:        server.NewConfig(),
		Elasticsearch: elasticsearch.NewConfig(),
		Scraper:       scraper.NewConfig(),
		Search:        searchcfg.NewConfig(),
		Summarizer:    summarizer.NewConfig(),
	}

	applyApp(v, cfg.App)
	applyServer(v, cfg.Server)
	applyElasticsearch(v, cfg.Elasticsearch)
	applyScraper(v, cfg.Scraper)
	applySearch(v, cfg.Search)
	applySummarizer(v, cfg.Summarizer)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyApp(v *viper.Viper, cfg *app.Config) {
	if v.IsSet("app.environment") {
		cfg.Environment = v.GetString("app.environment")
	}
	if v.IsSet("app.debug") {
		cfg.Debug = v.GetBool("app.debug")
	}
}

func applyServer(v *viper.Viper, cfg *server.Config) {
	if v.IsSet("server.address") {
		cfg.Address = v.GetString("server.address")
	}
	if v.IsSet("server.read_timeout") {
		cfg.ReadTimeout = v.GetDuration("server.read_timeout")
	}
	if v.IsSet("server.write_timeout") {
		cfg.WriteTimeout = v.GetDuration("server.write_timeout")
	}
	if v.IsSet("server.idle_timeout") {
		cfg.IdleTimeout = v.GetDuration("server.idle_timeout")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
}

func applyElasticsearch(v *viper.Viper, cfg *elasticsearch.Config) {
	if v.IsSet("elasticsearch.addresses") {
		raw := v.GetString("elasticsearch.addresses")
		if raw != "" {
			cfg.Addresses = elasticsearch.ParseAddressesFromString(raw)
		}
	}
	if v.IsSet("elasticsearch.api_key") {
		cfg.APIKey = v.GetString("elasticsearch.api_key")
	}
	if v.IsSet("elasticsearch.username") {
		cfg.Username = v.GetString("elasticsearch.username")
	}
	if v.IsSet("elasticsearch.password") {
		cfg.Password = v.GetString("elasticsearch.password")
	}
	if v.IsSet("elasticsearch.index_name") {
		cfg.IndexName = v.GetString("elasticsearch.index_name")
	}
	if v.IsSet("elasticsearch.tls.insecure_skip_verify") {
		cfg.TLS.InsecureSkipVerify = v.GetBool("elasticsearch.tls.insecure_skip_verify")
	}
	if v.IsSet("elasticsearch.tls.enabled") {
		cfg.TLS.Enabled = v.GetBool("elasticsearch.tls.enabled")
	}
	if v.IsSet("elasticsearch.retry.enabled") {
		cfg.Retry.Enabled = v.GetBool("elasticsearch.retry.enabled")
	}
	if v.IsSet("elasticsearch.retry.max_retries") {
		cfg.Retry.MaxRetries = v.GetInt("elasticsearch.retry.max_retries")
	}
}

func applyScraper(v *viper.Viper, cfg *scraper.Config) {
	if v.IsSet("scraper.domains") {
		cfg.Domains = v.GetStringSlice("scraper.domains")
	}
	if v.IsSet("scraper.sections") {
		cfg.Sections = v.GetStringSlice("scraper.sections")
	}
	if v.IsSet("scraper.homepage_url") {
		cfg.HomepageURL = v.GetString("scraper.homepage_url")
	}
	if v.IsSet("scraper.user_agent") {
		cfg.UserAgent = v.GetString("scraper.user_agent")
	}
	if v.IsSet("scraper.fetch_timeout") {
		cfg.FetchTimeout = v.GetDuration("scraper.fetch_timeout")
	}
	if v.IsSet("scraper.resolution_timeout") {
		cfg.ResolutionTimeout = v.GetDuration("scraper.resolution_timeout")
	}
	if v.IsSet("scraper.max_attempts") {
		cfg.MaxAttempts = v.GetInt("scraper.max_attempts")
	}
	if v.IsSet("scraper.page_cache_size") {
		cfg.PageCacheSize = v.GetInt("scraper.page_cache_size")
	}
	if v.IsSet("scraper.page_cache_ttl") {
		cfg.PageCacheTTL = v.GetDuration("scraper.page_cache_ttl")
	}
	if v.IsSet("scraper.article_cache_size") {
		cfg.ArticleCacheSize = v.GetInt("scraper.article_cache_size")
	}
	if v.IsSet("scraper.article_cache_ttl") {
		cfg.ArticleCacheTTL = v.GetDuration("scraper.article_cache_ttl")
	}
	if v.IsSet("scraper.refresh_interval") {
		cfg.RefreshInterval = v.GetDuration("scraper.refresh_interval")
	}
}

func applySearch(v *viper.Viper, cfg *searchcfg.Config) {
	if v.IsSet("search.api_key") {
		cfg.APIKey = v.GetString("search.api_key")
	}
	if v.IsSet("search.endpoint") {
		cfg.Endpoint = v.GetString("search.endpoint")
	}
	if v.IsSet("search.country") {
		cfg.Country = v.GetString("search.country")
	}
	if v.IsSet("search.language") {
		cfg.Language = v.GetString("search.language")
	}
	if v.IsSet("search.num_results") {
		cfg.NumResults = v.GetInt("search.num_results")
	}
}

func applySummarizer(v *viper.Viper, cfg *summarizer.Config) {
	if v.IsSet("summarizer.api_key") {
		cfg.APIKey = v.GetString("summarizer.api_key")
	}
	if v.IsSet("summarizer.base_url") {
		cfg.BaseURL = v.GetString("summarizer.base_url")
	}
	if v.IsSet("summarizer.model") {
		cfg.Model = v.GetString("summarizer.model")
	}
	if v.IsSet("summarizer.max_tokens") {
		cfg.MaxTokens = v.GetInt("summarizer.max_tokens")
	}
}
