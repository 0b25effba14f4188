// Package summarizer provides configuration for AI-generated summaries.
package summarizer

import "errors"

// Default summarizer settings.
const (
	DefaultModel     = "gpt-4o-mini"
	DefaultMaxTokens = 300
)

// Config represents summarizer configuration settings.
type Config struct {
	// APIKey authenticates against the OpenAI API. Summaries fall back to
	// truncation when empty.
	APIKey string `env:"OPENAI_API_KEY" json:"-" yaml:"api_key"`
	// BaseURL overrides the API endpoint, for proxies and OpenAI-compatible
	// backends. Empty uses the default endpoint.
	BaseURL string `yaml:"base_url"`
	// Model is the chat completion model used for summaries.
	Model string `yaml:"model"`
	// MaxTokens bounds the generated summary length.
	MaxTokens int `yaml:"max_tokens"`
}

// Enabled reports whether AI summaries can be generated.
func (c *Config) Enabled() bool {
	return c != nil && c.APIKey != ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.Model == "" {
		return errors.New("summarizer model must be specified")
	}
	if c.MaxTokens <= 0 {
		return errors.New("max tokens must be positive")
	}
	return nil
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Model:     DefaultModel,
		MaxTokens: DefaultMaxTokens,
	}
}
