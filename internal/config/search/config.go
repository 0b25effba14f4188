// Package search provides configuration for the web search fallback.
package search

import "errors"

// Default search settings.
const (
	DefaultEndpoint   = "https://google.serper.dev/search"
	DefaultCountry    = "cl"
	DefaultLanguage   = "es"
	DefaultNumResults = 10
)

// Config represents web search configuration settings.
type Config struct {
	// APIKey authenticates against the Serper API. Search is disabled when
	// empty.
	APIKey string `env:"SERPER_API_KEY" json:"-" yaml:"api_key"`
	// Endpoint is the Serper search endpoint.
	Endpoint string `yaml:"endpoint"`
	// Country is the gl query parameter.
	Country string `yaml:"country"`
	// Language is the hl query parameter.
	Language string `yaml:"language"`
	// NumResults is the number of organic results requested.
	NumResults int `yaml:"num_results"`
}

// Enabled reports whether the search fallback can be used.
func (c *Config) Enabled() bool {
	return c != nil && c.APIKey != ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.Endpoint == "" {
		return errors.New("search endpoint must be specified")
	}
	if c.NumResults <= 0 {
		return errors.New("num results must be positive")
	}
	return nil
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Endpoint:   DefaultEndpoint,
		Country:    DefaultCountry,
		Language:   DefaultLanguage,
		NumResults: DefaultNumResults,
	}
}
