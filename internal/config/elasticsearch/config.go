// Package elasticsearch provides Elasticsearch configuration management.
package elasticsearch

import (
	"fmt"
	"strings"
	"time"
)

// Default configuration values
const (
	DefaultAddresses     = "http://127.0.0.1:9200"
	DefaultIndexName     = "noticias"
	DefaultRetryEnabled  = true
	DefaultInitialWait   = 1 * time.Second
	DefaultMaxWait       = 5 * time.Second
	DefaultMaxRetries    = 3
	DefaultDiscoverNodes = false // Default to false to prevent node discovery
	MinPasswordLength    = 8
)

// Error codes for configuration validation
const (
	ErrCodeEmptyAddresses = "EMPTY_ADDRESSES"
	ErrCodeEmptyIndexName = "EMPTY_INDEX_NAME"
	ErrCodeMissingAPIKey  = "MISSING_API_KEY"
	ErrCodeInvalidFormat  = "INVALID_FORMAT"
	ErrCodeWeakPassword   = "WEAK_PASSWORD"
	ErrCodeInvalidRetry   = "INVALID_RETRY"
	ErrCodeInvalidTLS     = "INVALID_TLS"
)

// ConfigError represents a configuration validation error
type ConfigError struct {
	Code    string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Config represents Elasticsearch configuration settings.
type Config struct {
	// Addresses is a list of Elasticsearch node addresses
	Addresses []string `env:"ELASTICSEARCH_ADDRESSES" yaml:"addresses"`
	// APIKey is the base64 encoded API key for authentication
	APIKey string `env:"ELASTICSEARCH_API_KEY" yaml:"api_key"`
	// Username is the username for authentication
	Username string `env:"ELASTICSEARCH_USERNAME" yaml:"username"`
	// Password is the password for authentication (minimum 8 characters)
	Password string `env:"ELASTICSEARCH_PASSWORD" yaml:"password"`
	// IndexName is the name of the article index
	IndexName string `env:"ELASTICSEARCH_INDEX_NAME" yaml:"index_name"`
	// TLS contains TLS configuration
	TLS *TLSConfig `yaml:"tls"`
	// Retry contains retry configuration
	Retry RetryConfig `yaml:"retry"`
	// DiscoverNodes enables/disables node discovery
	DiscoverNodes bool `env:"ELASTICSEARCH_DISCOVER_NODES" yaml:"discover_nodes"`
}

// RetryConfig controls the client's on-failure retry behaviour.
type RetryConfig struct {
	Enabled     bool          `env:"ELASTICSEARCH_RETRY_ENABLED"      yaml:"enabled"`
	InitialWait time.Duration `env:"ELASTICSEARCH_RETRY_INITIAL_WAIT" yaml:"initial_wait"`
	MaxWait     time.Duration `env:"ELASTICSEARCH_RETRY_MAX_WAIT"     yaml:"max_wait"`
	MaxRetries  int           `env:"ELASTICSEARCH_MAX_RETRIES"        yaml:"max_retries"`
}

// TLSConfig represents TLS configuration settings.
type TLSConfig struct {
	CertFile           string `env:"ELASTICSEARCH_TLS_CERT_FILE"            yaml:"cert_file"`
	KeyFile            string `env:"ELASTICSEARCH_TLS_KEY_FILE"             yaml:"key_file"`
	CAFile             string `env:"ELASTICSEARCH_TLS_CA_FILE"              yaml:"ca_file"`
	InsecureSkipVerify bool   `env:"ELASTICSEARCH_TLS_INSECURE_SKIP_VERIFY" yaml:"insecure_skip_verify"`
	Enabled            bool   `env:"ELASTICSEARCH_TLS_ENABLED"              yaml:"enabled"`
}

// validateTLS validates the TLS configuration
func (c *Config) validateTLS() error {
	if c.TLS != nil {
		if (c.TLS.CertFile != "" && c.TLS.KeyFile == "") || (c.TLS.CertFile == "" && c.TLS.KeyFile != "") {
			return &ConfigError{
				Code:    ErrCodeInvalidTLS,
				Message: "both cert file and key file must be provided for TLS",
			}
		}
	}
	return nil
}

// validateRequiredFields validates required configuration fields
func (c *Config) validateRequiredFields() error {
	if len(c.Addresses) == 0 {
		return &ConfigError{
			Code:    ErrCodeEmptyAddresses,
			Message: "at least one address is required",
		}
	}

	if c.IndexName == "" {
		return &ConfigError{
			Code:    ErrCodeEmptyIndexName,
			Message: "index name is required",
		}
	}

	// Allow either API key or username/password authentication. Skip the
	// auth requirement for localhost/development connections.
	if c.APIKey == "" && (c.Username == "" || c.Password == "") {
		hasLocalDevAddress := false
		for _, addr := range c.Addresses {
			if addr == "http://localhost:9200" || addr == "http://127.0.0.1:9200" ||
				addr == "http://elasticsearch:9200" || addr == "http://elasticsearch" {
				hasLocalDevAddress = true
				break
			}
		}

		if !hasLocalDevAddress {
			return &ConfigError{
				Code:    ErrCodeMissingAPIKey,
				Message: "either API key or username/password is required",
			}
		}
	}

	return nil
}

// validatePassword validates the password configuration
func (c *Config) validatePassword() error {
	if c.Password != "" && len(c.Password) < MinPasswordLength {
		return &ConfigError{
			Code:    ErrCodeWeakPassword,
			Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}

// validateRetry validates the retry configuration
func (c *Config) validateRetry() error {
	if c.Retry.Enabled {
		if c.Retry.InitialWait < 0 || c.Retry.MaxWait < 0 || c.Retry.MaxRetries < 0 {
			return &ConfigError{
				Code:    ErrCodeInvalidRetry,
				Message: "retry configuration must be non-negative",
			}
		}
	}
	return nil
}

// validateAPIKeyFormat validates the API key format
func (c *Config) validateAPIKeyFormat() error {
	if c.APIKey != "" {
		parts := strings.Split(c.APIKey, ":")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return &ConfigError{
				Code:    ErrCodeInvalidFormat,
				Message: "API key must be in the format 'id:key'",
			}
		}
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c == nil {
		return &ConfigError{
			Code:    ErrCodeEmptyAddresses,
			Message: "configuration is required",
		}
	}

	if err := c.validateTLS(); err != nil {
		return err
	}

	if err := c.validateRequiredFields(); err != nil {
		return err
	}

	if err := c.validatePassword(); err != nil {
		return err
	}

	if err := c.validateRetry(); err != nil {
		return err
	}

	return c.validateAPIKeyFormat()
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Addresses: []string{DefaultAddresses},
		IndexName: DefaultIndexName,
		Retry: RetryConfig{
			Enabled:     DefaultRetryEnabled,
			InitialWait: DefaultInitialWait,
			MaxWait:     DefaultMaxWait,
			MaxRetries:  DefaultMaxRetries,
		},
		TLS: &TLSConfig{
			Enabled:            false,
			InsecureSkipVerify: false,
		},
		DiscoverNodes: DefaultDiscoverNodes,
	}
}

// ParseAddressesFromString parses comma-separated addresses from a string.
func ParseAddressesFromString(addrStr string) []string {
	addresses := strings.Split(addrStr, ",")
	filtered := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			filtered = append(filtered, addr)
		}
	}
	return filtered
}
