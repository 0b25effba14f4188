// Package storage provides the Elasticsearch-backed article store.
package storage

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/newsgate/internal/config/elasticsearch"
	"github.com/jonesrussell/newsgate/internal/logger"
)

// NewClient creates and pings an Elasticsearch client.
func NewClient(cfg *elasticsearch.Config, log logger.Interface) (*es.Client, error) {
	if cfg == nil {
		return nil, errors.New("elasticsearch configuration is required")
	}

	log.Debug("connecting to Elasticsearch", "addresses", cfg.Addresses)

	client, err := es.NewClient(*createClientConfig(cfg, createTransport(cfg)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := client.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error pinging Elasticsearch: %s", res.String())
	}

	return client, nil
}

// createTransport creates an HTTP transport with TLS configuration.
func createTransport(cfg *elasticsearch.Config) *http.Transport {
	transport := &http.Transport{}

	if cfg.TLS != nil && cfg.TLS.Enabled {
		tlsConfig := &tls.Config{
			//nolint:gosec // InsecureSkipVerify is configurable for development/testing environments
			InsecureSkipVerify: cfg.TLS.InsecureSkipVerify,
		}

		if cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "" {
			cert, err := tls.LoadX509KeyPair(cfg.TLS.CertFile, cfg.TLS.KeyFile)
			if err == nil {
				tlsConfig.Certificates = []tls.Certificate{cert}
			}
		}

		transport.TLSClientConfig = tlsConfig
	}

	return transport
}

// createClientConfig creates an Elasticsearch client configuration.
func createClientConfig(cfg *elasticsearch.Config, transport *http.Transport) *es.Config {
	clientConfig := es.Config{
		Addresses:            cfg.Addresses,
		Transport:            transport,
		DiscoverNodesOnStart: cfg.DiscoverNodes,
	}

	if cfg.APIKey != "" {
		clientConfig.APIKey = cfg.APIKey
	} else if cfg.Username != "" && cfg.Password != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	if cfg.Retry.Enabled {
		clientConfig.MaxRetries = cfg.Retry.MaxRetries
	}

	return &clientConfig
}
