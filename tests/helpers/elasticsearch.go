// Package helpers provides shared utilities for integration tests.
package helpers

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// ElasticsearchImage is the image integration tests run against.
	ElasticsearchImage = "docker.elastic.co/elasticsearch/elasticsearch:8.11.0"
	// ElasticsearchPassword is the password configured for the elastic user.
	ElasticsearchPassword = "changeme"

	startupTimeout    = 60 * time.Second
	healthProbeEvery  = time.Second
	healthProbeLimit  = 30
	healthHTTPTimeout = 5 * time.Second
)

// ElasticsearchContainer manages a disposable Elasticsearch instance.
type ElasticsearchContainer struct {
	Container testcontainers.Container
	Address   string
}

// StartElasticsearch starts an Elasticsearch container and blocks until its
// cluster health endpoint answers. Callers must Stop the returned container.
func StartElasticsearch(ctx context.Context) (*ElasticsearchContainer, error) {
	container, err := elasticsearch.Run(
		ctx,
		ElasticsearchImage,
		elasticsearch.WithPassword(ElasticsearchPassword),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/").WithPort("9200/tcp").WithStartupTimeout(startupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start elasticsearch container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "9200")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("container port: %w", err)
	}

	address := "http://" + net.JoinHostPort(host, port.Port())
	if err := waitForHealth(ctx, address); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &ElasticsearchContainer{Container: container, Address: address}, nil
}

// Stop terminates the container.
func (e *ElasticsearchContainer) Stop(ctx context.Context) error {
	if e.Container == nil {
		return nil
	}
	return e.Container.Terminate(ctx)
}

// Addresses returns the address slice expected by the storage config.
func (e *ElasticsearchContainer) Addresses() []string {
	return []string{e.Address}
}

func waitForHealth(ctx context.Context, address string) error {
	client := &http.Client{Timeout: healthHTTPTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address+"/_cluster/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}
	req.SetBasicAuth("elastic", ElasticsearchPassword)

	for range healthProbeLimit {
		resp, doErr := client.Do(req)
		if doErr == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(healthProbeEvery):
		}
	}

	return fmt.Errorf("elasticsearch not healthy after %d probes", healthProbeLimit)
}
