package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// IndexExists reports whether the article index exists.
func (s *Storage) IndexExists(ctx context.Context) (bool, error) {
	res, err := s.client.Indices.Exists(
		[]string{s.index},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", s.index, err)
	}
	defer res.Body.Close()

	return res.StatusCode == 200, nil
}

// CreateIndex creates the article index with its mapping.
func (s *Storage) CreateIndex(ctx context.Context) error {
	body, err := json.Marshal(ArticleMapping)
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}

	res, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index %s: %s", s.index, res.String())
	}

	s.logger.Info("index created", "index", s.index)
	return nil
}

// DeleteIndex removes the article index.
func (s *Storage) DeleteIndex(ctx context.Context) error {
	res, err := s.client.Indices.Delete(
		[]string{s.index},
		s.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete index %s: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("delete index %s: %s", s.index, res.String())
	}

	s.logger.Info("index deleted", "index", s.index)
	return nil
}

// EnsureIndex creates the article index if it does not yet exist.
func (s *Storage) EnsureIndex(ctx context.Context) error {
	exists, err := s.IndexExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.CreateIndex(ctx)
}
