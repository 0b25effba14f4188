package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/jonesrussell/newsgate/internal/domain"
)

// GetArticle fetches an article document by identifier.
func (s *Storage) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	res, err := s.client.Get(s.index, id, s.client.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("get article %s: %w", id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, domain.ErrNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("get article %s: %s", id, res.String())
	}

	var doc struct {
		Source map[string]any `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode article %s: %w", id, err)
	}

	var article domain.Article
	if err := mapstructure.Decode(doc.Source, &article); err != nil {
		return nil, fmt.Errorf("map article %s: %w", id, err)
	}
	return &article, nil
}

// SaveArticle upserts an article keyed by its identifier. The write is
// refreshed so subsequent reads see it immediately.
func (s *Storage) SaveArticle(ctx context.Context, article *domain.Article) error {
	if article.ID == "" {
		return fmt.Errorf("save article: empty id")
	}

	payload, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("marshal article %s: %w", article.ID, err)
	}

	res, err := s.client.Index(
		s.index,
		strings.NewReader(string(payload)),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(article.ID),
		s.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index article %s: %w", article.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index article %s: %s", article.ID, res.String())
	}

	s.logger.Debug("article saved", "id", article.ID, "provider", article.Provider)
	return nil
}

// DeleteArticle removes an article document by identifier.
func (s *Storage) DeleteArticle(ctx context.Context, id string) error {
	res, err := s.client.Delete(
		s.index,
		id,
		s.client.Delete.WithContext(ctx),
		s.client.Delete.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("delete article %s: %w", id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return domain.ErrNotFound
	}
	if res.IsError() {
		return fmt.Errorf("delete article %s: %s", id, res.String())
	}
	return nil
}

// QueryArticles lists articles matching the given filters, newest first.
// Title search is applied client-side on the fetched window, then paginated.
func (s *Storage) QueryArticles(ctx context.Context, q ArticleQuery) ([]domain.Article, error) {
	q.normalize()

	esQuery := q
	if q.Search != "" {
		// Pull a full window so the substring filter sees enough rows
		// before pagination.
		esQuery.Skip = 0
		esQuery.Limit = MaxLimit
	}

	body, err := json.Marshal(BuildQuery(esQuery))
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search articles: %s", res.String())
	}

	articles, err := decodeHits(res.Body)
	if err != nil {
		return nil, err
	}

	if q.Search != "" {
		articles = filterByTitle(articles, q.Search)
		articles = paginate(articles, q.Skip, q.Limit)
	}
	return articles, nil
}

func decodeHits(body io.Reader) ([]domain.Article, error) {
	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	articles := make([]domain.Article, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		var article domain.Article
		if err := mapstructure.Decode(hit.Source, &article); err != nil {
			return nil, fmt.Errorf("map search hit: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func filterByTitle(articles []domain.Article, search string) []domain.Article {
	needle := strings.ToLower(search)
	filtered := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Title), needle) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

func paginate(articles []domain.Article, skip, limit int) []domain.Article {
	if skip >= len(articles) {
		return nil
	}
	end := skip + limit
	if end > len(articles) {
		end = len(articles)
	}
	return articles[skip:end]
}

// Providers returns the distinct provider names present in the store.
func (s *Storage) Providers(ctx context.Context) ([]string, error) {
	return s.termsAggregation(ctx, "provider", nil)
}

// Categories returns the distinct categories, optionally scoped to a
// provider.
func (s *Storage) Categories(ctx context.Context, provider string) ([]string, error) {
	var filter map[string]any
	if provider != "" {
		filter = map[string]any{
			"term": map[string]any{"provider": provider},
		}
	}
	return s.termsAggregation(ctx, "category", filter)
}

// termsAggregation collects the distinct values of a keyword field.
func (s *Storage) termsAggregation(ctx context.Context, field string, filter map[string]any) ([]string, error) {
	query := map[string]any{"match_all": map[string]any{}}
	if filter != nil {
		query = map[string]any{
			"bool": map[string]any{"filter": []map[string]any{filter}},
		}
	}

	body, err := json.Marshal(map[string]any{
		"size":  0,
		"query": query,
		"aggs": map[string]any{
			"values": map[string]any{
				"terms": map[string]any{"field": field, "size": 100},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal aggregation: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", field, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("aggregate %s: %s", field, res.String())
	}

	var parsed struct {
		Aggregations struct {
			Values struct {
				Buckets []struct {
					Key string `json:"key"`
				} `json:"buckets"`
			} `json:"values"`
		} `json:"aggregations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode aggregation: %w", err)
	}

	values := make([]string, 0, len(parsed.Aggregations.Values.Buckets))
	for _, b := range parsed.Aggregations.Values.Buckets {
		values = append(values, b.Key)
	}
	return values, nil
}
