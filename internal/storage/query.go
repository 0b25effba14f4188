package storage

import "fmt"

// Query bounds.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ArticleQuery holds list filters for QueryArticles.
type ArticleQuery struct {
	// Category filters by exact category.
	Category string
	// Provider filters by exact provider name.
	Provider string
	// Search filters titles by case-insensitive substring. Applied
	// client-side after the store query.
	Search string
	// Days restricts results to articles created in the last N days.
	Days int
	// Skip is the pagination offset.
	Skip int
	// Limit is the page size, clamped to MaxLimit.
	Limit int
}

// normalize applies pagination bounds.
func (q *ArticleQuery) normalize() {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Skip < 0 {
		q.Skip = 0
	}
}

// BuildQuery translates an ArticleQuery into an Elasticsearch request body.
// Title search is not part of the query; it is applied client-side so the
// substring semantics stay exact regardless of index analyzers.
func BuildQuery(q ArticleQuery) map[string]any {
	var filters []map[string]any
	if q.Category != "" {
		filters = append(filters, map[string]any{
			"term": map[string]any{"category": q.Category},
		})
	}
	if q.Provider != "" {
		filters = append(filters, map[string]any{
			"term": map[string]any{"provider": q.Provider},
		})
	}
	if q.Days > 0 {
		filters = append(filters, map[string]any{
			"range": map[string]any{
				"created_at": map[string]any{
					"gte": fmt.Sprintf("now-%dd/d", q.Days),
				},
			},
		})
	}

	query := map[string]any{"match_all": map[string]any{}}
	if len(filters) > 0 {
		query = map[string]any{
			"bool": map[string]any{"filter": filters},
		}
	}

	return map[string]any{
		"query": query,
		"sort": []map[string]any{
			{"created_at": map[string]any{"order": "desc"}},
		},
		"from": q.Skip,
		"size": q.Limit,
	}
}
