package storage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsgate/internal/storage"
)

func TestBuildQueryNoFilters(t *testing.T) {
	t.Parallel()

	body := storage.BuildQuery(storage.ArticleQuery{Skip: 0, Limit: 20})

	require.Equal(t, map[string]any{"match_all": map[string]any{}}, body["query"])
	require.Equal(t, 0, body["from"])
	require.Equal(t, 20, body["size"])

	sort, ok := body["sort"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, sort, 1)
	require.Equal(t, map[string]any{"order": "desc"}, sort[0]["created_at"])
}

func TestBuildQueryFilters(t *testing.T) {
	t.Parallel()

	body := storage.BuildQuery(storage.ArticleQuery{
		Category: "Mercados",
		Provider: "DF.cl",
		Days:     7,
		Skip:     40,
		Limit:    10,
	})

	boolQuery, ok := body["query"].(map[string]any)
	require.True(t, ok)
	filters, ok := boolQuery["bool"].(map[string]any)["filter"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, filters, 3)

	require.Equal(t, map[string]any{"category": "Mercados"}, filters[0]["term"])
	require.Equal(t, map[string]any{"provider": "DF.cl"}, filters[1]["term"])
	require.Equal(t,
		map[string]any{"created_at": map[string]any{"gte": "now-7d/d"}},
		filters[2]["range"])

	require.Equal(t, 40, body["from"])
	require.Equal(t, 10, body["size"])
}

func TestBuildQueryPartialFilters(t *testing.T) {
	t.Parallel()

	body := storage.BuildQuery(storage.ArticleQuery{Provider: "Bloomberg", Limit: 5})

	boolQuery := body["query"].(map[string]any)
	filters := boolQuery["bool"].(map[string]any)["filter"].([]map[string]any)
	require.Len(t, filters, 1)
	require.Equal(t, map[string]any{"provider": "Bloomberg"}, filters[0]["term"])
}
