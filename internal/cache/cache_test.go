package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsgate/internal/cache"
	"github.com/jonesrussell/newsgate/internal/domain"
)

func newService() *cache.Service {
	return cache.New(cache.Options{
		PageSize:    4,
		PageTTL:     time.Minute,
		ArticleSize: 4,
		ArticleTTL:  time.Minute,
	})
}

func TestPageCache(t *testing.T) {
	t.Parallel()

	svc := newService()

	_, ok := svc.GetPage("https://www.df.cl/a")
	require.False(t, ok)

	svc.SetPage("https://www.df.cl/a", "<html>a</html>")
	body, ok := svc.GetPage("https://www.df.cl/a")
	require.True(t, ok)
	require.Equal(t, "<html>a</html>", body)
}

func TestArticleCacheByID(t *testing.T) {
	t.Parallel()

	svc := newService()
	article := domain.Article{
		ID:      "df-mi-noticia",
		Title:   "Titular",
		Content: "cuerpo",
		URL:     "https://www.df.cl/mercados/mi-noticia",
	}
	svc.SetArticle(article.URL, article)

	byURL, ok := svc.GetArticle(article.URL)
	require.True(t, ok)
	require.Equal(t, article, byURL)

	byID, ok := svc.FindArticleByID("df-mi-noticia")
	require.True(t, ok)
	require.Equal(t, article, byID)

	_, ok = svc.FindArticleByID("df-otra")
	require.False(t, ok)
}

func TestLRUEviction(t *testing.T) {
	t.Parallel()

	svc := newService()
	for _, key := range []string{"a", "b", "c", "d", "e"} {
		svc.SetPage(key, key)
	}

	// Oldest entry is displaced once capacity is exceeded.
	_, ok := svc.GetPage("a")
	require.False(t, ok)
	_, ok = svc.GetPage("e")
	require.True(t, ok)

	pages, _ := svc.Len()
	require.Equal(t, 4, pages)
}

func TestPurge(t *testing.T) {
	t.Parallel()

	svc := newService()
	svc.SetPage("a", "a")
	svc.SetArticle("u", domain.Article{ID: "df-x"})

	svc.Purge()

	pages, articles := svc.Len()
	require.Zero(t, pages)
	require.Zero(t, articles)
}
