package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsgate/internal/api"
	"github.com/jonesrussell/newsgate/internal/cache"
	"github.com/jonesrussell/newsgate/internal/config"
	summarizercfg "github.com/jonesrussell/newsgate/internal/config/summarizer"
	"github.com/jonesrussell/newsgate/internal/domain"
	"github.com/jonesrussell/newsgate/internal/logger"
	"github.com/jonesrussell/newsgate/internal/resolver"
	"github.com/jonesrussell/newsgate/internal/schedule"
	"github.com/jonesrussell/newsgate/internal/scrape"
	"github.com/jonesrussell/newsgate/internal/storage"
	"github.com/jonesrussell/newsgate/internal/summarizer"
)

type stubStore struct {
	queries    []storage.ArticleQuery
	articles   []domain.Article
	providers  []string
	categories []string
}

func (s *stubStore) GetArticle(_ context.Context, _ string) (*domain.Article, error) {
	return nil, domain.ErrNotFound
}

func (s *stubStore) SaveArticle(_ context.Context, _ *domain.Article) error { return nil }

func (s *stubStore) DeleteArticle(_ context.Context, _ string) error { return nil }

func (s *stubStore) QueryArticles(_ context.Context, q storage.ArticleQuery) ([]domain.Article, error) {
	s.queries = append(s.queries, q)
	return s.articles, nil
}

func (s *stubStore) Providers(_ context.Context) ([]string, error) {
	return s.providers, nil
}

func (s *stubStore) Categories(_ context.Context, _ string) ([]string, error) {
	return s.categories, nil
}

type failingFetcher struct{}

func (failingFetcher) Page(_ context.Context, url string) (string, error) {
	return "", &fetchError{url: url}
}

type fetchError struct{ url string }

func (e *fetchError) Error() string { return "fetch failed: " + e.url }

type disabledSearcher struct{}

func (disabledSearcher) Enabled() bool { return false }
func (disabledSearcher) FindArticleURL(_ context.Context, _ string, _ []string) (string, error) {
	return "", nil
}

func newTestRouter(t *testing.T, store *stubStore) http.Handler {
	t.Helper()

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	log := logger.NewNoOp()
	scraperCfg := cfg.GetScraperConfig()
	cacheSvc := cache.New(cache.Options{
		PageSize:    scraperCfg.PageCacheSize,
		PageTTL:     scraperCfg.PageCacheTTL,
		ArticleSize: scraperCfg.ArticleCacheSize,
		ArticleTTL:  scraperCfg.ArticleCacheTTL,
	})

	fetcher := failingFetcher{}
	harvester := scrape.NewHarvester(scraperCfg.HomepageURL, log)
	res := resolver.New(
		store,
		fetcher,
		cacheSvc,
		scrape.NewExtractor(log),
		harvester,
		disabledSearcher{},
		summarizer.New(summarizercfg.NewConfig(), log),
		scraperCfg,
		log,
	)
	refresher := schedule.NewRefresher(fetcher, harvester, res, scraperCfg, log)

	return api.SetupRouter(log, api.NewHandler(store, res, refresher, log), cfg)
}

func doRequest(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubStore{})
	w := doRequest(router, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListNews(t *testing.T) {
	t.Parallel()

	store := &stubStore{articles: []domain.Article{
		{ID: "df-uno", Title: "Uno", Provider: domain.ProviderDF},
		{ID: "df-dos", Title: "Dos", Provider: domain.ProviderDF},
	}}
	router := newTestRouter(t, store)

	w := doRequest(router, "/api/news?provider=df&days=7&limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Articles []domain.Article `json:"articles"`
		Count    int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 2, body.Count)
	require.Equal(t, "df-uno", body.Articles[0].ID)

	require.Len(t, store.queries, 1)
	require.Equal(t, domain.ProviderDF, store.queries[0].Provider)
	require.Equal(t, 7, store.queries[0].Days)
	require.Equal(t, 10, store.queries[0].Limit)
}

func TestFeaturedNewsQueriesBothProviders(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	router := newTestRouter(t, store)

	w := doRequest(router, "/api/news/featured")
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, store.queries, 2)
	require.Equal(t, domain.ProviderBloomberg, store.queries[0].Provider)
	require.Equal(t, domain.ProviderDF, store.queries[1].Provider)
}

func TestNewsByProviderDedupes(t *testing.T) {
	t.Parallel()

	store := &stubStore{articles: []domain.Article{
		{ID: "df-uno", Title: "Uno"},
		{ID: "df-uno", Title: "Uno repetido"},
		{ID: "df-dos", Title: "Dos"},
	}}
	router := newTestRouter(t, store)

	w := doRequest(router, "/api/news/provider/df.cl")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Provider string           `json:"provider"`
		Articles []domain.Article `json:"articles"`
		Count    int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, domain.ProviderDF, body.Provider)
	require.Equal(t, 2, body.Count)
	require.Equal(t, "df-uno", body.Articles[0].ID)
	require.Equal(t, "df-dos", body.Articles[1].ID)
}

func TestGetNewsUnknownShape(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubStore{})

	w := doRequest(router, "/api/news/bloomberg-market-update")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetNewsExhaustedSlugReturnsPlaceholder(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubStore{})

	w := doRequest(router, "/api/news/df-noticia-inexistente")
	require.Equal(t, http.StatusOK, w.Code)

	var article domain.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))
	require.Equal(t, "df-noticia-inexistente", article.ID)
	require.Contains(t, article.Content, "no está disponible")
}

func TestProvidersAndCategories(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		providers:  []string{"DF.cl", "Bloomberg"},
		categories: []string{"Mercados", "Empresas"},
	}
	router := newTestRouter(t, store)

	w := doRequest(router, "/api/news/providers")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"providers":["DF.cl","Bloomberg"]}`, w.Body.String())

	w = doRequest(router, "/api/news/categories")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"categories":["Mercados","Empresas"]}`, w.Body.String())
}

func TestResolveByURLRequiresParameter(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubStore{})

	w := doRequest(router, "/api/news/df/url")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, "/api/news/df/url?url=https%3A%2F%2Fwww.df.cl%2Fmercados%2Fcaida")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestLatestNewsEmptySnapshot(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubStore{})

	w := doRequest(router, "/api/news/latest")
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot schedule.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	require.Empty(t, snapshot.Articles)
}

func TestCORSHeaders(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/news", http.NoBody)
	req.Header.Set("Origin", "https://example.com")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
