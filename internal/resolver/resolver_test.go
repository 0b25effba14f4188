package resolver_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsgate/internal/cache"
	"github.com/jonesrussell/newsgate/internal/config/scraper"
	summarizercfg "github.com/jonesrussell/newsgate/internal/config/summarizer"
	"github.com/jonesrussell/newsgate/internal/domain"
	"github.com/jonesrussell/newsgate/internal/logger"
	"github.com/jonesrussell/newsgate/internal/resolver"
	"github.com/jonesrussell/newsgate/internal/scrape"
	"github.com/jonesrussell/newsgate/internal/summarizer"
)

// articleHTML renders a minimal extractable article page.
func articleHTML(title string) string {
	return `<html><body><h1>` + title + `</h1><article><p>` +
		strings.Repeat("Contenido relevante de la noticia publicada. ", 10) +
		`</p></article></body></html>`
}

type stubStore struct {
	articles map[string]domain.Article
	saved    []domain.Article
}

func newStubStore() *stubStore {
	return &stubStore{articles: make(map[string]domain.Article)}
}

func (s *stubStore) GetArticle(_ context.Context, id string) (*domain.Article, error) {
	if a, ok := s.articles[id]; ok {
		copied := a
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubStore) SaveArticle(_ context.Context, article *domain.Article) error {
	s.articles[article.ID] = *article
	s.saved = append(s.saved, *article)
	return nil
}

type stubFetcher struct {
	pages map[string]string
	calls []string
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{pages: make(map[string]string)}
}

func (f *stubFetcher) Page(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if html, ok := f.pages[url]; ok {
		return html, nil
	}
	return "", errors.New("fetch failed")
}

type disabledSearcher struct{}

func (disabledSearcher) Enabled() bool { return false }
func (disabledSearcher) FindArticleURL(_ context.Context, _ string, _ []string) (string, error) {
	return "", nil
}

func newTestResolver(store resolver.ArticleStore, fetcher resolver.PageFetcher) (*resolver.Resolver, *scraper.Config) {
	cfg := scraper.NewConfig()
	log := logger.NewNoOp()
	cacheSvc := cache.New(cache.Options{
		PageSize:    cfg.PageCacheSize,
		PageTTL:     cfg.PageCacheTTL,
		ArticleSize: cfg.ArticleCacheSize,
		ArticleTTL:  cfg.ArticleCacheTTL,
	})

	res := resolver.New(
		store,
		fetcher,
		cacheSvc,
		scrape.NewExtractor(log),
		scrape.NewHarvester(cfg.HomepageURL, log),
		disabledSearcher{},
		summarizer.New(summarizercfg.NewConfig(), log),
		cfg,
		log,
	)
	return res, cfg
}

func TestCandidateURLs(t *testing.T) {
	t.Parallel()

	cfg := scraper.NewConfig()
	candidates := resolver.CandidateURLs("mi-slug", cfg.Domains, cfg.Sections)

	require.Len(t, candidates, 24)
	require.Equal(t, "https://www.df.cl/mi-slug", candidates[0])
	require.Equal(t, "https://www.df.cl/empresas/industria/mi-slug", candidates[1])
	require.Equal(t, "https://df.cl/mi-slug", candidates[12])

	// Deterministic: a second enumeration is identical.
	require.Equal(t, candidates, resolver.CandidateURLs("mi-slug", cfg.Domains, cfg.Sections))

	// Duplicated inputs collapse.
	deduped := resolver.CandidateURLs("x", []string{"https://df.cl", "https://df.cl"}, []string{"mercados"})
	require.Len(t, deduped, 2)
}

func TestResolveStoreHitSkipsNetwork(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	stored := domain.Article{
		ID:      "df-guardada",
		Title:   "Desde el store",
		Content: "cuerpo persistido",
	}
	store.articles[stored.ID] = stored

	fetcher := newStubFetcher()
	res, _ := newTestResolver(store, fetcher)

	got, err := res.Resolve(context.Background(), "df-guardada")
	require.NoError(t, err)
	require.Equal(t, stored, *got)
	require.Empty(t, fetcher.calls)
	require.Empty(t, store.saved)
}

func TestResolveSlugProbesExactlyN(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	fetcher := newStubFetcher()
	res, cfg := newTestResolver(store, fetcher)

	candidates := resolver.CandidateURLs("mi-slug", cfg.Domains, cfg.Sections)
	const n = 5
	fetcher.pages[candidates[n-1]] = articleHTML("Titular de la noticia encontrada")

	got, err := res.Resolve(context.Background(), "df-mi-slug")
	require.NoError(t, err)

	require.Equal(t, candidates[:n], fetcher.calls)
	require.Equal(t, "df-mi-slug", got.ID)
	require.Equal(t, "Titular de la noticia encontrada", got.Title)
	require.NotEmpty(t, got.Content)
	require.Len(t, store.saved, 1)
}

func TestResolveHashViaHomepageHarvest(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	fetcher := newStubFetcher()
	res, cfg := newTestResolver(store, fetcher)

	fetcher.pages[cfg.HomepageURL] = `<html><body>
<a href="/mercados/primera-noticia-del-dia-en-portada">Primera noticia del día en portada</a>
<a href="/empresas/segunda-noticia-del-dia-en-portada">Segunda noticia del día en portada</a>
<a href="/internacional/economia/tercera-noticia-en-portada">Tercera noticia en portada</a>
</body></html>`
	// Only the second harvested link extracts.
	fetcher.pages["https://www.df.cl/empresas/segunda-noticia-del-dia-en-portada"] =
		articleHTML("Segunda noticia del día")

	got, err := res.Resolve(context.Background(), "df.cl-abc123")
	require.NoError(t, err)

	require.Equal(t, "df.cl-abc123", got.ID)
	require.Equal(t, domain.ProviderDF, got.Provider)
	require.Equal(t, "Segunda noticia del día", got.Title)

	// Read-through persistence happened under the requested id.
	persisted, err := store.GetArticle(context.Background(), "df.cl-abc123")
	require.NoError(t, err)
	require.Equal(t, got.Content, persisted.Content)
}

func TestResolveSlugExhaustionSynthesizesPlaceholder(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	fetcher := newStubFetcher()
	res, cfg := newTestResolver(store, fetcher)

	got, err := res.Resolve(context.Background(), "df-my-slug")
	require.NoError(t, err)

	require.Equal(t, "df-my-slug", got.ID)
	require.Contains(t, got.Content, "no está disponible")
	require.Equal(t, domain.ProviderDF, got.Provider)

	// Placeholders are never persisted.
	require.Empty(t, store.saved)

	// All 24 candidates plus the homepage were probed.
	candidates := resolver.CandidateURLs("my-slug", cfg.Domains, cfg.Sections)
	require.Equal(t, candidates, fetcher.calls[:len(candidates)])
	require.Len(t, fetcher.calls, len(candidates)+1)
}

func TestResolveIdempotent(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	fetcher := newStubFetcher()
	res, cfg := newTestResolver(store, fetcher)

	candidates := resolver.CandidateURLs("repetida", cfg.Domains, cfg.Sections)
	fetcher.pages[candidates[0]] = articleHTML("Noticia repetida")

	first, err := res.Resolve(context.Background(), "df-repetida")
	require.NoError(t, err)

	fetchesAfterFirst := len(fetcher.calls)

	second, err := res.Resolve(context.Background(), "df-repetida")
	require.NoError(t, err)

	require.Equal(t, first.Content, second.Content)
	require.Equal(t, first.ID, second.ID)
	// Second resolution is served from the store, with no new fetches.
	require.Len(t, fetcher.calls, fetchesAfterFirst)
}

func TestResolveUnknownShape(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	fetcher := newStubFetcher()
	res, _ := newTestResolver(store, fetcher)

	_, err := res.Resolve(context.Background(), "bloomberg-market-update")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Empty(t, fetcher.calls)
}

func TestResolveURLUsesArticleCache(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	fetcher := newStubFetcher()
	res, _ := newTestResolver(store, fetcher)

	url := "https://www.df.cl/mercados/noticia-cacheada"
	fetcher.pages[url] = articleHTML("Noticia cacheada")

	first, err := res.ResolveURL(context.Background(), url)
	require.NoError(t, err)

	second, err := res.ResolveURL(context.Background(), url)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, fetcher.calls, 1)
}

func TestResolveURLRejectsEmptyBody(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	fetcher := newStubFetcher()
	res, _ := newTestResolver(store, fetcher)

	url := "https://www.df.cl/mercados/sin-cuerpo"
	fetcher.pages[url] = `<html><body><h1>Titular sin cuerpo</h1></body></html>`

	_, err := res.ResolveURL(context.Background(), url)
	require.ErrorIs(t, err, domain.ErrNoContent)
}
