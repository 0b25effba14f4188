// Package resolver turns bare article identifiers into resolved articles.
// Resolution tries the document store first, then dispatches on identifier
// shape to scrape-based strategies, writes successes back to the store, and
// synthesizes a placeholder when everything is exhausted.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jonesrussell/newsgate/internal/cache"
	"github.com/jonesrussell/newsgate/internal/config/scraper"
	"github.com/jonesrussell/newsgate/internal/domain"
	"github.com/jonesrussell/newsgate/internal/logger"
	"github.com/jonesrussell/newsgate/internal/scrape"
)

// maxHarvestProbes bounds how many harvested homepage links are fetched
// during hash resolution.
const maxHarvestProbes = 10

// PageFetcher retrieves page bodies.
type PageFetcher interface {
	Page(ctx context.Context, url string) (string, error)
}

// ArticleStore is the persistence surface the resolver needs.
type ArticleStore interface {
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
	SaveArticle(ctx context.Context, article *domain.Article) error
}

// LinkSearcher locates article URLs via web search.
type LinkSearcher interface {
	Enabled() bool
	FindArticleURL(ctx context.Context, query string, domains []string) (string, error)
}

// Summarizer produces article summaries.
type Summarizer interface {
	Summarize(ctx context.Context, title, body string) string
}

// Resolver implements identifier dispatch and the resolution strategies.
type Resolver struct {
	store      ArticleStore
	fetcher    PageFetcher
	cache      *cache.Service
	extractor  *scrape.Extractor
	harvester  *scrape.Harvester
	searcher   LinkSearcher
	summarizer Summarizer
	cfg        *scraper.Config
	logger     logger.Interface
	now        func() time.Time
}

// New creates a resolver.
func New(
	store ArticleStore,
	fetcher PageFetcher,
	cacheSvc *cache.Service,
	extractor *scrape.Extractor,
	harvester *scrape.Harvester,
	searcher LinkSearcher,
	summarizer Summarizer,
	cfg *scraper.Config,
	log logger.Interface,
) *Resolver {
	return &Resolver{
		store:      store,
		fetcher:    fetcher,
		cache:      cacheSvc,
		extractor:  extractor,
		harvester:  harvester,
		searcher:   searcher,
		summarizer: summarizer,
		cfg:        cfg,
		logger:     log,
		now:        time.Now,
	}
}

// Resolve returns the article for the given identifier. The document store
// is consulted first and short-circuits without any network traffic. Other
// strategies are picked by identifier shape; when all of them exhaust, a
// placeholder article is returned with the requested id. Only identifiers
// whose shape matches no strategy produce domain.ErrNotFound. The whole
// attempt is bounded by the configured resolution timeout.
func (r *Resolver) Resolve(ctx context.Context, id string) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ResolutionTimeout)
	defer cancel()

	if stored, err := r.store.GetArticle(ctx, id); err == nil {
		r.logger.Debug("article resolved from store", "id", id)
		return stored, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		r.logger.Warn("store lookup failed, continuing with resolution", "id", id, "error", err)
	}

	kind := domain.ClassifyIdentifier(id)
	r.logger.Debug("dispatching identifier", "id", id, "kind", kind.String())

	var article *domain.Article
	switch kind {
	case domain.KindHash:
		article = r.resolveHash(ctx, id)
	case domain.KindSlug:
		article = r.resolveSlug(ctx, id, domain.SlugFromID(id))
	case domain.KindGeneric:
		article = r.resolveSlug(ctx, id, id)
	default:
		return nil, domain.ErrNotFound
	}

	if article != nil {
		article.ID = id
		r.persist(ctx, article)
		return article, nil
	}

	r.logger.Info("all strategies exhausted, synthesizing placeholder", "id", id)
	return synthesizePlaceholder(id, r.now()), nil
}

// resolveHash handles "df.cl-<hash>" identifiers: cached article, legacy
// URL probe, homepage harvest, then search-assisted lookup.
func (r *Resolver) resolveHash(ctx context.Context, id string) *domain.Article {
	if cached, ok := r.cache.FindArticleByID(id); ok {
		return &cached
	}

	hash := domain.HashFromID(id)
	if article, err := r.ResolveURL(ctx, LegacyURL(hash)); err == nil {
		return article
	}

	if article := r.probeHomepage(ctx, func(h scrape.Headline) bool { return true }); article != nil {
		return article
	}

	if r.searcher.Enabled() {
		query := fmt.Sprintf("df.cl %s noticias empresas", hash)
		link, err := r.searcher.FindArticleURL(ctx, query, r.cfg.Domains)
		if err != nil {
			r.logger.Warn("search-assisted resolution failed", "id", id, "error", err)
		} else if link != "" {
			if article, aerr := r.ResolveURL(ctx, link); aerr == nil {
				return article
			}
		}
	}

	return nil
}

// resolveSlug handles "df-<slug>" identifiers: cached article, pattern
// enumeration, then homepage harvest restricted to links mentioning the
// slug.
func (r *Resolver) resolveSlug(ctx context.Context, id, slug string) *domain.Article {
	if cached, ok := r.cache.FindArticleByID(id); ok {
		return &cached
	}

	for _, candidate := range CandidateURLs(slug, r.cfg.Domains, r.cfg.Sections) {
		if ctx.Err() != nil {
			return nil
		}
		article, err := r.ResolveURL(ctx, candidate)
		if err == nil {
			return article
		}
	}

	return r.probeHomepage(ctx, func(h scrape.Headline) bool {
		return strings.Contains(h.URL, slug)
	})
}

// probeHomepage harvests the homepage and fetches matching links until one
// extracts, bounded by maxHarvestProbes.
func (r *Resolver) probeHomepage(ctx context.Context, match func(scrape.Headline) bool) *domain.Article {
	html, err := r.fetcher.Page(ctx, r.cfg.HomepageURL)
	if err != nil {
		r.logger.Warn("homepage fetch failed", "error", err)
		return nil
	}

	headlines, err := r.harvester.Harvest(html)
	if err != nil {
		r.logger.Warn("homepage harvest failed", "error", err)
		return nil
	}

	probes := 0
	for _, h := range headlines {
		if ctx.Err() != nil || probes >= maxHarvestProbes {
			return nil
		}
		if !match(h) {
			continue
		}
		probes++
		if article, aerr := r.ResolveURL(ctx, h.URL); aerr == nil {
			return article
		}
	}
	return nil
}

// ResolveURL fetches and extracts the article at the given URL. Results are
// cached by URL; cache hits skip the network entirely.
func (r *Resolver) ResolveURL(ctx context.Context, pageURL string) (*domain.Article, error) {
	if cached, ok := r.cache.GetArticle(pageURL); ok {
		return &cached, nil
	}

	html, err := r.fetcher.Page(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	extracted, err := r.extractor.Extract(html, pageURL)
	if err != nil {
		return nil, err
	}
	if extracted.Content == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoContent, pageURL)
	}

	article := &domain.Article{
		ID:          domain.SlugIDPrefix + slugFromURL(pageURL),
		Title:       extracted.Title,
		Content:     extracted.Content,
		URL:         pageURL,
		ImageURL:    extracted.ImageURL,
		Provider:    domain.ProviderDF,
		Category:    extracted.Category,
		CreatedAt:   extracted.CreatedAt,
		RelatedURLs: scrape.RelatedLinks(html, pageURL, domain.MaxRelatedURLs),
	}
	article.Normalize()
	article.ApplyDerived()
	article.Summary = r.summarizer.Summarize(ctx, article.Title, article.Content)

	r.cache.SetArticle(pageURL, *article)
	return article, nil
}

// Candidates returns the candidate URL set for a slug, in probe order.
func (r *Resolver) Candidates(slug string) []string {
	return CandidateURLs(slug, r.cfg.Domains, r.cfg.Sections)
}

// persist writes a freshly resolved article back to the store. Failures are
// logged and swallowed; persistence never fails the read path.
func (r *Resolver) persist(ctx context.Context, article *domain.Article) {
	if err := r.store.SaveArticle(ctx, article); err != nil {
		r.logger.Warn("article persistence failed", "id", article.ID, "error", err)
	}
}

// slugFromURL derives the slug identifier fragment from the last URL path
// segment.
func slugFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return strings.TrimSuffix(pageURL, "/")
	}
	path := strings.TrimRight(u.Path, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	return strings.TrimSuffix(path, ".html")
}
