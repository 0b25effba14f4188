// Package cache provides in-memory TTL caches for fetched pages and resolved
// articles. Both caches evict by LRU when full and by TTL otherwise, which
// keeps repeat lookups for popular articles off the network without letting
// stale content live forever.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jonesrussell/newsgate/internal/domain"
)

// Service holds the page and article caches.
type Service struct {
	pages    *expirable.LRU[string, string]
	articles *expirable.LRU[string, domain.Article]
}

// Options configures cache capacities and lifetimes.
type Options struct {
	PageSize    int
	PageTTL     time.Duration
	ArticleSize int
	ArticleTTL  time.Duration
}

// New creates a cache service with the given capacities and TTLs.
func New(opts Options) *Service {
	return &Service{
		pages:    expirable.NewLRU[string, string](opts.PageSize, nil, opts.PageTTL),
		articles: expirable.NewLRU[string, domain.Article](opts.ArticleSize, nil, opts.ArticleTTL),
	}
}

// GetPage returns a cached page body by URL.
func (s *Service) GetPage(url string) (string, bool) {
	return s.pages.Get(url)
}

// SetPage stores a page body under its URL.
func (s *Service) SetPage(url, body string) {
	s.pages.Add(url, body)
}

// GetArticle returns a cached article by URL.
func (s *Service) GetArticle(url string) (domain.Article, bool) {
	return s.articles.Get(url)
}

// SetArticle stores an article under its URL.
func (s *Service) SetArticle(url string, article domain.Article) {
	s.articles.Add(url, article)
}

// FindArticleByID scans cached articles for one with the given ID. The
// article cache is keyed by URL, so identifier lookups walk the values.
func (s *Service) FindArticleByID(id string) (domain.Article, bool) {
	for _, a := range s.articles.Values() {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Article{}, false
}

// Purge drops all cached pages and articles.
func (s *Service) Purge() {
	s.pages.Purge()
	s.articles.Purge()
}

// Len returns the number of cached pages and articles.
func (s *Service) Len() (pages, articles int) {
	return s.pages.Len(), s.articles.Len()
}
