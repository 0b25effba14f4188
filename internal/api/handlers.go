package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/newsgate/internal/domain"
	"github.com/jonesrussell/newsgate/internal/logger"
	"github.com/jonesrussell/newsgate/internal/resolver"
	"github.com/jonesrussell/newsgate/internal/schedule"
	"github.com/jonesrussell/newsgate/internal/storage"
)

const featuredPerProvider = 5

// Handler bundles the dependencies behind the news endpoints.
type Handler struct {
	store     storage.Interface
	resolver  *resolver.Resolver
	refresher *schedule.Refresher
	logger    logger.Interface
}

// NewHandler creates the news API handler.
func NewHandler(
	store storage.Interface,
	res *resolver.Resolver,
	refresher *schedule.Refresher,
	log logger.Interface,
) *Handler {
	return &Handler{
		store:     store,
		resolver:  res,
		refresher: refresher,
		logger:    log,
	}
}

// ListNews serves GET /api/news with category/provider/search/days
// filters and skip/limit pagination.
func (h *Handler) ListNews(c *gin.Context) {
	q := storage.ArticleQuery{
		Category: c.Query("category"),
		Provider: domain.NormalizeProvider(c.Query("provider")),
		Search:   c.Query("search"),
		Days:     intQuery(c, "days", 0),
		Skip:     intQuery(c, "skip", 0),
		Limit:    intQuery(c, "limit", storage.DefaultLimit),
	}

	articles, err := h.store.QueryArticles(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("news listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list news"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles, "count": len(articles)})
}

// FeaturedNews serves GET /api/news/featured: the newest articles of each
// supported provider, merged.
func (h *Handler) FeaturedNews(c *gin.Context) {
	ctx := c.Request.Context()
	featured := make([]domain.Article, 0, 2*featuredPerProvider)

	for _, provider := range []string{domain.ProviderBloomberg, domain.ProviderDF} {
		articles, err := h.store.QueryArticles(ctx, storage.ArticleQuery{
			Provider: provider,
			Limit:    featuredPerProvider,
		})
		if err != nil {
			h.logger.Error("featured listing failed", "provider", provider, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list featured news"})
			return
		}
		featured = append(featured, articles...)
	}

	c.JSON(http.StatusOK, gin.H{"articles": featured, "count": len(featured)})
}

// LatestNews serves GET /api/news/latest from the refresher's snapshot.
func (h *Handler) LatestNews(c *gin.Context) {
	c.JSON(http.StatusOK, h.refresher.Latest())
}

// Providers serves GET /api/news/providers.
func (h *Handler) Providers(c *gin.Context) {
	providers, err := h.store.Providers(c.Request.Context())
	if err != nil {
		h.logger.Error("provider listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list providers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// Categories serves GET /api/news/categories, optionally scoped by
// ?provider=.
func (h *Handler) Categories(c *gin.Context) {
	provider := c.Query("provider")
	if provider != "" {
		provider = domain.NormalizeProvider(provider)
	}

	categories, err := h.store.Categories(c.Request.Context(), provider)
	if err != nil {
		h.logger.Error("category listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// NewsByProvider serves GET /api/news/provider/:provider with normalized
// provider casing, id-deduplication, and pagination.
func (h *Handler) NewsByProvider(c *gin.Context) {
	provider := domain.NormalizeProvider(c.Param("provider"))
	skip := intQuery(c, "skip", 0)
	limit := intQuery(c, "limit", storage.DefaultLimit)

	articles, err := h.store.QueryArticles(c.Request.Context(), storage.ArticleQuery{
		Provider: provider,
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		h.logger.Error("provider listing failed", "provider", provider, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list news"})
		return
	}

	seen := make(map[string]bool, len(articles))
	deduped := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		deduped = append(deduped, a)
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": provider,
		"articles": deduped,
		"count":    len(deduped),
	})
}

// GetNews serves GET /api/news/:id through the resolution pipeline. A
// placeholder article is a success; 404 is reserved for identifiers no
// strategy applies to.
func (h *Handler) GetNews(c *gin.Context) {
	id := c.Param("id")

	article, err := h.resolver.Resolve(c.Request.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "news not found"})
	case err != nil:
		h.logger.Error("news resolution failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve news"})
	default:
		c.JSON(http.StatusOK, article)
	}
}

// ResolveByURL serves GET /api/news/df/url?url=, extracting the article at
// an explicit URL.
func (h *Handler) ResolveByURL(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url parameter is required"})
		return
	}

	article, err := h.resolver.ResolveURL(c.Request.Context(), pageURL)
	if err != nil {
		h.logger.Warn("url resolution failed", "url", pageURL, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "no article found at url"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// TestResolve serves GET /api/news/df-test/:id, a diagnostic that reports
// which candidate URL (if any) an identifier resolves through, without the
// placeholder fallback masking failures.
func (h *Handler) TestResolve(c *gin.Context) {
	id := c.Param("id")
	slug := domain.SlugFromID(id)
	candidates := h.resolver.Candidates(slug)

	for _, candidate := range candidates {
		article, err := h.resolver.ResolveURL(c.Request.Context(), candidate)
		if err != nil {
			continue
		}
		c.JSON(http.StatusOK, gin.H{
			"id":           id,
			"resolved_url": candidate,
			"candidates":   len(candidates),
			"article":      article,
		})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{
		"id":         id,
		"candidates": len(candidates),
		"error":      "no candidate url resolved",
	})
}

// TestExtract serves GET /api/news/df-test-url?url=, a diagnostic exposing
// the raw extraction outcome for a URL.
func (h *Handler) TestExtract(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url parameter is required"})
		return
	}

	article, err := h.resolver.ResolveURL(c.Request.Context(), pageURL)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"url":     pageURL,
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":         pageURL,
		"success":     true,
		"title":       article.Title,
		"content_len": len(article.Content),
		"category":    article.Category,
		"image_url":   article.ImageURL,
	})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
