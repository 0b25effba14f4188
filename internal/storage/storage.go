package storage

import (
	"context"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/newsgate/internal/domain"
	"github.com/jonesrussell/newsgate/internal/logger"
)

// Interface defines article store operations.
type Interface interface {
	// GetArticle fetches an article by its identifier. Returns
	// domain.ErrNotFound when no document exists.
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
	// SaveArticle upserts an article keyed by its identifier.
	SaveArticle(ctx context.Context, article *domain.Article) error
	// DeleteArticle removes an article by identifier.
	DeleteArticle(ctx context.Context, id string) error
	// QueryArticles lists articles matching the given filters.
	QueryArticles(ctx context.Context, q ArticleQuery) ([]domain.Article, error)
	// Providers returns the distinct provider names present in the store.
	Providers(ctx context.Context) ([]string, error)
	// Categories returns the distinct categories, optionally scoped to a
	// provider.
	Categories(ctx context.Context, provider string) ([]string, error)
}

// Ensure Storage implements Interface
var _ Interface = (*Storage)(nil)

// Storage implements the article store on Elasticsearch.
type Storage struct {
	client *es.Client
	index  string
	logger logger.Interface
}

// New creates an article store backed by the given client and index.
func New(client *es.Client, index string, log logger.Interface) *Storage {
	return &Storage{
		client: client,
		index:  index,
		logger: log,
	}
}

// Index returns the index name this store writes to.
func (s *Storage) Index() string {
	return s.index
}
