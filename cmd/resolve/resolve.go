// Package resolve implements the one-shot article resolution command.
package resolve

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsgate/internal/app"
	"github.com/jonesrussell/newsgate/internal/cache"
	"github.com/jonesrussell/newsgate/internal/domain"
	"github.com/jonesrussell/newsgate/internal/fetch"
	"github.com/jonesrussell/newsgate/internal/resolver"
	"github.com/jonesrussell/newsgate/internal/scrape"
	"github.com/jonesrussell/newsgate/internal/search"
	"github.com/jonesrussell/newsgate/internal/summarizer"
)

// contentPreviewLength bounds the body preview printed to the terminal.
const contentPreviewLength = 300

// Command returns the resolve command.
func Command() *cobra.Command {
	var skipStore bool

	cmd := &cobra.Command{
		Use:   "resolve <identifier>",
		Short: "Resolve an article identifier to a full article",
		Long: `Resolve runs the full resolution pipeline for a single identifier:
document store lookup, scrape-based strategies, and fallback synthesis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], skipStore)
		},
	}

	cmd.Flags().BoolVar(&skipStore, "skip-store", false, "resolve without consulting or writing the document store")
	return cmd
}

func run(cmd *cobra.Command, id string, skipStore bool) error {
	deps, err := app.New()
	if err != nil {
		return err
	}

	var store resolver.ArticleStore
	if skipStore {
		store = noopStore{}
	} else {
		if err := deps.ConnectStorage(); err != nil {
			return err
		}
		store = deps.Storage
	}

	scraperCfg := deps.Config.GetScraperConfig()
	cacheSvc := cache.New(cache.Options{
		PageSize:    scraperCfg.PageCacheSize,
		PageTTL:     scraperCfg.PageCacheTTL,
		ArticleSize: scraperCfg.ArticleCacheSize,
		ArticleTTL:  scraperCfg.ArticleCacheTTL,
	})

	res := resolver.New(
		store,
		fetch.New(scraperCfg, cacheSvc, deps.Logger),
		cacheSvc,
		scrape.NewExtractor(deps.Logger),
		scrape.NewHarvester(scraperCfg.HomepageURL, deps.Logger),
		search.NewClient(deps.Config.GetSearchConfig(), deps.Logger),
		summarizer.New(deps.Config.GetSummarizerConfig(), deps.Logger),
		scraperCfg,
		deps.Logger,
	)

	article, err := res.Resolve(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", id, err)
	}

	renderArticle(article)
	return nil
}

// renderArticle prints the resolved article as a two-column table.
func renderArticle(article *domain.Article) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = true

	const valueColumnWidth = 100
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: valueColumnWidth},
	})

	preview := strings.Join(strings.Fields(article.Content), " ")
	if len([]rune(preview)) > contentPreviewLength {
		preview = string([]rune(preview)[:contentPreviewLength]) + "..."
	}

	t.AppendRows([]table.Row{
		{"ID", article.ID},
		{"Title", article.Title},
		{"Provider", article.Provider},
		{"Category", article.Category},
		{"Created", article.CreatedAt},
		{"URL", article.URL},
		{"Summary", article.Summary},
		{"Content", preview},
	})
	t.Render()
}

// noopStore satisfies the resolver without touching persistence.
type noopStore struct{}

func (noopStore) GetArticle(_ context.Context, _ string) (*domain.Article, error) {
	return nil, domain.ErrNotFound
}

func (noopStore) SaveArticle(_ context.Context, _ *domain.Article) error {
	return nil
}
