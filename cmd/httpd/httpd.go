// Package httpd implements the HTTP server command.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsgate/internal/api"
	"github.com/jonesrussell/newsgate/internal/app"
	"github.com/jonesrussell/newsgate/internal/cache"
	"github.com/jonesrussell/newsgate/internal/fetch"
	"github.com/jonesrussell/newsgate/internal/resolver"
	"github.com/jonesrussell/newsgate/internal/schedule"
	"github.com/jonesrussell/newsgate/internal/scrape"
	"github.com/jonesrussell/newsgate/internal/search"
	"github.com/jonesrussell/newsgate/internal/summarizer"
)

// shutdownTimeout bounds graceful server shutdown.
const shutdownTimeout = 15 * time.Second

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the news API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
}

func run(ctx context.Context) error {
	deps, err := app.New()
	if err != nil {
		return err
	}
	if err := deps.ConnectStorage(); err != nil {
		return err
	}

	if err := deps.Storage.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}

	scraperCfg := deps.Config.GetScraperConfig()
	cacheSvc := cache.New(cache.Options{
		PageSize:    scraperCfg.PageCacheSize,
		PageTTL:     scraperCfg.PageCacheTTL,
		ArticleSize: scraperCfg.ArticleCacheSize,
		ArticleTTL:  scraperCfg.ArticleCacheTTL,
	})

	fetcher := fetch.New(scraperCfg, cacheSvc, deps.Logger)
	extractor := scrape.NewExtractor(deps.Logger)
	harvester := scrape.NewHarvester(scraperCfg.HomepageURL, deps.Logger)
	searcher := search.NewClient(deps.Config.GetSearchConfig(), deps.Logger)
	summarySvc := summarizer.New(deps.Config.GetSummarizerConfig(), deps.Logger)

	res := resolver.New(
		deps.Storage,
		fetcher,
		cacheSvc,
		extractor,
		harvester,
		searcher,
		summarySvc,
		scraperCfg,
		deps.Logger,
	)

	refresher := schedule.NewRefresher(fetcher, harvester, res, scraperCfg, deps.Logger)
	if err := refresher.Start(ctx); err != nil {
		return err
	}
	defer refresher.Stop()

	handler := api.NewHandler(deps.Storage, res, refresher, deps.Logger)
	srv := api.StartHTTPServer(deps.Logger, handler, deps.Config)

	errCh := make(chan error, 1)
	go func() {
		deps.Logger.Info("HTTP server starting", "address", srv.Addr)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		deps.Logger.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		deps.Logger.Info("shutting down", "reason", "context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	deps.Logger.Info("server stopped")
	return nil
}
