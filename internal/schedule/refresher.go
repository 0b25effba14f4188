// Package schedule periodically re-harvests the provider homepage into an
// in-memory snapshot of categorized headlines. The snapshot backs the
// latest-news endpoint so it never blocks on live scraping.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/newsgate/internal/config/scraper"
	"github.com/jonesrussell/newsgate/internal/domain"
	"github.com/jonesrussell/newsgate/internal/logger"
	"github.com/jonesrussell/newsgate/internal/resolver"
	"github.com/jonesrussell/newsgate/internal/scrape"
)

// maxPerCategory bounds how many fully resolved articles each category
// keeps in the snapshot.
const maxPerCategory = 5

// Snapshot is the latest harvested state, grouped by category.
type Snapshot struct {
	// Articles are the fully resolved latest articles per category.
	Articles map[string][]domain.Article `json:"articles"`
	// RefreshedAt is when the snapshot was built.
	RefreshedAt string `json:"refreshed_at"`
}

// Refresher rebuilds the headline snapshot on a cron schedule.
type Refresher struct {
	fetcher   resolver.PageFetcher
	harvester *scrape.Harvester
	resolver  *resolver.Resolver
	cfg       *scraper.Config
	logger    logger.Interface

	cron *cron.Cron

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewRefresher creates a headline refresher.
func NewRefresher(
	fetcher resolver.PageFetcher,
	harvester *scrape.Harvester,
	res *resolver.Resolver,
	cfg *scraper.Config,
	log logger.Interface,
) *Refresher {
	return &Refresher{
		fetcher:   fetcher,
		harvester: harvester,
		resolver:  res,
		cfg:       cfg,
		logger:    log,
		cron:      cron.New(),
		snapshot:  Snapshot{Articles: map[string][]domain.Article{}},
	}
}

// Start runs an initial refresh and schedules periodic ones.
func (r *Refresher) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", r.cfg.RefreshInterval)
	if _, err := r.cron.AddFunc(spec, func() {
		r.Refresh(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}

	go r.Refresh(ctx)
	r.cron.Start()
	r.logger.Info("headline refresher started", "interval", r.cfg.RefreshInterval)
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

// Refresh harvests the homepage and resolves the first headlines of each
// category into a new snapshot. Per-link failures are skipped; the previous
// snapshot stays in place if the harvest itself fails.
func (r *Refresher) Refresh(ctx context.Context) {
	start := time.Now()

	html, err := r.fetcher.Page(ctx, r.cfg.HomepageURL)
	if err != nil {
		r.logger.Warn("headline refresh: homepage fetch failed", "error", err)
		return
	}

	headlines, err := r.harvester.Harvest(html)
	if err != nil {
		r.logger.Warn("headline refresh: harvest failed", "error", err)
		return
	}

	articles := make(map[string][]domain.Article)
	for _, h := range headlines {
		if ctx.Err() != nil {
			return
		}
		if len(articles[h.Category]) >= maxPerCategory {
			continue
		}
		article, aerr := r.resolver.ResolveURL(ctx, h.URL)
		if aerr != nil {
			r.logger.Debug("headline refresh: skipping link", "url", h.URL, "error", aerr)
			continue
		}
		articles[h.Category] = append(articles[h.Category], *article)
	}

	r.mu.Lock()
	r.snapshot = Snapshot{
		Articles:    articles,
		RefreshedAt: time.Now().Format(domain.DisplayTimeFormat),
	}
	r.mu.Unlock()

	total := 0
	for _, list := range articles {
		total += len(list)
	}
	r.logger.Info("headline snapshot refreshed",
		"articles", total,
		"categories", len(articles),
		"duration", time.Since(start))
}

// Latest returns the current snapshot.
func (r *Refresher) Latest() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}
