package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/user/docfeed-crawler/internal/entity"
	"github.com/user/docfeed-crawler/internal/repository"
	"github.com/user/docfeed-crawler/pkg/metrics"
)

// SettleDelays are the waits after navigation, per page kind.
type SettleDelays struct {
	Landing  time.Duration // landing page and service index pages
	Document time.Duration
	History  time.Duration
}

// Options configures a crawl.
type Options struct {
	LandingURL string
	// DocHost is prefixed to root-relative links.
	DocHost   string
	Settle    SettleDelays
	Selectors Selectors
}

// Crawler defines the interface for the documentation feed crawl.
type Crawler interface {
	// Run walks category, service and document pages in order and returns the
	// tree. It fails only when the landing page cannot be rendered or ctx is
	// cancelled; every other problem leaves a partial node behind.
	Run(ctx context.Context) (*entity.CrawlResult, error)
}

type crawlerUseCase struct {
	pages      pageRenderer
	feeds      *FeedResolver
	metrics    *metrics.Metrics
	selectors  Selectors
	landingURL string
	host       string
	settle     SettleDelays
}

// NewCrawlerUseCase creates a crawler that renders every page through renderer.
// The renderer is used sequentially and is not closed by the crawler.
func NewCrawlerUseCase(renderer repository.Renderer, opts Options, m *metrics.Metrics) Crawler {
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}
	return &crawlerUseCase{
		pages:      pageRenderer{renderer: renderer, metrics: m},
		feeds:      NewFeedResolver(renderer, opts.Selectors, opts.DocHost, opts.Settle.History, m),
		metrics:    m,
		selectors:  opts.Selectors,
		landingURL: opts.LandingURL,
		host:       opts.DocHost,
		settle:     opts.Settle,
	}
}

func (uc *crawlerUseCase) Run(ctx context.Context) (*entity.CrawlResult, error) {
	startTime := time.Now()

	landing, err := uc.pages.render(ctx, metrics.PageLanding, uc.landingURL, uc.settle.Landing)
	if err != nil {
		return nil, fmt.Errorf("failed to render landing page: %w", err)
	}

	categories := landing.Find(uc.selectors.CategorySection)
	slog.Info("Landing page rendered", "url", uc.landingURL, "categories", len(categories))

	result := entity.NewCrawlResult()
	for i, el := range categories {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("crawl interrupted after %d categories: %w", i, err)
		}

		category := uc.extractCategory(ctx, el)
		if category.Err != nil {
			uc.metrics.IncFailure(metrics.LevelCategory)
			slog.Error("Category incomplete", "position", i, "category", category.Node.Title, "error", category.Err)
		}
		result.Categories = append(result.Categories, category.Node)
		uc.metrics.IncExtracted(metrics.LevelCategory)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("crawl interrupted: %w", err)
	}

	duration := time.Since(startTime)
	uc.metrics.CrawlDuration.Observe(duration.Seconds())

	stats := result.Stats()
	slog.Info("Crawl finished",
		"categories", stats.Categories,
		"services", stats.Services,
		"documents", stats.Documents,
		"feeds", stats.Feeds,
		"duration_ms", duration.Milliseconds(),
	)
	return result, nil
}
