package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/user/docfeed-crawler/internal/repository"
	"github.com/user/docfeed-crawler/pkg/metrics"
	"github.com/user/docfeed-crawler/pkg/utils"
)

// FeedResolver finds the feed announcing updates of a rendered document page.
type FeedResolver struct {
	pages         pageRenderer
	selectors     Selectors
	host          string
	historySettle time.Duration
}

// NewFeedResolver creates a resolver that renders history pages through renderer.
func NewFeedResolver(renderer repository.Renderer, selectors Selectors, host string, historySettle time.Duration, m *metrics.Metrics) *FeedResolver {
	return &FeedResolver{
		pages:         pageRenderer{renderer: renderer, metrics: m},
		selectors:     selectors,
		host:          host,
		historySettle: historySettle,
	}
}

// Resolve returns the absolute feed URL for the document at docURL, or "" when
// neither the page itself nor its history page links a feed. It never fails.
func (f *FeedResolver) Resolve(ctx context.Context, docPage repository.Element, docURL string) string {
	feedURL, stage := f.resolve(ctx, docPage, docURL)
	f.pages.metrics.IncFeed(stage)
	return feedURL
}

func (f *FeedResolver) resolve(ctx context.Context, docPage repository.Element, docURL string) (string, string) {
	if feedURL := f.directFeed(docPage, docURL); feedURL != "" {
		return feedURL, metrics.StageDirect
	}

	historyURL := f.historyURL(docPage, docURL)
	if historyURL == "" {
		return "", metrics.StageNone
	}
	historyPage, err := f.pages.render(ctx, metrics.PageHistory, historyURL, f.historySettle)
	if err != nil {
		slog.Warn("Document history page unavailable", "document", docURL, "url", historyURL, "error", err)
		return "", metrics.StageNone
	}

	// Feed hrefs on the history page are relative to the document directory.
	if feedURL := f.directFeed(historyPage, docURL); feedURL != "" {
		return feedURL, metrics.StageHistory
	}
	return "", metrics.StageNone
}

// directFeed looks for the feed link on page and resolves it against docURL.
func (f *FeedResolver) directFeed(page repository.Element, docURL string) string {
	links := page.Find(f.selectors.FeedLink)
	if len(links) == 0 {
		return ""
	}
	href, ok := links[0].Attr("href")
	if !ok || href == "" {
		return ""
	}
	return utils.ResolveURL(f.host, docURL, href)
}

// historyURL scans the side navigation from the end, where the history entry
// conventionally sits, and stops at the first match.
func (f *FeedResolver) historyURL(page repository.Element, docURL string) string {
	nav := page.Find(f.selectors.DocumentNav)
	for i := len(nav) - 1; i >= 0; i-- {
		if nav[i].Text() != f.selectors.HistoryLabel {
			continue
		}
		href, ok := nav[i].Attr("href")
		if !ok || href == "" {
			return ""
		}
		return utils.ResolveURL(f.host, docURL, href)
	}
	return ""
}
