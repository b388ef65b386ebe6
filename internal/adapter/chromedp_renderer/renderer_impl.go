package chromedp_renderer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/user/docfeed-crawler/internal/adapter/goquery_page"
	"github.com/user/docfeed-crawler/internal/repository"
)

// Options configures the browser session.
type Options struct {
	PageLoadTimeout time.Duration
	UserAgent       string
	AcceptLanguage  string
	// ExecPath overrides Chrome discovery when set.
	ExecPath string
}

// ChromedpRenderer renders pages in one headless Chrome tab that lives for the
// whole crawl. It is not safe for concurrent use.
type ChromedpRenderer struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	timeout       time.Duration
}

var _ repository.Renderer = (*ChromedpRenderer)(nil)

// NewChromedpRenderer starts the browser. The caller must Close it on every exit path.
func NewChromedpRenderer(opts Options) (*ChromedpRenderer, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(logf))

	setup := []chromedp.Action{network.Enable()}
	if opts.AcceptLanguage != "" {
		setup = append(setup, network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": opts.AcceptLanguage}))
	}
	if opts.UserAgent != "" {
		setup = append(setup, emulation.SetUserAgentOverride(opts.UserAgent).WithAcceptLanguage(opts.AcceptLanguage))
	}

	// The first Run launches the browser; it must not use a derived timeout
	// context or the browser would die with it.
	if err := chromedp.Run(browserCtx, setup...); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	timeout := opts.PageLoadTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &ChromedpRenderer{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		timeout:       timeout,
	}, nil
}

// Render navigates the shared tab to url, waits settle and parses the resulting DOM.
func (r *ChromedpRenderer) Render(ctx context.Context, url string, settle time.Duration) (repository.Element, error) {
	taskCtx, cancel := context.WithTimeout(r.browserCtx, r.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", repository.ErrNavigationFailed, url, err)
	}

	page, err := goquery_page.ParseString(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	slog.Debug("Rendered page", "url", url, "bytes", len(html))
	return page, nil
}

// Close shuts the browser down and releases the allocator.
func (r *ChromedpRenderer) Close() error {
	err := chromedp.Cancel(r.browserCtx)
	r.browserCancel()
	r.allocCancel()
	return err
}

func logf(format string, args ...interface{}) {
	slog.Debug(fmt.Sprintf(format, args...), "component", "chromedp")
}
