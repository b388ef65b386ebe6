package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/user/docfeed-crawler/internal/adapter/goquery_page"
	"github.com/user/docfeed-crawler/internal/repository"
	"github.com/user/docfeed-crawler/pkg/metrics"
)

const (
	testHost       = "https://docs.example.com"
	testLandingURL = testHost + "/index.html"
)

var testSettle = SettleDelays{Landing: 1500 * time.Millisecond, Document: time.Second, History: 0}

// fakeRenderer serves HTML fixtures by URL and records every render.
type fakeRenderer struct {
	pages   map[string]string
	calls   []string
	settles map[string]time.Duration
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{pages: map[string]string{}, settles: map[string]time.Duration{}}
}

func (f *fakeRenderer) add(url, html string) *fakeRenderer {
	f.pages[url] = html
	return f
}

func (f *fakeRenderer) Render(_ context.Context, url string, settle time.Duration) (repository.Element, error) {
	f.calls = append(f.calls, url)
	f.settles[url] = settle
	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s: 404", repository.ErrNavigationFailed, url)
	}
	return goquery_page.ParseString(html)
}

func (f *fakeRenderer) renderCount(url string) int {
	n := 0
	for _, c := range f.calls {
		if c == url {
			n++
		}
	}
	return n
}

func newTestCrawler(r repository.Renderer) (*crawlerUseCase, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	uc := NewCrawlerUseCase(r, Options{
		LandingURL: testLandingURL,
		DocHost:    testHost,
		Settle:     testSettle,
		Selectors:  DefaultSelectors(),
	}, m)
	return uc.(*crawlerUseCase), m
}

func parse(html string) repository.Element {
	page, err := goquery_page.ParseString(html)
	if err != nil {
		panic(err)
	}
	return page
}

func landingPage(categories ...string) string {
	return `<html><body><div id="awsdocs-focus-element"><main-landing-page-sections><div>
<div class="hero">Welcome</div>
<div><service-category-tiles><div><awsui-cards><div><ol>` +
		strings.Join(categories, "\n") +
		`</ol></div></awsui-cards></div></service-category-tiles></div>
</div></main-landing-page-sections></div></body></html>`
}

func categoryCard(title string, services ...string) string {
	header := ""
	if title != "" {
		header = `<div class="awsui-cards-card-header"><span class="awsui-cards-card-header-inner"><h4>` + title + `</h4></span></div>`
	}
	return `<li class="awsui-cards-card-container">` + header + strings.Join(services, "\n") + `</li>`
}

func serviceLink(href, prefix, name string) string {
	spans := ""
	if prefix != "" {
		spans += `<span class="awsdocs-service-prefix">` + prefix + `</span>`
	}
	if name != "" {
		spans += `<span class="awsdocs-service-name ng-binding">` + name + `<!-- ngIf: $ctrl.external --></span>`
	}
	return `<awsdocs-service-link href="` + href + `"><a><div>` + spans + `</div></a></awsdocs-service-link>`
}

func serviceIndexPage(docs ...string) string {
	var cards []string
	for _, d := range docs {
		cards = append(cards, `<li class="awsui-cards-card-container"><span class="awsui-cards-card-header-inner">`+d+`</span></li>`)
	}
	return `<html><body><div id="awsdocs-focus-element"><landing-page-sections><ul>` +
		strings.Join(cards, "\n") +
		`</ul></landing-page-sections></div></body></html>`
}

func docLink(label, href string) string {
	return `<awsdocs-link label="` + label + `" href="` + href + `"></awsdocs-link>`
}

type navEntry struct {
	label string
	href  string
}

// docPage renders a guide page; an empty feedHref omits the feed link.
func docPage(feedHref string, nav ...navEntry) string {
	feed := ""
	if feedHref != "" {
		feed = `<awsdocs-link label="RSS"><a href="` + feedHref + `">RSS</a></awsdocs-link>`
	}
	var items []string
	for _, n := range nav {
		items = append(items, `<li><span><a href="`+n.href+`">`+n.label+`</a></span></li>`)
	}
	return `<html><body><nav class="awsui-app-layout__navigation-landmark"><div class="awsui-side-navigation"><ul class="awsui-side-navigation__list">` +
		strings.Join(items, "\n") +
		`</ul></div></nav><main>` + feed + `</main></body></html>`
}
