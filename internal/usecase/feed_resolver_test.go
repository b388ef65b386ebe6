package usecase

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/user/docfeed-crawler/pkg/metrics"
)

const testDocURL = testHost + "/ec2/latest/ug/what-is.html"

func newTestResolver(r *fakeRenderer) (*FeedResolver, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	return NewFeedResolver(r, DefaultSelectors(), testHost, testSettle.History, m), m
}

func TestFeedResolver_DirectLinkSkipsHistoryPage(t *testing.T) {
	r := newFakeRenderer()
	f, m := newTestResolver(r)

	page := parse(docPage("ec2-ug.rss", navEntry{"Document History", "doc-history.html"}))
	got := f.Resolve(context.Background(), page, testDocURL)

	assert.Equal(t, testHost+"/ec2/latest/ug/ec2-ug.rss", got)
	assert.Empty(t, r.calls, "history page must not be fetched when the page links a feed")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedsResolvedTotal.WithLabelValues(metrics.StageDirect)))
}

func TestFeedResolver_DirectLinkVariants(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"sibling file", "feed.xml", testHost + "/ec2/latest/ug/feed.xml"},
		{"root relative", "/feeds/ec2.rss", testHost + "/feeds/ec2.rss"},
		{"absolute", "https://feeds.example.com/ec2.rss", "https://feeds.example.com/ec2.rss"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestResolver(newFakeRenderer())
			assert.Equal(t, tt.want, f.Resolve(context.Background(), parse(docPage(tt.href)), testDocURL))
		})
	}
}

func TestFeedResolver_HistoryFallbackResolvesAgainstDocument(t *testing.T) {
	historyURL := testHost + "/ec2/latest/ug/history/doc-history.html"
	r := newFakeRenderer().add(historyURL, docPage("ec2-ug.rss"))
	f, m := newTestResolver(r)

	page := parse(docPage("",
		navEntry{"What is Amazon EC2?", "what-is.html"},
		navEntry{"Document History", "history/doc-history.html"},
	))
	got := f.Resolve(context.Background(), page, testDocURL)

	assert.Equal(t, testHost+"/ec2/latest/ug/ec2-ug.rss", got, "feed href is relative to the document, not the history page")
	assert.Equal(t, []string{historyURL}, r.calls)
	assert.Equal(t, testSettle.History, r.settles[historyURL])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedsResolvedTotal.WithLabelValues(metrics.StageHistory)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PagesRenderedTotal.WithLabelValues(metrics.PageHistory, "success")))
}

func TestFeedResolver_HistoryScanStartsFromEnd(t *testing.T) {
	r := newFakeRenderer().
		add(testHost+"/ec2/latest/ug/first-history.html", docPage("first.rss")).
		add(testHost+"/ec2/latest/ug/last-history.html", docPage("last.rss"))
	f, _ := newTestResolver(r)

	page := parse(docPage("",
		navEntry{"Document History", "first-history.html"},
		navEntry{"Security", "security.html"},
		navEntry{"Document History", "last-history.html"},
	))
	got := f.Resolve(context.Background(), page, testDocURL)

	assert.Equal(t, testHost+"/ec2/latest/ug/last.rss", got)
	assert.Equal(t, []string{testHost + "/ec2/latest/ug/last-history.html"}, r.calls, "scan stops at the first match from the end")
}

func TestFeedResolver_NoFeed(t *testing.T) {
	tests := []struct {
		name  string
		page  string
		pages map[string]string
	}{
		{
			name: "no navigation entry",
			page: docPage("", navEntry{"Getting started", "start.html"}),
		},
		{
			name:  "history page without feed",
			page:  docPage("", navEntry{"Document History", "doc-history.html"}),
			pages: map[string]string{testHost + "/ec2/latest/ug/doc-history.html": docPage("")},
		},
		{
			name: "history page fails to render",
			page: docPage("", navEntry{"Document History", "doc-history.html"}),
		},
		{
			name: "history entry without href",
			page: `<nav class="awsui-app-layout__navigation-landmark"><div class="awsui-side-navigation"><ul class="awsui-side-navigation__list"><li><span><a>Document History</a></span></li></ul></div></nav>`,
		},
		{
			name: "feed link without href",
			page: `<awsdocs-link label="RSS"><a>RSS</a></awsdocs-link>`,
		},
		{
			name: "label must match exactly",
			page: docPage("", navEntry{"document history", "doc-history.html"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFakeRenderer()
			for url, html := range tt.pages {
				r.add(url, html)
			}
			f, m := newTestResolver(r)

			var got string
			assert.NotPanics(t, func() {
				got = f.Resolve(context.Background(), parse(tt.page), testDocURL)
			})
			assert.Equal(t, "", got)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedsResolvedTotal.WithLabelValues(metrics.StageNone)))
		})
	}
}
