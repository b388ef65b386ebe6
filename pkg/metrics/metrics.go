package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Page kinds used as the "kind" label.
const (
	PageLanding      = "landing"
	PageServiceIndex = "service_index"
	PageDocument     = "document"
	PageHistory      = "history"
)

// Tree levels used as the "level" label.
const (
	LevelCategory = "category"
	LevelService  = "service"
	LevelDocument = "document"
)

// Feed resolution outcomes used as the "stage" label.
const (
	StageDirect  = "direct"
	StageHistory = "history"
	StageNone    = "none"
)

// Metrics holds all Prometheus metrics of a crawl.
type Metrics struct {
	PagesRenderedTotal  *prometheus.CounterVec
	RenderDuration      *prometheus.HistogramVec
	NodesExtractedTotal *prometheus.CounterVec
	NodeFailuresTotal   *prometheus.CounterVec
	FeedsResolvedTotal  *prometheus.CounterVec
	CrawlDuration       prometheus.Histogram
}

// New registers the crawl metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PagesRenderedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docfeed_pages_rendered_total",
				Help: "Total number of page renders.",
			},
			[]string{"kind", "status"}, // status: success, failure
		),
		RenderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docfeed_render_duration_seconds",
				Help:    "Duration of page renders including the settle delay.",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"kind"},
		),
		NodesExtractedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docfeed_nodes_extracted_total",
				Help: "Total number of tree nodes emitted.",
			},
			[]string{"level"},
		),
		NodeFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docfeed_node_failures_total",
				Help: "Total number of recovered node failures.",
			},
			[]string{"level"},
		),
		FeedsResolvedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docfeed_feeds_resolved_total",
				Help: "Feed lookups by the stage that produced the result.",
			},
			[]string{"stage"},
		),
		CrawlDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docfeed_crawl_duration_seconds",
				Help:    "Duration of a full crawl.",
				Buckets: []float64{60, 300, 900, 1800, 3600, 7200, 14400},
			},
		),
	}
}

func (m *Metrics) ObserveRender(kind string, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.PagesRenderedTotal.WithLabelValues(kind, status).Inc()
	m.RenderDuration.WithLabelValues(kind).Observe(seconds)
}

func (m *Metrics) IncExtracted(level string) {
	m.NodesExtractedTotal.WithLabelValues(level).Inc()
}

func (m *Metrics) IncFailure(level string) {
	m.NodeFailuresTotal.WithLabelValues(level).Inc()
}

func (m *Metrics) IncFeed(stage string) {
	m.FeedsResolvedTotal.WithLabelValues(stage).Inc()
}
