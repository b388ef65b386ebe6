package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/docfeed-crawler/internal/delivery/http/handler"
	"github.com/user/docfeed-crawler/internal/delivery/http/middleware"
)

// New serves the health check and the crawl metrics gathered from gatherer.
func New(h *handler.Handler, gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealthCheck)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return middleware.Logging(mux)
}
