package usecase

import (
	"context"
	"time"

	"github.com/user/docfeed-crawler/internal/repository"
	"github.com/user/docfeed-crawler/pkg/metrics"
)

// pageRenderer records every render of the shared session under its page kind.
type pageRenderer struct {
	renderer repository.Renderer
	metrics  *metrics.Metrics
}

func (r pageRenderer) render(ctx context.Context, kind, url string, settle time.Duration) (repository.Element, error) {
	start := time.Now()
	page, err := r.renderer.Render(ctx, url, settle)
	r.metrics.ObserveRender(kind, time.Since(start).Seconds(), err)
	return page, err
}
