package repository

import (
	"context"

	"github.com/user/docfeed-crawler/internal/entity"
)

// ResultRepository persists a finished crawl.
type ResultRepository interface {
	// Save stores the whole tree. Calling Save again replaces the previous crawl.
	Save(ctx context.Context, result *entity.CrawlResult) error
}
