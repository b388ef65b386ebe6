package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/user/docfeed-crawler/internal/entity"
	"github.com/user/docfeed-crawler/pkg/utils"
)

const (
	latestResultKey = "docfeed:latest"
	feedsKey        = "docfeed:feeds"
	documentPrefix  = "docfeed:doc:"
)

// FeedIndexRepoImpl publishes a crawl to Redis: the whole tree as a JSON
// snapshot, a hash of html_url to rss_url, and one hash per document.
type FeedIndexRepoImpl struct {
	client *redis.Client
}

// NewFeedIndexRepo creates a new instance of FeedIndexRepoImpl.
func NewFeedIndexRepo(client *redis.Client) *FeedIndexRepoImpl {
	return &FeedIndexRepoImpl{client: client}
}

// documentKey creates a consistent Redis key for a document by hashing its URL.
func documentKey(htmlURL string) string {
	return fmt.Sprintf("%s%s", documentPrefix, utils.HashURL(htmlURL))
}

// Save replaces the snapshot and the feed hash atomically.
func (r *FeedIndexRepoImpl) Save(ctx context.Context, result *entity.CrawlResult) error {
	snapshot, err := json.Marshal(result)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, latestResultKey, snapshot, 0)
		pipe.Del(ctx, feedsKey)
		for _, c := range result.Categories {
			for _, s := range c.Services {
				for _, d := range s.Docs {
					pipe.HSet(ctx, feedsKey, d.HTMLURL, d.RSSURL)
					pipe.HSet(ctx, documentKey(d.HTMLURL),
						"category", c.Title,
						"service", s.Title,
						"menu_title", d.MenuTitle,
						"html_url", d.HTMLURL,
						"rss_url", d.RSSURL,
					)
				}
			}
		}
		return nil
	})
	return err
}

// FeedURL returns the feed stored for a document and whether the document is known.
func (r *FeedIndexRepoImpl) FeedURL(ctx context.Context, htmlURL string) (string, bool, error) {
	val, err := r.client.HGet(ctx, feedsKey, htmlURL).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}
