package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/docfeed-crawler/internal/entity"
)

const schema = `
CREATE TABLE IF NOT EXISTS crawl_runs (
	id          BIGSERIAL PRIMARY KEY,
	finished_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS feed_categories (
	run_id   BIGINT NOT NULL REFERENCES crawl_runs(id) ON DELETE CASCADE,
	position INT    NOT NULL,
	title    TEXT   NOT NULL,
	PRIMARY KEY (run_id, position)
);
CREATE TABLE IF NOT EXISTS feed_services (
	run_id            BIGINT NOT NULL REFERENCES crawl_runs(id) ON DELETE CASCADE,
	category_position INT    NOT NULL,
	position          INT    NOT NULL,
	title             TEXT   NOT NULL,
	index_url         TEXT   NOT NULL,
	PRIMARY KEY (run_id, category_position, position)
);
CREATE TABLE IF NOT EXISTS feed_documents (
	run_id            BIGINT NOT NULL REFERENCES crawl_runs(id) ON DELETE CASCADE,
	category_position INT    NOT NULL,
	service_position  INT    NOT NULL,
	position          INT    NOT NULL,
	menu_title        TEXT   NOT NULL,
	html_url          TEXT   NOT NULL,
	rss_url           TEXT   NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, category_position, service_position, position)
);
CREATE INDEX IF NOT EXISTS feed_documents_html_url_idx ON feed_documents (html_url);
`

// FeedIndexRepoImpl stores each crawl as a run in PostgreSQL, keeping the
// presentation order of every node in a position column.
type FeedIndexRepoImpl struct {
	db *pgxpool.Pool
}

// NewFeedIndexRepo creates a new instance of FeedIndexRepoImpl.
func NewFeedIndexRepo(db *pgxpool.Pool) *FeedIndexRepoImpl {
	return &FeedIndexRepoImpl{db: db}
}

// Migrate creates the tables if they do not exist.
func (r *FeedIndexRepoImpl) Migrate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schema)
	return err
}

// Save inserts the tree as a new run within a single transaction.
func (r *FeedIndexRepoImpl) Save(ctx context.Context, result *entity.CrawlResult) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var runID int64
	if err := tx.QueryRow(ctx, `INSERT INTO crawl_runs DEFAULT VALUES RETURNING id`).Scan(&runID); err != nil {
		return fmt.Errorf("failed to create crawl run: %w", err)
	}

	batch := &pgx.Batch{}
	for ci, c := range result.Categories {
		batch.Queue(`INSERT INTO feed_categories (run_id, position, title) VALUES ($1, $2, $3)`,
			runID, ci, c.Title)
		for si, s := range c.Services {
			batch.Queue(`INSERT INTO feed_services (run_id, category_position, position, title, index_url)
			             VALUES ($1, $2, $3, $4, $5)`,
				runID, ci, si, s.Title, s.IndexURL)
			for di, d := range s.Docs {
				batch.Queue(`INSERT INTO feed_documents (run_id, category_position, service_position, position, menu_title, html_url, rss_url)
				             VALUES ($1, $2, $3, $4, $5, $6, $7)`,
					runID, ci, si, di, d.MenuTitle, d.HTMLURL, d.RSSURL)
			}
		}
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert feed index: %w", err)
	}

	return tx.Commit(ctx)
}

// LatestFeeds returns html_url to rss_url for every document of the most recent run
// that has a feed.
func (r *FeedIndexRepoImpl) LatestFeeds(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT html_url, rss_url
		FROM feed_documents
		WHERE run_id = (SELECT MAX(id) FROM crawl_runs) AND rss_url <> ''
		ORDER BY category_position, service_position, position;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feeds := make(map[string]string)
	for rows.Next() {
		var htmlURL, rssURL string
		if err := rows.Scan(&htmlURL, &rssURL); err != nil {
			return nil, err
		}
		feeds[htmlURL] = rssURL
	}
	return feeds, rows.Err()
}
