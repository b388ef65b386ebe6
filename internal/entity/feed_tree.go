package entity

// DocumentNode is one documentation guide of a service and the feed announcing its updates.
type DocumentNode struct {
	MenuTitle string `json:"menu_title"`
	HTMLURL   string `json:"html_url"`
	RSSURL    string `json:"rss_url"` // Empty when no feed could be resolved.
}

// ServiceNode is a service listed under a category. IndexURL may point to an
// external resource, in which case Docs stays empty.
type ServiceNode struct {
	Title    string         `json:"title"`
	IndexURL string         `json:"index_url"`
	Docs     []DocumentNode `json:"docs"`
}

// CategoryNode is a top-level grouping of services on the landing page.
type CategoryNode struct {
	Title    string        `json:"title"`
	Services []ServiceNode `json:"services"`
}

// CrawlResult is the root of the crawled tree.
type CrawlResult struct {
	Categories []CategoryNode `json:"categories"`
}

// NewCrawlResult returns an empty result whose category list serialises as [].
func NewCrawlResult() *CrawlResult {
	return &CrawlResult{Categories: []CategoryNode{}}
}

// Stats summarises a crawl for logging.
type Stats struct {
	Categories int
	Services   int
	Documents  int
	Feeds      int
}

// Stats counts the nodes of the tree and the documents that carry a feed.
func (r *CrawlResult) Stats() Stats {
	var s Stats
	s.Categories = len(r.Categories)
	for _, c := range r.Categories {
		s.Services += len(c.Services)
		for _, svc := range c.Services {
			s.Documents += len(svc.Docs)
			for _, d := range svc.Docs {
				if d.RSSURL != "" {
					s.Feeds++
				}
			}
		}
	}
	return s
}
