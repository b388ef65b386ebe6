package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/user/docfeed-crawler/internal/entity"
	"github.com/user/docfeed-crawler/internal/repository"
	"github.com/user/docfeed-crawler/pkg/metrics"
	"github.com/user/docfeed-crawler/pkg/utils"
)

// Extraction is a best-effort node together with the non-fatal problem that
// cut it short, if any. Node is always usable.
type Extraction[T any] struct {
	Node T
	Err  error
}

// extractCategory reads a category card and its services. It never fails:
// problems come back as the diagnostic of a partial node.
func (uc *crawlerUseCase) extractCategory(ctx context.Context, el repository.Element) Extraction[entity.CategoryNode] {
	node := entity.CategoryNode{Services: []entity.ServiceNode{}}

	titles := el.Find(uc.selectors.CategoryTitle)
	if len(titles) == 0 {
		return Extraction[entity.CategoryNode]{
			Node: node,
			Err:  fmt.Errorf("category title %q: %w", uc.selectors.CategoryTitle, repository.ErrElementNotFound),
		}
	}
	node.Title = titles[0].Text()
	slog.Info("Category discovered", "category", node.Title)

	for i, s := range el.Find(uc.selectors.Service) {
		svc, err := uc.extractService(ctx, s)
		if err != nil {
			uc.metrics.IncFailure(metrics.LevelService)
			slog.Error("Skipping unreadable service", "category", node.Title, "position", i, "error", err)
			continue
		}
		if svc.Err != nil {
			uc.metrics.IncFailure(metrics.LevelService)
			slog.Error("Service documents incomplete", "category", node.Title, "service", svc.Node.Title, "error", svc.Err)
		}
		node.Services = append(node.Services, svc.Node)
		uc.metrics.IncExtracted(metrics.LevelService)
	}
	return Extraction[entity.CategoryNode]{Node: node}
}

// extractService reads a service link and, when it points at the portal,
// the documents listed on its index page. An error means the element could
// not be identified as a service at all; a diagnostic means the document list
// stops at the first failure.
func (uc *crawlerUseCase) extractService(ctx context.Context, el repository.Element) (Extraction[entity.ServiceNode], error) {
	names := el.Find(uc.selectors.ServiceName)
	if len(names) == 0 {
		return Extraction[entity.ServiceNode]{}, fmt.Errorf("service name %q: %w", uc.selectors.ServiceName, repository.ErrElementNotFound)
	}
	href, ok := el.Attr("href")
	if !ok {
		return Extraction[entity.ServiceNode]{}, fmt.Errorf("service %q href: %w", names[0].Text(), repository.ErrAttributeMissing)
	}

	title := names[0].Text()
	if prefixes := el.Find(uc.selectors.ServicePrefix); len(prefixes) > 0 {
		if prefix := prefixes[0].Text(); prefix != "" {
			title = prefix + " " + title
		}
	}

	node := entity.ServiceNode{Title: title, IndexURL: href, Docs: []entity.DocumentNode{}}
	if !utils.IsRootRelative(href) {
		// External resource; nothing to crawl.
		slog.Info("Service discovered", "service", title, "index_url", href, "crawlable", false)
		return Extraction[entity.ServiceNode]{Node: node}, nil
	}
	node.IndexURL = utils.ResolveURL(uc.host, uc.landingURL, href)
	slog.Info("Service discovered", "service", title, "index_url", node.IndexURL, "crawlable", true)

	index, err := uc.pages.render(ctx, metrics.PageServiceIndex, node.IndexURL, uc.settle.Landing)
	if err != nil {
		return Extraction[entity.ServiceNode]{Node: node, Err: fmt.Errorf("service index: %w", err)}, nil
	}

	for _, d := range index.Find(uc.selectors.Document) {
		doc, err := uc.extractDocument(ctx, d, node.IndexURL)
		if err != nil {
			uc.metrics.IncFailure(metrics.LevelDocument)
			return Extraction[entity.ServiceNode]{
				Node: node,
				Err:  fmt.Errorf("document %d: %w", len(node.Docs)+1, err),
			}, nil
		}
		node.Docs = append(node.Docs, doc)
		uc.metrics.IncExtracted(metrics.LevelDocument)
	}
	return Extraction[entity.ServiceNode]{Node: node}, nil
}

// extractDocument renders one guide and resolves its feed. Errors propagate
// to the service, which keeps the documents collected before.
func (uc *crawlerUseCase) extractDocument(ctx context.Context, el repository.Element, indexURL string) (entity.DocumentNode, error) {
	label, ok := el.Attr("label")
	if !ok {
		return entity.DocumentNode{}, fmt.Errorf("document label: %w", repository.ErrAttributeMissing)
	}
	href, ok := el.Attr("href")
	if !ok {
		return entity.DocumentNode{}, fmt.Errorf("document %q href: %w", label, repository.ErrAttributeMissing)
	}
	htmlURL := utils.ResolveURL(uc.host, indexURL, href)

	page, err := uc.pages.render(ctx, metrics.PageDocument, htmlURL, uc.settle.Document)
	if err != nil {
		return entity.DocumentNode{}, fmt.Errorf("document %q: %w", label, err)
	}

	rssURL := uc.feeds.Resolve(ctx, page, htmlURL)
	slog.Info("Document discovered", "document", label, "html_url", htmlURL, "rss_url", rssURL)
	return entity.DocumentNode{MenuTitle: label, HTMLURL: htmlURL, RSSURL: rssURL}, nil
}
