package goquery_page

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/docfeed-crawler/internal/repository"
)

// Element implements repository.Element over a goquery selection of a single node.
type Element struct {
	sel *goquery.Selection
}

// Parse builds a queryable document from rendered HTML.
func Parse(r io.Reader) (*Element, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Element{sel: doc.Selection}, nil
}

// ParseString is Parse for an HTML string.
func ParseString(html string) (*Element, error) {
	return Parse(strings.NewReader(html))
}

// Find returns every descendant matching selector, in document order.
func (e *Element) Find(selector string) []repository.Element {
	found := e.sel.Find(selector)
	out := make([]repository.Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{sel: s})
	})
	return out
}

func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// Text returns the element's text with comments dropped and surrounding whitespace trimmed.
func (e *Element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

// HTML returns the outer HTML of the element, mostly for debug logging.
func (e *Element) HTML() string {
	html, err := goquery.OuterHtml(e.sel)
	if err != nil {
		return ""
	}
	return html
}
