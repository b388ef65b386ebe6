package repository

import (
	"context"
	"time"
)

// Element is a node of rendered page content that can be queried with CSS selectors.
type Element interface {
	// Find returns the descendants matching selector, in document order.
	Find(selector string) []Element
	// Attr returns the value of the named attribute and whether it is present.
	Attr(name string) (string, bool)
	// Text returns the trimmed text content of the element.
	Text() string
}

// Renderer renders pages in a browser session.
// Implementations are not required to be safe for concurrent use.
type Renderer interface {
	// Render navigates to url, waits for settle and returns the rendered document.
	Render(ctx context.Context, url string, settle time.Duration) (Element, error)
}
