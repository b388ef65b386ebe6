package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/docfeed-crawler/internal/entity"
)

// ResultRepoImpl writes the crawl tree to a single pretty-printed JSON file.
type ResultRepoImpl struct {
	path string
}

// NewResultRepo creates a writer targeting path.
func NewResultRepo(path string) *ResultRepoImpl {
	return &ResultRepoImpl{path: path}
}

// Save replaces the file with the serialised tree. Non-ASCII text and HTML
// characters are written literally.
func (r *ResultRepoImpl) Save(_ context.Context, result *entity.CrawlResult) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode crawl result: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Encode appends a newline; keep the file byte-stable without it.
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}
	return nil
}
