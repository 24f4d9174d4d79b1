package markdownify

import (
	"context"
	"time"
)

// Page represents a fetched and converted page, ready to be written.
type Page struct {
	URL         string
	Path        string // relative to the output directory, slash separated
	Title       string
	Content     string // Markdown
	ContentHash string
	Links       []string
	FetchedAt   time.Time
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if p.Path == "" {
		return Errorf(EINVALID, "page path required")
	}
	return nil
}

// PageWriter persists converted pages under an output directory.
type PageWriter interface {
	// CreateDir creates the output directory and its parents if absent.
	// Returns EFILESYSTEM if it cannot be created.
	CreateDir(ctx context.Context, dir string) error

	// WritePage writes the page to dir/page.Path, creating intermediate
	// directories and overwriting any existing file.
	// Returns EFILESYSTEM if the directory or file cannot be written.
	WritePage(ctx context.Context, dir string, page *Page) error
}
