// Package fs writes converted pages to the local filesystem.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/markdownify"
	"gopkg.in/yaml.v3"
)

// Ensure Writer implements markdownify.PageWriter at compile time.
var _ markdownify.PageWriter = (*Writer)(nil)

// frontMatter is the YAML header optionally written above page content.
type frontMatter struct {
	Source  string `yaml:"source"`
	Title   string `yaml:"title"`
	Crawled string `yaml:"crawled"`
}

// FormatPage formats a page with YAML front matter.
func FormatPage(page *markdownify.Page) (string, error) {
	header, err := yaml.Marshal(frontMatter{
		Source:  page.URL,
		Title:   page.Title,
		Crawled: page.FetchedAt.Format("2006-01-02"),
	})
	if err != nil {
		return "", markdownify.Errorf(markdownify.EINTERNAL, "encoding front matter: %v", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(page.Content)
	return b.String(), nil
}

// Writer writes pages as markdown files below an output directory.
type Writer struct {
	frontMatter bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithFrontMatter prefixes every file with YAML front matter.
func WithFrontMatter(enabled bool) Option {
	return func(w *Writer) {
		w.frontMatter = enabled
	}
}

// NewWriter creates a new Writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateDir creates dir and any missing parents.
func (w *Writer) CreateDir(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return markdownify.Errorf(markdownify.EFILESYSTEM, "creating output directory %s: %v", dir, err)
	}
	return nil
}

// WritePage writes the page to dir/page.Path, overwriting any existing file.
// page.Path must be a local, slash-separated path.
func (w *Writer) WritePage(ctx context.Context, dir string, page *markdownify.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	relPath := filepath.FromSlash(page.Path)
	if !filepath.IsLocal(relPath) {
		return markdownify.Errorf(markdownify.EINVALID, "page path %q escapes the output directory", page.Path)
	}
	fullPath := filepath.Join(dir, relPath)

	content := page.Content
	if w.frontMatter {
		var err error
		if content, err = FormatPage(page); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return markdownify.Errorf(markdownify.EFILESYSTEM, "creating directory for %s: %v", page.Path, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return markdownify.Errorf(markdownify.EFILESYSTEM, "writing %s: %v", page.Path, err)
	}
	return nil
}
