// Package readability implements markdownify.Extractor with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/markdownify"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements markdownify.Extractor at compile time.
var _ markdownify.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article content.
func (e *Extractor) Extract(rawHTML string) (*markdownify.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, markdownify.Errorf(markdownify.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, markdownify.Errorf(markdownify.EINTERNAL, "extracting article: %v", err)
	}

	return &markdownify.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
