// Package trafilatura implements markdownify.Extractor with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/markdownify"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements markdownify.Extractor at compile time.
var _ markdownify.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// Links are kept so converted pages still point at their neighbours.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
			IncludeLinks:    true,
		},
	}
}

// Extract processes raw HTML and returns the main content.
// ContentHTML is empty when no main content was found.
func (e *Extractor) Extract(rawHTML string) (*markdownify.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, markdownify.Errorf(markdownify.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, markdownify.Errorf(markdownify.EINTERNAL, "extracting content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, markdownify.Errorf(markdownify.EINTERNAL, "rendering content: %v", err)
		}
		contentHTML = buf.String()
	}

	return &markdownify.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
