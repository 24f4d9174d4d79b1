package mock

import "github.com/fwojciec/markdownify"

var _ markdownify.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of markdownify.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*markdownify.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*markdownify.ExtractResult, error) {
	return e.ExtractFn(html)
}
