package mock

import "github.com/fwojciec/markdownify"

var _ markdownify.Converter = (*Converter)(nil)

// Converter is a mock implementation of markdownify.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
