package mock

import (
	"context"

	"github.com/fwojciec/markdownify"
)

var _ markdownify.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of markdownify.PageWriter.
type PageWriter struct {
	CreateDirFn func(ctx context.Context, dir string) error
	WritePageFn func(ctx context.Context, dir string, page *markdownify.Page) error
}

func (w *PageWriter) CreateDir(ctx context.Context, dir string) error {
	return w.CreateDirFn(ctx, dir)
}

func (w *PageWriter) WritePage(ctx context.Context, dir string, page *markdownify.Page) error {
	return w.WritePageFn(ctx, dir, page)
}
