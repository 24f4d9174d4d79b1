package mock

import (
	"context"

	"github.com/fwojciec/markdownify"
)

var _ markdownify.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of markdownify.Catalog.
type Catalog struct {
	StartCrawlFn    func(ctx context.Context, run *markdownify.CrawlRun) error
	FinishCrawlFn   func(ctx context.Context, run *markdownify.CrawlRun) error
	FindCrawlByIDFn func(ctx context.Context, id string) (*markdownify.CrawlRun, error)
	RecordPageFn    func(ctx context.Context, rec *markdownify.PageRecord) error
	FindPagesFn     func(ctx context.Context, crawlID string) ([]*markdownify.PageRecord, error)
}

func (c *Catalog) StartCrawl(ctx context.Context, run *markdownify.CrawlRun) error {
	return c.StartCrawlFn(ctx, run)
}

func (c *Catalog) FinishCrawl(ctx context.Context, run *markdownify.CrawlRun) error {
	return c.FinishCrawlFn(ctx, run)
}

func (c *Catalog) FindCrawlByID(ctx context.Context, id string) (*markdownify.CrawlRun, error) {
	return c.FindCrawlByIDFn(ctx, id)
}

func (c *Catalog) RecordPage(ctx context.Context, rec *markdownify.PageRecord) error {
	return c.RecordPageFn(ctx, rec)
}

func (c *Catalog) FindPages(ctx context.Context, crawlID string) ([]*markdownify.PageRecord, error) {
	return c.FindPagesFn(ctx, crawlID)
}
