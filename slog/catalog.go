package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/markdownify"
)

// Ensure LoggingCatalog implements markdownify.Catalog.
var _ markdownify.Catalog = (*LoggingCatalog)(nil)

// LoggingCatalog wraps a Catalog with logging.
type LoggingCatalog struct {
	next   markdownify.Catalog
	logger *slog.Logger
}

// NewLoggingCatalog creates a new LoggingCatalog.
func NewLoggingCatalog(next markdownify.Catalog, logger *slog.Logger) *LoggingCatalog {
	return &LoggingCatalog{next: next, logger: logger}
}

func (c *LoggingCatalog) StartCrawl(ctx context.Context, run *markdownify.CrawlRun) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("start crawl",
			"id", run.ID,
			"url", run.StartURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.StartCrawl(ctx, run)
}

func (c *LoggingCatalog) FinishCrawl(ctx context.Context, run *markdownify.CrawlRun) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("finish crawl",
			"id", run.ID,
			"processed", run.Processed,
			"written", run.Written,
			"failed", run.Failed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.FinishCrawl(ctx, run)
}

func (c *LoggingCatalog) FindCrawlByID(ctx context.Context, id string) (run *markdownify.CrawlRun, err error) {
	defer func(begin time.Time) {
		c.logger.Info("find crawl",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.FindCrawlByID(ctx, id)
}

func (c *LoggingCatalog) RecordPage(ctx context.Context, rec *markdownify.PageRecord) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("record page",
			"url", rec.URL,
			"status", rec.Status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.RecordPage(ctx, rec)
}

func (c *LoggingCatalog) FindPages(ctx context.Context, crawlID string) (pages []*markdownify.PageRecord, err error) {
	defer func(begin time.Time) {
		c.logger.Info("find pages",
			"id", crawlID,
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.FindPages(ctx, crawlID)
}
