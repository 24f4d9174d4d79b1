package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/markdownify"
)

// Ensure LoggingWriter implements markdownify.PageWriter.
var _ markdownify.PageWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a PageWriter with logging.
type LoggingWriter struct {
	next   markdownify.PageWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next markdownify.PageWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

func (w *LoggingWriter) CreateDir(ctx context.Context, dir string) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("create dir",
			"dir", dir,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.CreateDir(ctx, dir)
}

func (w *LoggingWriter) WritePage(ctx context.Context, dir string, page *markdownify.Page) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write page",
			"url", page.URL,
			"path", page.Path,
			"bytes", len(page.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WritePage(ctx, dir, page)
}
