package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/markdownify"
	"github.com/fwojciec/markdownify/crawl"
)

// ErrNothingWritten is returned when a crawl completes without writing any page.
var ErrNothingWritten = markdownify.Errorf(markdownify.ENOTFOUND, "no pages written")

// CrawlCmd runs one crawl and reports progress.
type CrawlCmd struct {
	StartURL  string
	OutputDir string
	MaxPages  int
}

// Run executes the crawl, printing one line per processed page and a summary.
func (c *CrawlCmd) Run(ctx context.Context, deps *Dependencies, stdout io.Writer) error {
	deps.Crawler.Progress = func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(stdout, "[%d/%d] %s\n", e.Completed, e.Total, e.Path)
		case crawl.ProgressFailed:
			fmt.Fprintf(stdout, "[%d/%d] failed %s\n", e.Completed, e.Total, crawl.TruncateURL(e.URL, 60))
		}
	}

	result, err := deps.Crawler.Crawl(ctx, c.StartURL, c.OutputDir, c.MaxPages)
	if result != nil {
		fmt.Fprintf(stdout, "Wrote %d of %d processed pages to %s (%s, %d failed)\n",
			result.Written, result.Processed, c.OutputDir, crawl.FormatBytes(result.Bytes), result.Failed)
	}
	if err != nil {
		return err
	}
	if err := c.reportCatalog(ctx, deps, result, stdout); err != nil {
		return err
	}
	if result.Written == 0 {
		return ErrNothingWritten
	}
	return nil
}

// reportCatalog confirms the run was stored by reading it back.
func (c *CrawlCmd) reportCatalog(ctx context.Context, deps *Dependencies, result *crawl.Result, stdout io.Writer) error {
	if deps.Crawler.Catalog == nil || result.CrawlID == "" {
		return nil
	}
	run, err := deps.Crawler.Catalog.FindCrawlByID(ctx, result.CrawlID)
	if err != nil {
		return fmt.Errorf("read back crawl %s: %w", result.CrawlID, err)
	}
	fmt.Fprintf(stdout, "Recorded crawl %s: %d written, %d failed\n", run.ID, run.Written, run.Failed)
	return nil
}
