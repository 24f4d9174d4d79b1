package markdownify

import (
	"context"
	"time"
)

// PageStatus records the outcome of processing one frontier entry.
type PageStatus string

// Page outcomes recorded in the catalog.
const (
	PageWritten PageStatus = "written"
	PageFailed  PageStatus = "failed"
)

// CrawlRun describes one invocation of the crawler.
type CrawlRun struct {
	ID         string    `json:"id"`
	StartURL   string    `json:"startUrl"`
	OutputDir  string    `json:"outputDir"`
	MaxPages   int       `json:"maxPages"`
	Processed  int       `json:"processed"`
	Written    int       `json:"written"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// PageRecord is the catalog entry for one processed page.
type PageRecord struct {
	ID          string     `json:"id"`
	CrawlID     string     `json:"crawlId"`
	URL         string     `json:"url"`
	Path        string     `json:"path"`
	Title       string     `json:"title"`
	Status      PageStatus `json:"status"`
	Error       string     `json:"error"`
	Bytes       int        `json:"bytes"`
	ContentHash string     `json:"contentHash"`
	Position    int        `json:"position"`
	ProcessedAt time.Time  `json:"processedAt"`
}

// Catalog is a write-mostly report of what a crawl produced.
// It is never consulted to decide what to crawl.
type Catalog interface {
	// StartCrawl records a new run and assigns its ID.
	StartCrawl(ctx context.Context, run *CrawlRun) error

	// FinishCrawl stores the final counters of a run.
	// Returns ENOTFOUND if the run does not exist.
	FinishCrawl(ctx context.Context, run *CrawlRun) error

	// FindCrawlByID retrieves a run.
	// Returns ENOTFOUND if the run does not exist.
	FindCrawlByID(ctx context.Context, id string) (*CrawlRun, error)

	// RecordPage stores the outcome of one processed page.
	RecordPage(ctx context.Context, rec *PageRecord) error

	// FindPages returns the pages of a run ordered by position.
	FindPages(ctx context.Context, crawlID string) ([]*PageRecord, error)
}
