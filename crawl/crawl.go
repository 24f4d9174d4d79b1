// Package crawl provides the breadth-first site crawler.
// It coordinates fetching, sanitizing, converting and writing pages,
// and follows same-site links until the frontier or the page budget
// is exhausted.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/markdownify"
)

// Defaults applied when the corresponding Crawler field is empty.
const (
	DefaultPageExt = ".html"
	DefaultOutExt  = ".md"
)

// sanitizedTags are removed before link extraction and conversion.
var sanitizedTags = []string{"script", "style"}

// Crawler crawls a single site and writes one markdown file per page.
type Crawler struct {
	Fetcher   markdownify.Fetcher
	Parser    markdownify.Parser
	Converter markdownify.Converter
	Writer    markdownify.PageWriter

	// Optional collaborators.
	Extractor markdownify.Extractor
	Sitemaps  markdownify.SitemapService
	Catalog   markdownify.Catalog

	// Filter restricts followed links and sitemap seeds.
	Filter *markdownify.URLFilter

	// PageExt is the path suffix a link needs to be followed.
	PageExt string
	// OutExt is appended to every output file name.
	OutExt string

	Logger   *slog.Logger
	Progress ProgressFunc
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Processed int // frontier entries counted against the budget
	Written   int
	Failed    int
	Skipped   int // already-visited entries popped from the frontier
	Bytes     int
	CrawlID   string // catalog run ID, empty without a catalog
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageError marks a failure that skips the current page without stopping the crawl.
type pageError struct {
	err error
}

func (e *pageError) Error() string { return e.err.Error() }
func (e *pageError) Unwrap() error { return e.err }

// crawlState is owned by a single Crawl call.
type crawlState struct {
	outputDir string
	maxPages  int
	basePath  string
	links     *LinkFilter
	frontier  *Frontier
	visited   *VisitedSet
	paths     map[string]string
	run       *markdownify.CrawlRun
	result    *Result
}

// Crawl crawls the site of startURL breadth-first, writing pages below outputDir.
// It stops when the frontier is empty or maxPages entries have been processed.
//
// Fetch, parse and conversion failures are logged and skip the page.
// Filesystem and catalog failures abort the crawl, as does cancellation of ctx.
// The returned Result is non-nil whenever the crawl started.
func (c *Crawler) Crawl(ctx context.Context, startURL, outputDir string, maxPages int) (res *Result, err error) {
	seed, err := parseSeed(startURL)
	if err != nil {
		return nil, err
	}
	if outputDir == "" {
		return nil, markdownify.Errorf(markdownify.EINVALID, "output directory required")
	}
	if maxPages <= 0 {
		return nil, markdownify.Errorf(markdownify.EINVALID, "max pages must be positive, got %d", maxPages)
	}

	if err := c.Writer.CreateDir(ctx, outputDir); err != nil {
		return nil, err
	}

	s := &crawlState{
		outputDir: outputDir,
		maxPages:  maxPages,
		basePath:  BasePath(seed),
		links:     NewLinkFilter(seed, c.pageExt(), c.Filter),
		frontier:  NewFrontier(seed.String()),
		visited:   NewVisitedSet(maxPages),
		paths:     make(map[string]string),
		result:    &Result{},
	}

	if c.Catalog != nil {
		s.run = &markdownify.CrawlRun{
			StartURL:  seed.String(),
			OutputDir: outputDir,
			MaxPages:  maxPages,
			StartedAt: time.Now().UTC(),
		}
		if err := c.Catalog.StartCrawl(ctx, s.run); err != nil {
			return nil, fmt.Errorf("start crawl: %w", err)
		}
		s.result.CrawlID = s.run.ID
		defer func() {
			if ferr := c.finishRun(ctx, s); ferr != nil {
				err = errors.Join(err, ferr)
			}
		}()
	}

	c.seedFromSitemap(ctx, seed, s)

	c.report(ProgressEvent{Type: ProgressStarted, Total: maxPages})

	for s.frontier.Len() > 0 && s.result.Processed < maxPages {
		if err := ctx.Err(); err != nil {
			return s.result, err
		}

		rawURL, _ := s.frontier.Pop()
		if !s.visited.Add(rawURL) {
			s.result.Skipped++
			continue
		}
		s.result.Processed++

		if err := c.processURL(ctx, s, rawURL); err != nil {
			return s.result, err
		}
	}

	c.logger().Debug("crawl finished",
		"visited", s.visited.Len(),
		"queued", s.frontier.Len(),
		"written", s.result.Written,
	)
	c.report(ProgressEvent{
		Type:      ProgressFinished,
		Completed: s.result.Processed,
		Total:     maxPages,
	})

	return s.result, nil
}

// processURL handles one visited frontier entry and records its outcome.
// Only fatal errors are returned.
func (c *Crawler) processURL(ctx context.Context, s *crawlState, rawURL string) error {
	position := s.result.Processed

	page, links, err := c.processPage(ctx, s, rawURL)
	if err != nil {
		var pe *pageError
		if !errors.As(err, &pe) {
			return err
		}

		s.result.Failed++
		c.logger().Warn("skipping page", "url", rawURL, "error", pe.err)
		c.report(ProgressEvent{
			Type:      ProgressFailed,
			Completed: position,
			Total:     s.maxPages,
			URL:       rawURL,
			Error:     pe.err,
		})
		return c.recordPage(ctx, s, &markdownify.PageRecord{
			URL:      rawURL,
			Status:   markdownify.PageFailed,
			Error:    markdownify.ErrorMessage(pe.err),
			Position: position,
		})
	}

	s.result.Written++
	s.result.Bytes += len(page.Content)
	c.report(ProgressEvent{
		Type:      ProgressCompleted,
		Completed: position,
		Total:     s.maxPages,
		URL:       rawURL,
		Path:      page.Path,
	})

	for _, link := range links {
		if !s.visited.Contains(link) {
			s.frontier.Push(link)
		}
	}

	return c.recordPage(ctx, s, &markdownify.PageRecord{
		URL:         page.URL,
		Path:        page.Path,
		Title:       page.Title,
		Status:      markdownify.PageWritten,
		Bytes:       len(page.Content),
		ContentHash: page.ContentHash,
		Position:    position,
	})
}

// processPage fetches, sanitizes, converts and writes one page.
// Recoverable failures are returned as *pageError.
func (c *Crawler) processPage(ctx context.Context, s *crawlState, rawURL string) (*markdownify.Page, []string, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil, &pageError{markdownify.Errorf(markdownify.EINVALID, "parse url %s: %v", rawURL, err)}
	}

	html, err := c.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, &pageError{err}
	}
	fetchedAt := time.Now().UTC()

	doc, err := c.Parser.Parse(html)
	if err != nil {
		return nil, nil, &pageError{err}
	}
	doc.Remove(sanitizedTags...)

	var links []string
	for _, a := range doc.Find("a") {
		href, ok := a.Attr("href")
		if !ok {
			continue
		}
		if link, ok := s.links.Qualify(pageURL, href); ok {
			links = append(links, link)
		}
	}

	title := doc.Title()
	content, err := doc.HTML()
	if err != nil {
		return nil, nil, &pageError{markdownify.Errorf(markdownify.EINTERNAL, "render %s: %v", rawURL, err)}
	}

	if c.Extractor != nil {
		extracted, err := c.Extractor.Extract(content)
		switch {
		case err != nil:
			c.logger().Debug("extraction failed, converting whole page", "url", rawURL, "error", err)
		case extracted.ContentHTML != "":
			content = extracted.ContentHTML
			if extracted.Title != "" {
				title = extracted.Title
			}
		}
	}

	markdown, err := c.Converter.Convert(content)
	if err != nil {
		return nil, nil, &pageError{err}
	}

	outPath, err := OutputPath(pageURL, s.basePath, c.outExt())
	if err != nil {
		return nil, nil, &pageError{err}
	}
	if prev, ok := s.paths[outPath]; ok && prev != rawURL {
		c.logger().Warn("output path collision, overwriting", "path", outPath, "previous", prev, "url", rawURL)
	}
	s.paths[outPath] = rawURL

	page := &markdownify.Page{
		URL:         rawURL,
		Path:        outPath,
		Title:       title,
		Content:     markdown,
		ContentHash: ComputeHash(markdown),
		Links:       links,
		FetchedAt:   fetchedAt,
	}

	if err := c.Writer.WritePage(ctx, s.outputDir, page); err != nil {
		if markdownify.ErrorCode(err) == markdownify.EINVALID {
			return nil, nil, &pageError{err}
		}
		return nil, nil, fmt.Errorf("write %s: %w", outPath, err)
	}

	return page, links, nil
}

// seedFromSitemap appends sitemap URLs below the base path that pass the
// link filter. Discovery failures are logged and ignored.
func (c *Crawler) seedFromSitemap(ctx context.Context, seed *url.URL, s *crawlState) {
	if c.Sitemaps == nil {
		return
	}

	scope := s.links.origin + s.basePath
	urls, err := c.Sitemaps.DiscoverURLs(ctx, scope)
	if err != nil {
		c.logger().Warn("sitemap discovery failed", "scope", scope, "error", err)
		return
	}

	var added int
	for _, u := range urls {
		if link, ok := s.links.Qualify(seed, u); ok {
			s.frontier.Push(link)
			added++
		}
	}
	c.logger().Info("seeded frontier from sitemap", "found", len(urls), "queued", added)
}

func (c *Crawler) recordPage(ctx context.Context, s *crawlState, rec *markdownify.PageRecord) error {
	if c.Catalog == nil {
		return nil
	}
	rec.CrawlID = s.run.ID
	rec.ProcessedAt = time.Now().UTC()
	if err := c.Catalog.RecordPage(ctx, rec); err != nil {
		return fmt.Errorf("record page %s: %w", rec.URL, err)
	}
	return nil
}

func (c *Crawler) finishRun(ctx context.Context, s *crawlState) error {
	s.run.Processed = s.result.Processed
	s.run.Written = s.result.Written
	s.run.Failed = s.result.Failed
	s.run.FinishedAt = time.Now().UTC()
	// The run is finished even when ctx was canceled mid-crawl.
	if err := c.Catalog.FinishCrawl(context.WithoutCancel(ctx), s.run); err != nil {
		return fmt.Errorf("finish crawl: %w", err)
	}
	return nil
}

func (c *Crawler) report(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discardLogger
}

func (c *Crawler) pageExt() string {
	if c.PageExt == "" {
		return DefaultPageExt
	}
	return c.PageExt
}

func (c *Crawler) outExt() string {
	if c.OutExt == "" {
		return DefaultOutExt
	}
	return c.OutExt
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// parseSeed validates the start URL and strips its fragment.
func parseSeed(startURL string) (*url.URL, error) {
	seed, err := url.Parse(startURL)
	if err != nil {
		return nil, markdownify.Errorf(markdownify.EINVALID, "invalid start URL %q: %v", startURL, err)
	}
	if seed.Scheme != "http" && seed.Scheme != "https" {
		return nil, markdownify.Errorf(markdownify.EINVALID, "start URL %q must use http or https", startURL)
	}
	if seed.Host == "" {
		return nil, markdownify.Errorf(markdownify.EINVALID, "start URL %q has no host", startURL)
	}
	seed.Fragment = ""
	seed.RawFragment = ""
	return seed, nil
}
