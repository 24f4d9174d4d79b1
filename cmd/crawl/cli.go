package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/markdownify"
	"github.com/fwojciec/markdownify/crawl"
	"github.com/fwojciec/markdownify/fs"
	"github.com/fwojciec/markdownify/goquery"
	"github.com/fwojciec/markdownify/htmltomarkdown"
	mdhttp "github.com/fwojciec/markdownify/http"
	"github.com/fwojciec/markdownify/readability"
	"github.com/fwojciec/markdownify/rod"
	mdslog "github.com/fwojciec/markdownify/slog"
	"github.com/fwojciec/markdownify/sqlite"
	"github.com/fwojciec/markdownify/trafilatura"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	StartURL  string `arg:"" name:"start_url" help:"Seed URL; only pages on its scheme and host are crawled"`
	OutputDir string `arg:"" name:"output_dir" help:"Directory receiving the markdown files (created if absent)"`

	MaxPages    int           `short:"n" default:"100" help:"Maximum number of pages to process"`
	Render      bool          `help:"Render pages with a headless browser instead of plain HTTP"`
	Extract     string        `enum:"none,trafilatura,readability" default:"none" help:"Main content extraction before conversion (none, trafilatura, readability)"`
	Sitemap     bool          `help:"Also queue pages listed in the site's sitemap"`
	Include     []string      `sep:"none" help:"Only follow links matching one of these regular expressions"`
	Exclude     []string      `sep:"none" help:"Never follow links matching one of these regular expressions"`
	Catalog     string        `help:"Record the crawl in this SQLite database"`
	FrontMatter bool          `name:"frontmatter" help:"Prefix every file with YAML front matter"`
	PageExt     string        `default:".html" help:"Path suffix a link needs to be followed"`
	OutExt      string        `default:".md" help:"Extension of the written files"`
	Timeout     time.Duration `short:"t" default:"0s" help:"Per-page fetch timeout (0 means none)"`
	Debug       bool          `env:"MARKDOWNIFY_DEBUG" help:"Log every fetch, write and catalog call to stderr"`
}

// Dependencies holds the wired services for one crawl.
type Dependencies struct {
	Crawler *crawl.Crawler

	closers []io.Closer
}

// Close releases the fetcher and the catalog database.
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i].Close())
	}
	return errors.Join(errs...)
}

// wire builds the crawler and its collaborators from the parsed flags.
func (cli *CLI) wire(stderr io.Writer) (*Dependencies, error) {
	filter, err := markdownify.NewURLFilter(cli.Include, cli.Exclude)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	client := &http.Client{Timeout: cli.Timeout}

	deps := &Dependencies{}
	c := &crawl.Crawler{
		Parser:    goquery.NewParser(),
		Converter: htmltomarkdown.NewConverter(),
		Writer:    fs.NewWriter(fs.WithFrontMatter(cli.FrontMatter)),
		Filter:    filter,
		PageExt:   cli.PageExt,
		OutExt:    cli.OutExt,
		Logger:    logger,
	}

	if cli.Render {
		opts := []rod.Option{rod.WithFetchTimeout(cli.Timeout)}
		fetcher, err := rod.NewFetcher(opts...)
		if err != nil {
			_, _ = io.WriteString(stderr, "Hint: Chrome or Chromium must be installed\n")
			return nil, err
		}
		deps.closers = append(deps.closers, fetcher)
		c.Fetcher = fetcher
	} else {
		c.Fetcher = mdhttp.NewFetcher(mdhttp.WithClient(client))
	}

	switch cli.Extract {
	case "trafilatura":
		c.Extractor = trafilatura.NewExtractor()
	case "readability":
		c.Extractor = readability.NewExtractor()
	}

	if cli.Sitemap {
		c.Sitemaps = mdhttp.NewSitemapService(client)
	}

	if cli.Catalog != "" {
		db := sqlite.NewDB(cli.Catalog)
		if err := db.Open(); err != nil {
			_ = deps.Close()
			return nil, markdownify.Errorf(markdownify.EFILESYSTEM, "opening catalog %q: %v", cli.Catalog, err)
		}
		deps.closers = append(deps.closers, db)
		c.Catalog = sqlite.NewCatalog(db)
	}

	if cli.Debug {
		c.Fetcher = mdslog.NewLoggingFetcher(c.Fetcher, logger)
		c.Writer = mdslog.NewLoggingWriter(c.Writer, logger)
		if c.Sitemaps != nil {
			c.Sitemaps = mdslog.NewLoggingSitemapService(c.Sitemaps, logger)
		}
		if c.Catalog != nil {
			c.Catalog = mdslog.NewLoggingCatalog(c.Catalog, logger)
		}
	}

	deps.Crawler = c
	return deps, nil
}
