// Package rod implements markdownify.Fetcher with a headless Chrome browser.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/markdownify"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultResponseWait bounds how long Fetch waits for the document response
// that carries the HTTP status.
const DefaultResponseWait = 30 * time.Second

// Ensure Fetcher implements markdownify.Fetcher at compile time.
var _ markdownify.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
type Fetcher struct {
	manager      *BrowserManager
	timeout      time.Duration
	responseWait time.Duration
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*fetcherConfig)

type fetcherConfig struct {
	timeout      time.Duration
	responseWait time.Duration
	managerOpts  []ManagerOption
}

// WithFetchTimeout bounds each Fetch call. Zero means no timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithResponseWait bounds the wait for the document response. When it
// elapses the page is read without a status check.
func WithResponseWait(d time.Duration) Option {
	return func(c *fetcherConfig) {
		c.responseWait = d
	}
}

// WithRecycleAfter sets how many pages the browser renders before it is restarted.
func WithRecycleAfter(n int64) Option {
	return func(c *fetcherConfig) {
		c.managerOpts = append(c.managerOpts, WithMaxPages(n))
	}
}

// NewFetcher launches a headless browser and returns a Fetcher using it.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := &fetcherConfig{responseWait: DefaultResponseWait}
	for _, opt := range opts {
		opt(cfg)
	}

	manager, err := NewBrowserManager(cfg.managerOpts...)
	if err != nil {
		return nil, markdownify.Errorf(markdownify.EINTERNAL, "%v", err)
	}

	return &Fetcher{manager: manager, timeout: cfg.timeout, responseWait: cfg.responseWait}, nil
}

// Fetch navigates to the URL, waits for the load event and returns the rendered HTML.
// A non-2xx document response returns ETRANSPORT. A response that does not
// arrive within the response wait leaves the status unchecked.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", markdownify.Errorf(markdownify.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", markdownify.Errorf(markdownify.EINTERNAL, "opening page: %v", err)
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	events := page.Timeout(f.responseWait)
	defer events.CancelTimeout()

	var status int
	waitResponse := events.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return "", f.fetchError(ctx, url, err)
	}
	waitResponse()

	if err := page.WaitLoad(); err != nil {
		return "", f.fetchError(ctx, url, err)
	}
	if status != 0 && (status < 200 || status >= 300) {
		return "", markdownify.Errorf(markdownify.ETRANSPORT, "HTTP %d for %s", status, url)
	}

	html, err := page.HTML()
	if err != nil {
		return "", f.fetchError(ctx, url, err)
	}
	return html, nil
}

// fetchError keeps context errors intact and classifies the rest as transport failures.
func (f *Fetcher) fetchError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return markdownify.Errorf(markdownify.ETRANSPORT, "render %s: %v", url, err)
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
