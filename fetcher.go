package markdownify

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch issues a GET for the URL and returns the response body.
	// Transport failures and non-2xx responses return ETRANSPORT.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
