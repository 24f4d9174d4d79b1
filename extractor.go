package markdownify

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// Extraction is optional: a crawl without an Extractor converts the whole
// sanitized document.
type Extractor interface {
	// Extract processes HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
