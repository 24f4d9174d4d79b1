package markdownify

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be sanitized HTML (scripts and styles removed).
	// Headings are rendered in ATX style ("# Title").
	Convert(html string) (string, error)
}
