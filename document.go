package markdownify

// Parser parses HTML into a queryable document tree.
type Parser interface {
	// Parse builds a Document from raw HTML.
	// Returns EINVALID if the input cannot be parsed.
	Parse(html string) (Document, error)
}

// Document is a parsed HTML page.
type Document interface {
	// Remove deletes every element with one of the given tag names,
	// including its children.
	Remove(tags ...string)

	// Find returns every element with the given tag name in document order.
	Find(tag string) []Element

	// Title returns the trimmed text of the <title> element, if any.
	Title() string

	// HTML renders the current state of the document.
	HTML() (string, error)
}

// Element is a single node of a Document.
type Element interface {
	// Attr returns the value of the named attribute and whether it exists.
	Attr(name string) (string, bool)
}
