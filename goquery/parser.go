// Package goquery implements markdownify.Parser on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/markdownify"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ markdownify.Parser   = (*Parser)(nil)
	_ markdownify.Document = (*Document)(nil)
	_ markdownify.Element  = (*Element)(nil)
)

// Parser parses HTML into goquery-backed documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse builds a Document from raw HTML.
// The HTML5 parsing algorithm accepts almost any input, so malformed
// markup yields a best-effort tree rather than an error.
func (p *Parser) Parse(raw string) (markdownify.Document, error) {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, markdownify.Errorf(markdownify.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: goquery.NewDocumentFromNode(root)}, nil
}

// Document wraps a parsed HTML tree.
type Document struct {
	doc *goquery.Document
}

// Remove deletes every element with one of the given tag names.
func (d *Document) Remove(tags ...string) {
	if len(tags) == 0 {
		return
	}
	d.doc.Find(strings.ToLower(strings.Join(tags, ","))).Remove()
}

// Find returns every element with the given tag name in document order.
func (d *Document) Find(tag string) []markdownify.Element {
	var elems []markdownify.Element
	d.doc.Find(strings.ToLower(tag)).Each(func(_ int, sel *goquery.Selection) {
		elems = append(elems, &Element{sel: sel})
	})
	return elems
}

// Title returns the trimmed text of the first <title> element.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// HTML renders the current state of the document.
func (d *Document) HTML() (string, error) {
	return goquery.OuterHtml(d.doc.Selection)
}

// Element wraps a single goquery selection.
type Element struct {
	sel *goquery.Selection
}

// Attr returns the value of the named attribute and whether it exists.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}
