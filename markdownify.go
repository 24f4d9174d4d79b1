// Package markdownify mirrors a website as a tree of markdown files.
// It crawls same-site pages breadth-first from a seed URL, strips
// script and style markup, converts each page to markdown and writes
// one file per page under an output directory.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, htmltomarkdown/, sqlite/).
package markdownify
