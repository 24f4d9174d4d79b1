package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/markdownify"
)

// skippedSchemes are href prefixes that never point at a crawlable page.
var skippedSchemes = []string{"mailto:", "tel:", "#", "javascript:"}

// LinkFilter decides which anchors on a page are followed.
type LinkFilter struct {
	origin  string
	site    *url.URL
	pageExt string
	filter  *markdownify.URLFilter
}

// NewLinkFilter creates a LinkFilter for the site of seed.
// Only links whose path ends in pageExt qualify; an empty pageExt accepts any path.
// The optional URL filter is applied to the resolved link.
func NewLinkFilter(seed *url.URL, pageExt string, filter *markdownify.URLFilter) *LinkFilter {
	site := &url.URL{Scheme: seed.Scheme, Host: seed.Host}
	return &LinkFilter{
		origin:  site.String(),
		site:    site,
		pageExt: pageExt,
		filter:  filter,
	}
}

// Qualify resolves href against the page URL and reports whether the result
// should join the frontier. The returned URL has its fragment removed.
// Hrefs that fail to parse are dropped.
func (f *LinkFilter) Qualify(page *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	lower := strings.ToLower(href)
	for _, prefix := range skippedSchemes {
		if strings.HasPrefix(lower, prefix) {
			return "", false
		}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if ref.IsAbs() && !strings.HasPrefix(href, f.origin) {
		return "", false
	}

	resolved := page.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""

	if resolved.Scheme != f.site.Scheme || resolved.Host != f.site.Host {
		return "", false
	}
	if !strings.HasSuffix(resolved.Path, f.pageExt) {
		return "", false
	}

	link := resolved.String()
	if !f.filter.Match(link) {
		return "", false
	}
	return link, true
}
