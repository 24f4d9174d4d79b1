package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/markdownify"
)

// Ensure SitemapService implements markdownify.SitemapService.
var _ markdownify.SitemapService = (*SitemapService)(nil)

// maxIndexDepth bounds how many sitemap indexes may be nested.
const maxIndexDepth = 5

// SitemapService discovers page URLs from sitemaps over HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the page URLs listed in the sitemaps of baseURL's site
// whose path lies below baseURL's path. Sitemaps named in robots.txt are read
// first; /sitemap.xml is tried when robots.txt names none. A missing fallback
// sitemap yields an empty slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, markdownify.Errorf(markdownify.EINVALID, "invalid base URL %q", baseURL)
	}
	site := &url.URL{Scheme: base.Scheme, Host: base.Host}

	locations, err := s.robotsSitemaps(ctx, site)
	if err != nil {
		return nil, err
	}
	fallback := len(locations) == 0
	if fallback {
		locations = []string{site.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}
	}

	w := &sitemapWalk{
		svc:      s,
		scope:    scopeOf(base.Path),
		sitemaps: make(map[string]bool),
		pages:    make(map[string]bool),
		urls:     []string{},
	}
	for _, loc := range locations {
		if err := w.visit(ctx, loc, 0); err != nil {
			if fallback && markdownify.ErrorCode(err) == markdownify.ENOTFOUND {
				return []string{}, nil
			}
			return nil, err
		}
	}
	return w.urls, nil
}

// scopeOf turns a base path into a directory prefix; "" means the whole site.
func scopeOf(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// robotsSitemaps returns the Sitemap: directives of the site's robots.txt.
// A missing or unreadable robots.txt yields none.
func (s *SitemapService) robotsSitemaps(ctx context.Context, site *url.URL) ([]string, error) {
	body, err := s.get(ctx, site.ResolveReference(&url.URL{Path: "/robots.txt"}).String())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, nil
	}
	defer body.Close()

	var locations []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if loc := strings.TrimSpace(value); loc != "" {
			locations = append(locations, loc)
		}
	}
	return locations, nil
}

// sitemapWalk collects page URLs across one discovery.
type sitemapWalk struct {
	svc      *SitemapService
	scope    string
	sitemaps map[string]bool
	pages    map[string]bool
	urls     []string
}

// visit reads one sitemap, descending into sitemap indexes.
func (w *sitemapWalk) visit(ctx context.Context, loc string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.sitemaps[loc] {
		return nil
	}
	w.sitemaps[loc] = true
	if depth > maxIndexDepth {
		return markdownify.Errorf(markdownify.EINVALID, "sitemap %s nested more than %d indexes deep", loc, maxIndexDepth)
	}

	body, err := w.svc.get(ctx, loc)
	if err != nil {
		return err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return markdownify.Errorf(markdownify.EINVALID, "parsing sitemap %s: %v", loc, err)
	}
	root := doc.Root()
	if root == nil {
		return markdownify.Errorf(markdownify.EINVALID, "empty sitemap %s", loc)
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locs(root, "./sitemap/loc") {
			if err := w.visit(ctx, child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, page := range locs(root, "./url/loc") {
		if w.pages[page] || !w.inScope(page) {
			continue
		}
		w.pages[page] = true
		w.urls = append(w.urls, page)
	}
	return nil
}

// inScope reports whether page lies below the walk's path prefix.
func (w *sitemapWalk) inScope(page string) bool {
	if w.scope == "" {
		return true
	}
	u, err := url.Parse(page)
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Path, w.scope)
}

// locs returns the trimmed, non-empty text of the elements at path.
func locs(root *etree.Element, path string) []string {
	var out []string
	for _, el := range root.FindElements(path) {
		if text := strings.TrimSpace(el.Text()); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// get fetches targetURL. A 404 is ENOTFOUND; other non-200 responses are ETRANSPORT.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, markdownify.Errorf(markdownify.EINVALID, "creating request for %s: %v", targetURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, markdownify.Errorf(markdownify.ETRANSPORT, "GET %s: %v", targetURL, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, markdownify.Errorf(markdownify.ENOTFOUND, "no sitemap at %s", targetURL)
	default:
		resp.Body.Close()
		return nil, markdownify.Errorf(markdownify.ETRANSPORT, "HTTP %d for %s", resp.StatusCode, targetURL)
	}
}
