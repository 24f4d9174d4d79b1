package crawl

import (
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/markdownify"
)

// BasePath returns the directory part of the seed URL path, always ending in "/".
func BasePath(seed *url.URL) string {
	p := seed.Path
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "/"
	}
	return p[:i+1]
}

// OutputPath derives the slash-separated output file path for a page.
//
// The base path is stripped when it prefixes the page path. An empty remainder
// or one ending in "/" maps to "index"; otherwise the last segment loses its
// extension. ext is appended to the file name.
func OutputPath(page *url.URL, basePath, ext string) (string, error) {
	p := page.Path
	if p == "" {
		p = "/"
	}

	rel := strings.TrimPrefix(p, "/")
	if base := strings.TrimPrefix(basePath, "/"); base != "" && strings.HasPrefix(rel, base) {
		rel = strings.TrimPrefix(rel, base)
	}

	dir, file := path.Split(rel)
	if file == "" {
		file = "index"
	} else {
		file = strings.TrimSuffix(file, path.Ext(file))
		if file == "" {
			file = "index"
		}
	}

	out := path.Join(dir, file+ext)
	if out == ".." || strings.HasPrefix(out, "../") || path.IsAbs(out) {
		return "", markdownify.Errorf(markdownify.EINVALID, "path %q escapes the output directory", page.Path)
	}
	return out, nil
}
