package main_test

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/markdownify"
	main "github.com/fwojciec/markdownify/cmd/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// newSite serves the given path -> HTML pages and 404s everything else.
// "{{base}}" in a page is replaced with the server URL.
func newSite(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{base}}", srv.URL)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func scenarioSite(t *testing.T) *httptest.Server {
	return newSite(t, map[string]string{
		"/index.html": `<html><head><title>Home</title><script>track()</script></head><body>
			<h1>Home</h1>
			<a href="{{base}}/a.html">A</a>
			<a href="https://other.com/x.html">X</a>
			<a href="{{base}}/img.png">Image</a>
		</body></html>`,
		"/a.html": `<html><head><title>A</title></head><body><h2>Page A</h2><a href="index.html">Home</a></body></html>`,
	})
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "crawl")
	assert.Contains(t, stdout.String(), "--max-pages")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_RequiresOutputDir(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"https://example.com/index.html"}, &stdout, &stderr)

	assert.Equal(t, markdownify.EINVALID, markdownify.ErrorCode(err))
}

func TestMain_Run_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("writes same-site pages only", func(t *testing.T) {
		t.Parallel()

		srv := scenarioSite(t)
		dir := filepath.Join(t.TempDir(), "out")
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/index.html", dir, "--max-pages", "10"}, &stdout, &stderr)

		require.NoError(t, err)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.Equal(t, []string{"a.md", "index.md"}, names)

		index, err := os.ReadFile(filepath.Join(dir, "index.md"))
		require.NoError(t, err)
		assert.Contains(t, string(index), "# Home")
		assert.NotContains(t, string(index), "track()")

		a, err := os.ReadFile(filepath.Join(dir, "a.md"))
		require.NoError(t, err)
		assert.Contains(t, string(a), "## Page A")

		assert.Contains(t, stdout.String(), "[1/10] index.md")
		assert.Contains(t, stdout.String(), "[2/10] a.md")
		assert.Contains(t, stdout.String(), "Wrote 2 of 2 processed pages")
	})

	t.Run("respects max pages", func(t *testing.T) {
		t.Parallel()

		srv := scenarioSite(t)
		dir := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/index.html", dir, "-n", "1"}, &stdout, &stderr)

		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "index.md"))
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "a.md"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("fails when nothing is written", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t, nil)
		dir := filepath.Join(t.TempDir(), "out")
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/index.html", dir}, &stdout, &stderr)

		require.ErrorIs(t, err, main.ErrNothingWritten)
		assert.DirExists(t, dir)
		assert.Contains(t, stdout.String(), "failed")
		assert.Contains(t, stderr.String(), "404")
	})

	t.Run("rejects invalid filter", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{"https://example.com/", t.TempDir(), "--include", "("}, &stdout, &stderr)

		assert.Equal(t, markdownify.EINVALID, markdownify.ErrorCode(err))
	})

	t.Run("rejects non-positive max pages", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{"https://example.com/", t.TempDir(), "--max-pages", "0"}, &stdout, &stderr)

		assert.Equal(t, markdownify.EINVALID, markdownify.ErrorCode(err))
	})

	t.Run("writes front matter", func(t *testing.T) {
		t.Parallel()

		srv := scenarioSite(t)
		dir := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/index.html", dir, "--frontmatter", "-n", "1"}, &stdout, &stderr)

		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(dir, "index.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), fmt.Sprintf("source: %s/index.html", srv.URL))
		assert.Contains(t, string(content), "title: Home")
	})

	t.Run("records catalog", func(t *testing.T) {
		t.Parallel()

		srv := scenarioSite(t)
		dir := t.TempDir()
		dbPath := filepath.Join(t.TempDir(), "catalog.db")
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/index.html", dir, "--catalog", dbPath}, &stdout, &stderr)
		require.NoError(t, err)
		assert.Regexp(t, `Recorded crawl [0-9a-f-]{36}: 2 written, 0 failed`, stdout.String())

		db, err := sql.Open("sqlite3", dbPath)
		require.NoError(t, err)
		defer db.Close()

		var crawls, written int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM crawls WHERE written = 2").Scan(&crawls))
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM pages WHERE status = 'written'").Scan(&written))
		assert.Equal(t, 1, crawls)
		assert.Equal(t, 2, written)
	})

	t.Run("debug logs every fetch", func(t *testing.T) {
		t.Parallel()

		srv := scenarioSite(t)
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/index.html", t.TempDir(), "--debug"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "msg=fetch")
		assert.Contains(t, stderr.String(), "msg=\"write page\"")
	})

	t.Run("quiet stderr without debug", func(t *testing.T) {
		t.Parallel()

		srv := scenarioSite(t)
		var stdout, stderr bytes.Buffer

		err := main.NewMain().Run(context.Background(), []string{srv.URL + "/index.html", t.TempDir()}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Empty(t, stderr.String())
	})
}
