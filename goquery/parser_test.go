package goquery_test

import (
	"testing"

	"github.com/fwojciec/markdownify/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("finds anchors in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/a.html">A</a>
<p><a href="b.html">B</a></p>
<a>no href</a>
</body></html>`

		doc, err := goquery.NewParser().Parse(html)
		require.NoError(t, err)

		anchors := doc.Find("a")
		require.Len(t, anchors, 3)

		href, ok := anchors[0].Attr("href")
		assert.True(t, ok)
		assert.Equal(t, "/a.html", href)

		href, ok = anchors[1].Attr("href")
		assert.True(t, ok)
		assert.Equal(t, "b.html", href)

		_, ok = anchors[2].Attr("href")
		assert.False(t, ok)
	})

	t.Run("removes script and style elements", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><style>body { color: red; }</style></head>
<body><script>alert(1)</script><p>Hello</p><script src="x.js"></script></body></html>`

		doc, err := goquery.NewParser().Parse(html)
		require.NoError(t, err)

		doc.Remove("script", "style")

		out, err := doc.HTML()
		require.NoError(t, err)
		assert.Contains(t, out, "<p>Hello</p>")
		assert.NotContains(t, out, "alert(1)")
		assert.NotContains(t, out, "color: red")
		assert.NotContains(t, out, "<script")
		assert.Empty(t, doc.Find("script"))
		assert.Empty(t, doc.Find("style"))
	})

	t.Run("removes nested elements once", func(t *testing.T) {
		t.Parallel()

		html := `<body><div><noscript><div>inner</div></noscript></div><p>kept</p></body>`

		doc, err := goquery.NewParser().Parse(html)
		require.NoError(t, err)

		doc.Remove("noscript")

		out, err := doc.HTML()
		require.NoError(t, err)
		assert.NotContains(t, out, "inner")
		assert.Contains(t, out, "kept")
	})

	t.Run("removes custom elements by name", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse(`<body><x-widget>gone</x-widget><p>kept</p></body>`)
		require.NoError(t, err)

		doc.Remove("x-widget")

		out, err := doc.HTML()
		require.NoError(t, err)
		assert.NotContains(t, out, "gone")
		assert.Contains(t, out, "kept")
	})

	t.Run("removes nothing without tags", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse(`<body><script>keep()</script></body>`)
		require.NoError(t, err)

		doc.Remove()

		assert.Len(t, doc.Find("script"), 1)
	})

	t.Run("matches tag names case-insensitively", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse(`<body><SCRIPT>x()</SCRIPT><p>kept</p></body>`)
		require.NoError(t, err)

		doc.Remove("SCRIPT", "Style")

		assert.Empty(t, doc.Find("script"))
		assert.Len(t, doc.Find("p"), 1)
	})

	t.Run("returns trimmed title", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse(`<html><head><title>  Guide  </title></head><body></body></html>`)
		require.NoError(t, err)

		assert.Equal(t, "Guide", doc.Title())
	})

	t.Run("returns empty title when missing", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse(`<p>no title</p>`)
		require.NoError(t, err)

		assert.Empty(t, doc.Title())
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse(`<div><p>unclosed <a href="x.html">link`)
		require.NoError(t, err)

		assert.Len(t, doc.Find("a"), 1)
	})
}
