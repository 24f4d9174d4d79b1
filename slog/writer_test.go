package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/markdownify"
	"github.com/fwojciec/markdownify/mock"
	mdslog "github.com/fwojciec/markdownify/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingWriter_WritePage(t *testing.T) {
	t.Parallel()

	t.Run("logs path and size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var gotDir string
		inner := &mock.PageWriter{
			WritePageFn: func(_ context.Context, dir string, _ *markdownify.Page) error {
				gotDir = dir
				return nil
			},
		}

		w := mdslog.NewLoggingWriter(inner, logger)
		err := w.WritePage(context.Background(), "out", &markdownify.Page{
			URL:     "https://example.com/docs/guide.html",
			Path:    "docs/guide.md",
			Content: "# Guide",
		})

		require.NoError(t, err)
		assert.Equal(t, "out", gotDir)
		output := buf.String()
		assert.Contains(t, output, "write page")
		assert.Contains(t, output, "path=docs/guide.md")
		assert.Contains(t, output, "bytes=7")
	})

	t.Run("returns and logs error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageWriter{
			WritePageFn: func(context.Context, string, *markdownify.Page) error {
				return markdownify.Errorf(markdownify.EFILESYSTEM, "disk full")
			},
		}

		w := mdslog.NewLoggingWriter(inner, logger)
		err := w.WritePage(context.Background(), "out", &markdownify.Page{URL: "u", Path: "p.md"})

		assert.Equal(t, markdownify.EFILESYSTEM, markdownify.ErrorCode(err))
		assert.Contains(t, buf.String(), "disk full")
	})
}

func TestLoggingWriter_CreateDir(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	var gotDir string
	inner := &mock.PageWriter{
		CreateDirFn: func(_ context.Context, dir string) error {
			gotDir = dir
			return nil
		},
	}

	w := mdslog.NewLoggingWriter(inner, logger)
	err := w.CreateDir(context.Background(), "out")

	require.NoError(t, err)
	assert.Equal(t, "out", gotDir)
	assert.Contains(t, buf.String(), "create dir")
	assert.Contains(t, buf.String(), "dir=out")
}
