package markdownify_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/markdownify"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := markdownify.Errorf(markdownify.ETRANSPORT, "HTTP %d for %s", 404, "https://example.com/a.html")

	assert.Equal(t, markdownify.ETRANSPORT, markdownify.ErrorCode(err))
	assert.Equal(t, "HTTP 404 for https://example.com/a.html", markdownify.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("write page: %w", markdownify.Errorf(markdownify.EFILESYSTEM, "permission denied"))

	assert.Equal(t, markdownify.EFILESYSTEM, markdownify.ErrorCode(err))
	assert.Equal(t, "permission denied", markdownify.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, markdownify.EINTERNAL, markdownify.ErrorCode(err))
	assert.Equal(t, "Internal error.", markdownify.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, markdownify.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, markdownify.ErrorMessage(nil))
}
