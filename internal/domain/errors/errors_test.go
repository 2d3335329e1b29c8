package errors

import (
	"net/http"
	"testing"

	"cafefinder/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetailsStillMatches(t *testing.T) {
	t.Parallel()

	err := ErrFallbackUnavailable.WithDetails("open cafes.json: no such file")

	assert.True(t, errors.Is(err, ErrFallbackUnavailable))
	assert.False(t, errors.Is(err, ErrPrimarySourceUnavailable))
	assert.Equal(t, "Could not load cafes.", err.Message())
	assert.Equal(t, "Could not load cafes.: open cafes.json: no such file", err.Error())
}

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	t.Parallel()

	wrapped := ErrInvalidSearch.WithDetails("radius must be positive").WrapMessage("find nearby")

	var appErr AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "INVALID_SEARCH", appErr.ErrorCode())
	assert.Equal(t, "radius must be positive", appErr.Details())
}

func TestStorageError_Unwraps(t *testing.T) {
	t.Parallel()

	cause := errors.New("bucket closed")
	err := NewStorageError(cause, "write preferences")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "STORAGE_FAILED", err.ErrorCode())
	assert.Contains(t, err.Error(), "bucket closed")
}
