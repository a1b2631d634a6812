package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/marcelsud/bookshelf-api/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		err    *apperr.Error
		status int
		kind   string
	}{
		{apperr.NewValidation("bad"), http.StatusBadRequest, "validation"},
		{apperr.NewNoDataProvided("empty"), http.StatusBadRequest, "no_data_provided"},
		{apperr.NewNotFound("missing"), http.StatusNotFound, "not_found"},
		{apperr.NewUnauthorized("nope"), http.StatusUnauthorized, "unauthorized"},
		{apperr.NewMethodNotAllowed("wrong verb"), http.StatusMethodNotAllowed, "method_not_allowed"},
		{apperr.NewStorage("Database error", errors.New("dial tcp")), http.StatusInternalServerError, "storage"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status())
			assert.Equal(t, tt.kind, tt.err.Kind.String())
		})
	}
	assert.Equal(t, http.StatusInternalServerError, apperr.Kind(99).Status())
	assert.Equal(t, "unknown", apperr.Kind(99).String())
}

func TestAs(t *testing.T) {
	t.Run("through wrapping", func(t *testing.T) {
		err := fmt.Errorf("getting book: %w", apperr.NewNotFound("Book not found"))
		e, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, apperr.NotFound, e.Kind)
		assert.Equal(t, "Book not found", e.Message)
		assert.True(t, apperr.Is(err, apperr.NotFound))
		assert.False(t, apperr.Is(err, apperr.Validation))
	})
	t.Run("plain error", func(t *testing.T) {
		_, ok := apperr.As(errors.New("boom"))
		assert.False(t, ok)
	})
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.NewStorage("Database error", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Database error", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
}
