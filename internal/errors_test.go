package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/internal"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("constructor applies options", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("db: connection refused")
		err := internal.NewHTTPError(http.StatusServiceUnavailable, "try again later",
			internal.WithDetail("primary database unreachable"),
			internal.WithErrorCode("db_unavailable"),
			internal.WithRequestID("req-1"),
			internal.WithError(cause),
		)

		require.Equal(t, http.StatusServiceUnavailable, err.Code)
		require.Equal(t, "try again later", err.Error())
		require.Equal(t, "primary database unreachable", err.Detail)
		require.Equal(t, "db_unavailable", err.ErrorCode)
		require.Equal(t, "req-1", err.RequestID)
		require.ErrorIs(t, err, cause)
		require.Equal(t, "Service Unavailable", err.StatusText())
	})

	t.Run("convenience constructors set codes", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, http.StatusBadRequest, internal.ErrBadRequest("x").Code)
		require.Equal(t, http.StatusUnauthorized, internal.ErrUnauthorized("x").Code)
		require.Equal(t, http.StatusForbidden, internal.ErrForbidden("x").Code)
		require.Equal(t, http.StatusNotFound, internal.ErrNotFound("x").Code)
		require.Equal(t, http.StatusConflict, internal.ErrConflict("x").Code)
		require.Equal(t, http.StatusUnprocessableEntity, internal.ErrUnprocessable("x").Code)
		require.Equal(t, http.StatusInternalServerError, internal.ErrInternal("x").Code)
		require.Equal(t, http.StatusServiceUnavailable, internal.ErrServiceUnavailable("x").Code)
	})

	t.Run("AsHTTPError walks the chain", func(t *testing.T) {
		t.Parallel()

		inner := internal.ErrNotFound("missing")
		wrapped := fmt.Errorf("handling request: %w", inner)

		require.Equal(t, inner, internal.AsHTTPError(wrapped))
		require.Nil(t, internal.AsHTTPError(errors.New("plain")))
		require.Nil(t, internal.AsHTTPError(nil))
	})
}
