package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/internal"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("tracks status and size", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		w.WriteHeader(http.StatusCreated)
		n, err := w.Write([]byte("hello"))
		require.NoError(t, err)
		require.Equal(t, 5, n)

		require.Equal(t, http.StatusCreated, w.Status())
		require.Equal(t, int64(5), w.Size())
		require.True(t, w.Written())
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("second WriteHeader is ignored", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)

		require.Equal(t, http.StatusTeapot, w.Status())
		require.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("write without WriteHeader defaults to 200", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		_, err := w.Write([]byte("body"))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, w.Status())
	})

	t.Run("before-write hooks run once before first byte", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		var order []string
		w.OnBeforeWrite(func() {
			order = append(order, "first")
			w.Header().Set("X-Late-Header", "still-possible")
		})
		w.OnBeforeWrite(func() { order = append(order, "second") })

		_, err := w.Write([]byte("a"))
		require.NoError(t, err)
		_, err = w.Write([]byte("b"))
		require.NoError(t, err)

		require.Equal(t, []string{"first", "second"}, order)
		require.Equal(t, "still-possible", rec.Header().Get("X-Late-Header"))
	})

	t.Run("unwrap returns the underlying writer", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)
		require.Equal(t, http.ResponseWriter(rec), w.Unwrap())
	})
}
