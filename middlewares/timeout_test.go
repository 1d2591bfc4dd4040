package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/internal"
	"github.com/dmitrymomot/loom/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("fast handler completes", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.Timeout(time.Second)
		h := mw(func(c internal.Context) error {
			return c.String(http.StatusOK, "ok")
		})

		w := httptest.NewRecorder()
		require.NoError(t, h(newTestContext(w, httptest.NewRequest(http.MethodGet, "/", nil))))
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("slow handler returns TimeoutError", func(t *testing.T) {
		t.Parallel()

		timeout := 20 * time.Millisecond
		mw := middlewares.Timeout(timeout)
		h := mw(func(c internal.Context) error {
			<-middlewares.GetTimeoutContext(c).Done()
			return nil
		})

		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		err := h(c)
		te, ok := middlewares.AsTimeoutError(err)
		require.True(t, ok)
		require.Equal(t, timeout, te.Duration)
	})

	t.Run("handler error propagates", func(t *testing.T) {
		t.Parallel()

		want := internal.ErrBadRequest("bad input")
		mw := middlewares.Timeout(time.Second)
		h := mw(func(c internal.Context) error {
			return want
		})

		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.ErrorIs(t, h(c), want)
	})

	t.Run("GetTimeoutContext without middleware falls back", func(t *testing.T) {
		t.Parallel()

		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, c.Context(), middlewares.GetTimeoutContext(c))
	})
}
