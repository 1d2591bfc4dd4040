package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/internal"
	"github.com/dmitrymomot/loom/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("passes through without panic", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.Recover()
		h := mw(func(c internal.Context) error {
			return c.String(http.StatusOK, "ok")
		})

		w := httptest.NewRecorder()
		c := newTestContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NoError(t, h(c))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "ok", w.Body.String())
	})

	t.Run("converts panic to PanicError", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.Recover()
		h := mw(func(c internal.Context) error {
			panic("boom")
		})

		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		err := h(c)
		require.Error(t, err)

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "boom", pe.Value)
		require.NotEmpty(t, pe.Stack)
	})

	t.Run("disabled stack capture", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.Recover(middlewares.WithRecoverDisableStack())
		h := mw(func(c internal.Context) error {
			panic("boom")
		})

		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		pe, ok := middlewares.AsPanicError(h(c))
		require.True(t, ok)
		require.Nil(t, pe.Stack)
	})

	t.Run("handler error passes through untouched", func(t *testing.T) {
		t.Parallel()

		want := internal.ErrForbidden("nope")
		mw := middlewares.Recover()
		h := mw(func(c internal.Context) error {
			return want
		})

		c := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		err := h(c)
		require.ErrorIs(t, err, want)
		_, ok := middlewares.AsPanicError(err)
		require.False(t, ok)
	})
}
