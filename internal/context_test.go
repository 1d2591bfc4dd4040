package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/cookie"
)

func TestRequestContext(t *testing.T) {
	t.Parallel()

	t.Run("JSON sets content type", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		c := newContext(w, httptest.NewRequest(http.MethodGet, "/", nil), New())

		require.NoError(t, c.JSON(http.StatusOK, map[string]int{"n": 1}))
		require.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		require.JSONEq(t, `{"n":1}`, w.Body.String())
	})

	t.Run("Set values flow into the request context", func(t *testing.T) {
		t.Parallel()

		c := newContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), New())

		type key struct{}
		c.Set(key{}, "v")

		require.Equal(t, "v", c.Get(key{}))
		require.Equal(t, "v", c.Context().Value(key{}))
		require.Equal(t, "v", c.Value(key{}))
	})

	t.Run("subdomain requires base domain", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Host = "tenant.example.com"

		c := newContext(httptest.NewRecorder(), r, New())
		require.Empty(t, c.Subdomain())

		c2 := newContext(httptest.NewRecorder(), r, New(WithBaseDomain("example.com")))
		require.Equal(t, "tenant", c2.Subdomain())
		require.Equal(t, "tenant.example.com", c2.Domain())
	})

	t.Run("signed cookies round-trip through the manager", func(t *testing.T) {
		t.Parallel()

		app := New(WithCookieOptions(cookie.WithSecret("ctx-test-secret-key-32-bytes-ok!!")))

		w := httptest.NewRecorder()
		c := newContext(w, httptest.NewRequest(http.MethodGet, "/", nil), app)
		require.NoError(t, c.SetCookieSigned("sid", "abc", 60))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, ck := range w.Result().Cookies() {
			r.AddCookie(ck)
		}
		c2 := newContext(httptest.NewRecorder(), r, app)

		v, err := c2.CookieSigned("sid")
		require.NoError(t, err)
		require.Equal(t, "abc", v)
	})

	t.Run("claims absent means anonymous", func(t *testing.T) {
		t.Parallel()

		c := newContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), New())
		require.Nil(t, c.Claims())
		require.Empty(t, c.UserID())
		require.False(t, c.IsAuthenticated())
	})
}
