package hostrouter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/hostrouter"
)

func tag(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(name))
	})
}

func serve(t *testing.T, h http.Handler, host string) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = host
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Body.String()
}

func TestRouter(t *testing.T) {
	t.Parallel()

	hr := hostrouter.New(tag("fallback")).
		Map("api.example.com", tag("api")).
		Map("*.example.com", tag("tenant"))

	tests := []struct {
		name string
		host string
		want string
	}{
		{"exact match", "api.example.com", "api"},
		{"exact beats wildcard", "api.example.com:8080", "api"},
		{"wildcard subdomain", "acme.example.com", "tenant"},
		{"case insensitive", "ACME.Example.COM", "tenant"},
		{"apex not matched by wildcard", "example.com", "fallback"},
		{"unrelated host", "other.com", "fallback"},
		{"ipv6 host", "[::1]:8080", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, serve(t, hr, tt.host))
		})
	}
}

func TestDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		want string
	}{
		{"example.com:8080", "example.com"},
		{"Example.COM", "example.com"},
		{"[::1]:8080", "[::1]"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = tt.host
		require.Equal(t, tt.want, hostrouter.Domain(req))
	}
}

func TestSubdomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		host string
		base string
		want string
	}{
		{"single level", "foo.example.com", "example.com", "foo"},
		{"multi level", "bar.foo.example.com", "example.com", "bar.foo"},
		{"apex", "example.com", "example.com", ""},
		{"unrelated", "other.com", "example.com", ""},
		{"suffix but not subdomain", "notexample.com", "example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			require.Equal(t, tt.want, hostrouter.Subdomain(req, tt.base))
		})
	}
}
