package middlewares_test

import (
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"

	"github.com/dmitrymomot/loom/internal"
)

// testContext is a minimal Context implementation for middleware tests.
type testContext struct {
	response http.ResponseWriter
	request  *http.Request
	values   map[any]any
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: w,
		request:  r,
		values:   make(map[any]any),
	}
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context      { return c.request.Context() }
func (c *testContext) Param(name string) string      { return "" }

func (c *testContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *testContext) QueryDefault(name, def string) string {
	if v := c.request.URL.Query().Get(name); v != "" {
		return v
	}
	return def
}

func (c *testContext) Form(name string) string { return c.request.FormValue(name) }
func (c *testContext) FormFile(name string) (multipart.File, *multipart.FileHeader, error) {
	return c.request.FormFile(name)
}

func (c *testContext) Header(name string) string    { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string) { c.response.Header().Set(name, value) }

func (c *testContext) JSON(code int, v any) error { c.response.WriteHeader(code); return nil }
func (c *testContext) String(code int, s string) error {
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}
func (c *testContext) NoContent(code int) error { c.response.WriteHeader(code); return nil }
func (c *testContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}
func (c *testContext) Render(code int, component internal.Component) error {
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) Claims() *gojwt.RegisteredClaims {
	claims, _ := c.values[internal.JWTClaimsKey{}].(*gojwt.RegisteredClaims)
	return claims
}

func (c *testContext) UserID() string {
	if claims := c.Claims(); claims != nil {
		return claims.Subject
	}
	return ""
}

func (c *testContext) IsAuthenticated() bool { return c.UserID() != "" }

func (c *testContext) Domain() string    { return c.request.Host }
func (c *testContext) Subdomain() string { return "" }

func (c *testContext) Logger() *slog.Logger              { return slog.Default() }
func (c *testContext) LogDebug(msg string, attrs ...any) {}
func (c *testContext) LogInfo(msg string, attrs ...any)  {}
func (c *testContext) LogWarn(msg string, attrs ...any)  {}
func (c *testContext) LogError(msg string, attrs ...any) {}

func (c *testContext) Set(key, value any) {
	c.values[key] = value
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) Get(key any) any { return c.values[key] }

func (c *testContext) Cookie(name string) (string, error) {
	ck, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (c *testContext) SetCookie(name, value string, maxAge int) {
	http.SetCookie(c.response, &http.Cookie{Name: name, Value: value, MaxAge: maxAge})
}

func (c *testContext) DeleteCookie(name string) {
	http.SetCookie(c.response, &http.Cookie{Name: name, MaxAge: -1})
}

func (c *testContext) CookieSigned(name string) (string, error)                { return c.Cookie(name) }
func (c *testContext) SetCookieSigned(name, value string, maxAge int) error    { return nil }
func (c *testContext) CookieEncrypted(name string) (string, error)             { return c.Cookie(name) }
func (c *testContext) SetCookieEncrypted(name, value string, maxAge int) error { return nil }
func (c *testContext) Flash(key string, dest any) error                        { return nil }
func (c *testContext) SetFlash(key string, value any) error                    { return nil }

func (c *testContext) Written() bool                            { return false }
func (c *testContext) ResponseWriter() *internal.ResponseWriter { return nil }

func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }
