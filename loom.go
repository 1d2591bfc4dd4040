package loom

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/loom/internal"
	"github.com/dmitrymomot/loom/pkg/cache"
	"github.com/dmitrymomot/loom/pkg/cookie"
	"github.com/dmitrymomot/loom/pkg/health"
	"github.com/dmitrymomot/loom/pkg/logger"
	"github.com/dmitrymomot/loom/pkg/markdown"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle: routing, middleware,
	// file-based routes, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is the interface for renderable templates, compatible
	// with templ.Component.
	Component = internal.Component

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option

	// ResponseWriter wraps http.ResponseWriter with write tracking and
	// before-write hooks.
	ResponseWriter = internal.ResponseWriter

	// HTTPError carries status code, message, and structured extras.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Registry binds route files discovered on the filesystem to their
	// page definitions, method handlers, and scope middleware.
	Registry = internal.Registry

	// PageDef binds a page route file to its renderer and data loader.
	PageDef = internal.PageDef

	// FSRouteOption configures file-based routing.
	FSRouteOption = internal.FSRouteOption

	// Extractor tries multiple request value sources in order.
	Extractor = internal.Extractor
)

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := loom.New(
//	    loom.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    loom.WithFSRoutes(routesFS, registry),
//	)
//
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewRegistry creates an empty route registry for file-based routing.
func NewRegistry() *Registry {
	return internal.NewRegistry()
}

// Run starts a multi-domain HTTP server and blocks until shutdown.
// Use this for composing multiple Apps under different domain patterns.
//
// Example:
//
//	site := loom.New(loom.WithFSRoutes(routesFS, registry))
//	api := loom.New(loom.WithHandlers(apiHandler))
//
//	err := loom.Run(":8080",
//	    loom.WithDomain("api.acme.com", api),
//	    loom.WithDomain("*.acme.com", site),
//	)
func Run(addr string, opts ...RunOption) error {
	return internal.Run(addr, opts...)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithFSRoutes enables file-based routing over the given filesystem.
// Route files map to URL patterns by convention; the registry supplies
// the code behind each file.
//
// Example:
//
//	//go:embed routes
//	var routesFS embed.FS
//
//	routes, _ := fs.Sub(routesFS, "routes")
//	loom.New(loom.WithFSRoutes(routes, registry))
func WithFSRoutes(fsys fs.FS, registry *Registry, opts ...FSRouteOption) Option {
	return internal.WithFSRoutes(fsys, registry, opts...)
}

// WithMarkdownRenderer overrides the renderer for .md content routes.
func WithMarkdownRenderer(r *markdown.Renderer) FSRouteOption {
	return internal.WithMarkdownRenderer(r)
}

// WithPageCache caches rendered markdown pages.
func WithPageCache(c cache.Cache[string], ttl time.Duration) FSRouteOption {
	return internal.WithPageCache(c, ttl)
}

// WithPageLayout wraps every file-routed page in a custom layout.
func WithPageLayout(layout func(title string, body Component) Component) FSRouteOption {
	return internal.WithPageLayout(layout)
}

// WithHydrationID overrides the element ID of the embedded page payload.
func WithHydrationID(id string) FSRouteOption {
	return internal.WithHydrationID(id)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables the liveness and readiness endpoints.
//
// Example:
//
//	loom.WithHealthChecks(
//	    loom.WithReadinessProbe("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger with a component name and optional
// extractors pulling request-scoped values into every entry.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithBaseDomain configures the base domain for subdomain extraction,
// enabling c.Subdomain() without parameters.
func WithBaseDomain(domain string) Option {
	return internal.WithBaseDomain(domain)
}

// WithCookieOptions configures the cookie manager.
//
// Example:
//
//	loom.New(
//	    loom.WithCookieOptions(
//	        loom.WithCookieSecret(os.Getenv("COOKIE_SECRET")),
//	        loom.WithCookieSecure(true),
//	    ),
//	)
func WithCookieOptions(opts ...CookieOption) Option {
	return internal.WithCookieOptions(opts...)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessProbe adds a named readiness probe.
// Probes run in parallel during the readiness check.
func WithReadinessProbe(name string, fn health.Probe) HealthOption {
	return internal.WithReadinessProbe(name, fn)
}

// Run options

// WithRunLogger sets the logger for server lifecycle events.
func WithRunLogger(l *slog.Logger) RunOption {
	return internal.WithRunLogger(l)
}

// WithShutdownTimeout sets the graceful shutdown timeout.
// Defaults to 30 seconds.
func WithShutdownTimeout(d time.Duration) RunOption {
	return internal.WithShutdownTimeout(d)
}

// WithStartupHook registers a function to run after the listener is
// bound, before serving. A hook error aborts startup.
//
// Example:
//
//	loom.WithStartupHook(func(ctx context.Context) error {
//	    return db.Migrate(ctx, pool, migrationsFS, "", log)
//	})
func WithStartupHook(fn func(context.Context) error) RunOption {
	return internal.WithStartupHook(fn)
}

// WithShutdownHook registers a cleanup function for graceful shutdown.
// Hooks run in registration order with the shutdown timeout.
//
// Example:
//
//	loom.WithShutdownHook(db.Shutdown(pool))
func WithShutdownHook(fn func(context.Context) error) RunOption {
	return internal.WithShutdownHook(fn)
}

// WithDomain maps a host pattern to an App.
// Patterns: "api.example.com" (exact) or "*.example.com" (wildcard).
func WithDomain(pattern string, app *App) RunOption {
	return internal.WithDomain(pattern, app)
}

// WithFallback sets the handler for hosts no domain pattern matches.
func WithFallback(h http.Handler) RunOption {
	return internal.WithFallback(h)
}

// WithContext sets a custom base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// AsHTTPError extracts the HTTPError from err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Convenience error constructors.
var (
	ErrBadRequest         = internal.ErrBadRequest
	ErrUnauthorized       = internal.ErrUnauthorized
	ErrForbidden          = internal.ErrForbidden
	ErrNotFound           = internal.ErrNotFound
	ErrConflict           = internal.ErrConflict
	ErrUnprocessable      = internal.ErrUnprocessable
	ErrInternal           = internal.ErrInternal
	ErrServiceUnavailable = internal.ErrServiceUnavailable
)

// HTTPError options.
var (
	WithDetail    = internal.WithDetail
	WithErrorCode = internal.WithErrorCode
	WithRequestID = internal.WithRequestID
	WithError     = internal.WithError
)

// Extractors

// NewExtractor creates an extractor over the given sources, tried in
// order until one matches.
func NewExtractor(sources ...internal.ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// Extractor sources.
var (
	FromHeader          = internal.FromHeader
	FromQuery           = internal.FromQuery
	FromCookie          = internal.FromCookie
	FromCookieSigned    = internal.FromCookieSigned
	FromCookieEncrypted = internal.FromCookieEncrypted
	FromParam           = internal.FromParam
	FromForm            = internal.FromForm
	FromBearerToken     = internal.FromBearerToken
)

// Context helpers

// ContextValue retrieves a typed value from the context, zero value on
// miss or type mismatch.
//
// Example:
//
//	type tenantKey struct{}
//	tenant := loom.ContextValue[string](c, tenantKey{})
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a typed URL parameter, zero value on parse failure.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a typed query parameter, zero value on parse failure.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryOr returns a typed query parameter, or def when missing or
// unparsable.
func QueryOr[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, def T) T {
	return internal.QueryOr[T](c, name, def)
}

// Cookie options

// WithCookieSecret sets the secret for signing and encryption.
// Must be at least 32 bytes.
func WithCookieSecret(secret string) CookieOption {
	return cookie.WithSecret(secret)
}

// WithCookieDomain sets the cookie domain.
func WithCookieDomain(domain string) CookieOption {
	return cookie.WithDomain(domain)
}

// WithCookiePath sets the cookie path.
func WithCookiePath(path string) CookieOption {
	return cookie.WithPath(path)
}

// WithCookieSecure sets the Secure flag.
func WithCookieSecure(secure bool) CookieOption {
	return cookie.WithSecure(secure)
}

// WithCookieHTTPOnly sets the HttpOnly flag.
func WithCookieHTTPOnly(httpOnly bool) CookieOption {
	return cookie.WithHTTPOnly(httpOnly)
}

// WithCookieSameSite sets the SameSite attribute.
func WithCookieSameSite(ss http.SameSite) CookieOption {
	return cookie.WithSameSite(ss)
}

// Cookie errors for checking return values.
var (
	ErrCookieNotFound = cookie.ErrNotFound
	ErrCookieNoSecret = cookie.ErrNoSecret
	ErrCookieBadSig   = cookie.ErrBadSig
	ErrCookieDecrypt  = cookie.ErrDecrypt
)
