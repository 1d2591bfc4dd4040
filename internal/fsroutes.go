package internal

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dmitrymomot/loom/pkg/cache"
	"github.com/dmitrymomot/loom/pkg/markdown"
	"github.com/dmitrymomot/loom/pkg/routetree"
	"github.com/dmitrymomot/loom/pkg/ui"
)

// PageDef binds a page route file to its renderer and optional data
// loader. Loader output is passed to Render and embedded in the page as
// the hydration payload for client code.
type PageDef struct {
	Title  string
	Render func(c Context, data any) Component
	Loader func(c Context) (any, error)
}

// Registry maps route file paths to their handlers. Discovery resolves
// URL patterns and middleware scopes from the file tree; the registry
// supplies the code behind each file.
type Registry struct {
	pages      map[string]PageDef
	apis       map[string]map[string]HandlerFunc
	middleware map[string][]Middleware
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		pages:      make(map[string]PageDef),
		apis:       make(map[string]map[string]HandlerFunc),
		middleware: make(map[string][]Middleware),
	}
}

// Page registers a page definition for a route file.
//
// Example:
//
//	reg.Page("pages/dashboard/index.tsx", loom.PageDef{
//	    Title:  "Dashboard",
//	    Loader: loadDashboard,
//	    Render: renderDashboard,
//	})
func (r *Registry) Page(filePath string, def PageDef) *Registry {
	r.pages[filePath] = def
	return r
}

// API registers a handler for a route file and HTTP method. Multiple
// methods may be registered against the same file.
func (r *Registry) API(filePath, method string, h HandlerFunc) *Registry {
	if r.apis[filePath] == nil {
		r.apis[filePath] = make(map[string]HandlerFunc)
	}
	r.apis[filePath][strings.ToUpper(method)] = h
	return r
}

// Middleware attaches middleware to a scope directory. The chain applies
// to every route at or below that directory, outermost scopes first.
// Use "" or "." for the root scope.
func (r *Registry) Middleware(dir string, mw ...Middleware) *Registry {
	key := path.Clean(dir)
	if key == "." {
		key = ""
	}
	r.middleware[key] = append(r.middleware[key], mw...)
	return r
}

// fsRoutesConfig holds file-based routing configuration.
type fsRoutesConfig struct {
	fsys        fs.FS
	registry    *Registry
	renderer    *markdown.Renderer
	pageCache   cache.Cache[string]
	cacheTTL    time.Duration
	layout      func(title string, body Component) Component
	hydrationID string
}

// FSRouteOption configures file-based routing.
type FSRouteOption func(*fsRoutesConfig)

// WithMarkdownRenderer overrides the renderer used for .md content routes.
func WithMarkdownRenderer(r *markdown.Renderer) FSRouteOption {
	return func(cfg *fsRoutesConfig) {
		if r != nil {
			cfg.renderer = r
		}
	}
}

// WithPageCache caches rendered markdown HTML. TTL zero uses the cache's
// default.
func WithPageCache(c cache.Cache[string], ttl time.Duration) FSRouteOption {
	return func(cfg *fsRoutesConfig) {
		cfg.pageCache = c
		cfg.cacheTTL = ttl
	}
}

// WithPageLayout wraps every rendered page in the given layout. The
// default is ui.Layout with the page title.
func WithPageLayout(layout func(title string, body Component) Component) FSRouteOption {
	return func(cfg *fsRoutesConfig) {
		if layout != nil {
			cfg.layout = layout
		}
	}
}

// WithHydrationID overrides the element ID of the embedded page payload.
func WithHydrationID(id string) FSRouteOption {
	return func(cfg *fsRoutesConfig) {
		if id != "" {
			cfg.hydrationID = id
		}
	}
}

// WithFSRoutes enables file-based routing: the filesystem is walked for
// route files, URL patterns and middleware scopes are derived from file
// paths, and the registry provides the handlers.
func WithFSRoutes(fsys fs.FS, registry *Registry, opts ...FSRouteOption) Option {
	return func(a *App) {
		cfg := &fsRoutesConfig{
			fsys:        fsys,
			registry:    registry,
			hydrationID: ui.DefaultHydrationID,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		if cfg.registry == nil {
			cfg.registry = NewRegistry()
		}
		a.fsRoutes = cfg
	}
}

// mountFSRoutes walks the route tree and registers every resolvable
// route. Files that cannot be bound are skipped with a warning; a broken
// route file must never take the whole app down.
func (a *App) mountFSRoutes() {
	cfg := a.fsRoutes

	tree, err := routetree.Discover(cfg.fsys, routetree.WithLogger(a.logger))
	if err != nil {
		a.logger.Error("route discovery failed", slog.String("error", err.Error()))
		return
	}

	for _, scope := range tree.Scopes {
		if len(cfg.registry.middleware[scope.Dir]) == 0 {
			a.logger.Warn("middleware scope has no registered handlers, skipping",
				slog.String("dir", scope.Dir),
			)
		}
	}

	for _, entry := range tree.Entries {
		scopes := routetree.ScopesFor(entry.FilePath, tree.Scopes)
		var chain []Middleware
		for _, scope := range scopes {
			chain = append(chain, cfg.registry.middleware[scope.Dir]...)
		}

		switch {
		case strings.HasSuffix(entry.FilePath, ".md"):
			a.registerRoute(http.MethodGet, entry.Pattern, a.markdownHandler(entry.FilePath), chain)

		case hasPage(cfg.registry, entry.FilePath):
			def := cfg.registry.pages[entry.FilePath]
			a.registerRoute(http.MethodGet, entry.Pattern, a.pageHandler(def), chain)

		case len(cfg.registry.apis[entry.FilePath]) > 0:
			for method, h := range cfg.registry.apis[entry.FilePath] {
				a.registerRoute(method, entry.Pattern, h, chain)
			}

		default:
			a.logger.Warn("route file has no registered handler, skipping",
				slog.String("file", entry.FilePath),
				slog.String("pattern", entry.Pattern),
			)
		}
	}
}

func hasPage(r *Registry, filePath string) bool {
	_, ok := r.pages[filePath]
	return ok
}

func (a *App) registerRoute(method, pattern string, h HandlerFunc, chain []Middleware) {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	a.router.Method(method, pattern, a.wrapHandler(h))
}

// pageHandler runs the page's loader, renders its component, and embeds
// the loader output as the hydration payload.
func (a *App) pageHandler(def PageDef) HandlerFunc {
	cfg := a.fsRoutes

	return func(c Context) error {
		var data any
		if def.Loader != nil {
			loaded, err := def.Loader(c)
			if err != nil {
				return err
			}
			data = loaded
		}

		body := joinComponents(
			def.Render(c, data),
			ui.HydrationData(cfg.hydrationID, data),
		)

		return c.Render(http.StatusOK, a.wrapLayout(def.Title, body))
	}
}

// markdownHandler renders a .md content file, optionally through the
// page cache. Draft documents return 404.
func (a *App) markdownHandler(filePath string) HandlerFunc {
	cfg := a.fsRoutes

	render := func(ctx context.Context) (string, time.Duration, error) {
		source, err := fs.ReadFile(cfg.fsys, filePath)
		if err != nil {
			return "", 0, err
		}

		renderer := cfg.renderer
		if renderer == nil {
			renderer = markdown.New()
		}

		doc, err := renderer.Render(source)
		if err != nil {
			return "", 0, err
		}
		if doc.Meta.Draft {
			return "", 0, errDraftPage
		}

		var sb strings.Builder
		page := a.wrapLayout(doc.Meta.Title, rawHTML(doc.HTML))
		if err := page.Render(ctx, &sb); err != nil {
			return "", 0, err
		}
		return sb.String(), cfg.cacheTTL, nil
	}

	return func(c Context) error {
		var html string
		var err error
		if cfg.pageCache != nil {
			html, err = cache.GetOrLoad(c.Context(), cfg.pageCache, filePath, render)
		} else {
			html, _, err = render(c.Context())
		}
		if err != nil {
			if errors.Is(err, errDraftPage) {
				return ErrNotFound("page not found")
			}
			return err
		}

		return c.Render(http.StatusOK, rawHTML(html))
	}
}

func (a *App) wrapLayout(title string, body Component) Component {
	if a.fsRoutes.layout != nil {
		return a.fsRoutes.layout(title, body)
	}
	return ui.Layout(title, nil, body)
}

var errDraftPage = errors.New("draft pages are not served")

// joinComponents renders components in sequence.
func joinComponents(components ...Component) Component {
	return componentFunc(func(ctx context.Context, w io.Writer) error {
		for _, comp := range components {
			if comp == nil {
				continue
			}
			if err := comp.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// rawHTML emits pre-sanitized HTML unchanged.
func rawHTML(html string) Component {
	return componentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

type componentFunc func(ctx context.Context, w io.Writer) error

func (f componentFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}
