// Package loom is a convention-over-configuration web meta-framework.
//
// Loom glues a proven stack together behind file-based routing: chi for
// HTTP routing, the templ runtime for typed HTML components, pgx and
// goose for SQL, go-redis for caching, and OAuth + JWT for
// authentication. Route files on a filesystem map to URL patterns by
// convention, and _middleware markers scope middleware chains to
// directory subtrees.
//
// # Quick Start
//
// Point the app at a routes filesystem and bind handlers to route files
// through a registry:
//
//	//go:embed routes
//	var routesFS embed.FS
//
//	routes, _ := fs.Sub(routesFS, "routes")
//
//	reg := loom.NewRegistry().
//	    Page("pages/index.tsx", loom.PageDef{
//	        Title:  "Home",
//	        Loader: loadHome,
//	        Render: renderHome,
//	    }).
//	    API("api/users.ts", http.MethodGet, listUsers).
//	    Middleware("api", middlewares.JWT(tokens))
//
//	app := loom.New(
//	    loom.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    loom.WithFSRoutes(routes, reg),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Routing conventions
//
// File paths translate to URL patterns deterministically:
//
//	pages/index.tsx          -> /
//	pages/blog/[slug].tsx    -> /blog/{slug}
//	pages/docs/[...rest].tsx -> /docs/*
//	api/users.ts             -> /api/users
//	api/users/[id].ts        -> /api/users/{id}
//
// Markdown files under pages/ become content routes rendered through
// goldmark with YAML frontmatter; drafts return 404.
//
// A _middleware file declares a middleware scope for its directory and
// everything below it. Scopes apply outermost-first, root scope always
// included, and the chain for a route is independent of filesystem
// enumeration order.
//
// # Handlers
//
// Classic code-declared routes work alongside file-based ones through
// the [Handler] interface:
//
//	func (h *AccountHandler) Routes(r loom.Router) {
//	    r.GET("/account", h.show)
//	    r.POST("/account", h.update)
//	}
//
// # Shutdown
//
// The server handles SIGINT/SIGTERM for graceful shutdown. Register
// cleanup with WithShutdownHook and startup work (like migrations) with
// WithStartupHook.
package loom
