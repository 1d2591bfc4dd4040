package internal

import (
	"net/http"

	"github.com/dmitrymomot/loom/pkg/hostrouter"
)

// Run starts a server that dispatches by request host. Apps are mapped
// to domain patterns with WithDomain; hosts with no match go to the
// fallback handler.
//
// Example:
//
//	loom.Run(":8080",
//	    loom.WithDomain("example.com", site),
//	    loom.WithDomain("*.example.com", tenants),
//	    loom.WithRunLogger(log),
//	)
func Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	fallback := cfg.fallback
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}

	hr := hostrouter.New(fallback)
	for pattern, app := range cfg.domains {
		hr.Map(pattern, app.Router())
	}

	return runServer(runtimeConfig{
		handler:         hr,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}
