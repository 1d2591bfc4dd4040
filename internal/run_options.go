package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/loom/pkg/logger"
)

// runConfig holds server runtime configuration.
type runConfig struct {
	logger          *slog.Logger
	baseCtx         context.Context
	fallback        http.Handler
	domains         map[string]*App
	shutdownTimeout time.Duration
	startupHooks    []func(ctx context.Context) error
	shutdownHooks   []func(ctx context.Context) error
}

// RunOption configures server runtime behavior.
type RunOption func(*runConfig)

func buildRunConfig(opts ...RunOption) runConfig {
	cfg := runConfig{
		logger:          logger.NewNop(),
		baseCtx:         context.Background(),
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithRunLogger sets the logger for server lifecycle events.
func WithRunLogger(l *slog.Logger) RunOption {
	return func(cfg *runConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithShutdownTimeout sets how long graceful shutdown may take before
// in-flight requests are dropped.
func WithShutdownTimeout(d time.Duration) RunOption {
	return func(cfg *runConfig) {
		if d > 0 {
			cfg.shutdownTimeout = d
		}
	}
}

// WithStartupHook runs fn after the listener is bound, before the server
// starts accepting requests. A hook error aborts startup.
//
// Example:
//
//	loom.WithStartupHook(func(ctx context.Context) error {
//	    return db.Migrate(ctx, pool, migrationsFS, "", log)
//	})
func WithStartupHook(fn func(ctx context.Context) error) RunOption {
	return func(cfg *runConfig) {
		if fn != nil {
			cfg.startupHooks = append(cfg.startupHooks, fn)
		}
	}
}

// WithShutdownHook runs fn during graceful shutdown, after the server
// stops accepting requests. Hooks run in registration order.
//
// Example:
//
//	loom.WithShutdownHook(func(ctx context.Context) error {
//	    return db.Shutdown(pool)(ctx)
//	})
func WithShutdownHook(fn func(ctx context.Context) error) RunOption {
	return func(cfg *runConfig) {
		if fn != nil {
			cfg.shutdownHooks = append(cfg.shutdownHooks, fn)
		}
	}
}

// WithContext sets the base context. Server shutdown begins when it is
// canceled, in addition to SIGINT and SIGTERM.
func WithContext(ctx context.Context) RunOption {
	return func(cfg *runConfig) {
		if ctx != nil {
			cfg.baseCtx = ctx
		}
	}
}

// WithDomain routes requests for a host pattern to the given app.
// Patterns support a leading wildcard, e.g. "*.example.com".
func WithDomain(pattern string, app *App) RunOption {
	return func(cfg *runConfig) {
		if cfg.domains == nil {
			cfg.domains = make(map[string]*App)
		}
		cfg.domains[pattern] = app
	}
}

// WithFallback sets the handler for hosts no domain pattern matches.
// The default responds with 404.
func WithFallback(h http.Handler) RunOption {
	return func(cfg *runConfig) {
		if h != nil {
			cfg.fallback = h
		}
	}
}
