package logger

import (
	"context"
	"log/slog"
	"os"
)

// ContextExtractor pulls a slog attribute out of a request context.
// Extractors run on every log call so request-scoped values stay fresh.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// Option configures the logger factory.
type Option func(*settings)

type settings struct {
	level      slog.Level
	format     string
	extractors []ContextExtractor
}

// WithLevel sets the minimum log level. Defaults to slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(s *settings) {
		s.level = level
	}
}

// WithFormat selects the output format, "json" or "text".
// Defaults to "json".
func WithFormat(format string) Option {
	return func(s *settings) {
		if format == "json" || format == "text" {
			s.format = format
		}
	}
}

// WithExtractors registers context extractors. Nil extractors are dropped.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) {
		for _, ex := range extractors {
			if ex != nil {
				s.extractors = append(s.extractors, ex)
			}
		}
	}
}

// New creates a stdout logger configured by the given options.
func New(opts ...Option) *slog.Logger {
	s := &settings{level: slog.LevelInfo, format: "json"}
	for _, opt := range opts {
		opt(s)
	}

	var handler slog.Handler
	if s.format == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: s.level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: s.level})
	}

	return slog.New(newContextHandler(handler, s.extractors))
}

// NewHandler wraps an existing slog.Handler with context extractors.
// Nil extractors are dropped.
func NewHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return newContextHandler(next, clean)
}

// contextHandler wraps a slog.Handler and injects context-extracted attributes
// on every log call.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func newContextHandler(next slog.Handler, extractors []ContextExtractor) slog.Handler {
	return &contextHandler{next: next, extractors: extractors}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
