package logger

import (
	"io"
	"log/slog"
)

// NewNop creates a logger that discards all output.
// Use this as the default when logging is not configured.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
