package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/logger"
)

type ctxKey struct{}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, nil)

	extractor := func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := ctx.Value(ctxKey{}).(string); ok {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}

	log := slog.New(logger.NewHandler(handler, extractor))

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-42")
	log.InfoContext(ctx, "hello")
	require.Contains(t, buf.String(), `"request_id":"req-42"`)

	buf.Reset()
	log.InfoContext(context.Background(), "no id")
	require.NotContains(t, buf.String(), "request_id")
}

func TestNilExtractorsDropped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(logger.NewHandler(slog.NewTextHandler(&buf, nil), nil, nil))

	require.NotPanics(t, func() {
		log.Info("works")
	})
	require.Contains(t, buf.String(), "works")
}

func TestNewNop(t *testing.T) {
	t.Parallel()

	log := logger.NewNop()
	require.NotNil(t, log)
	log.Error("discarded")
}
