// Package logger builds slog loggers with per-request context attributes
// and optional Sentry forwarding.
//
// The context extractor mechanism lets request-scoped values (request ID,
// authenticated user) appear on every log line without threading them
// through call sites:
//
//	log := logger.New(
//	    logger.WithFormat("text"),
//	    logger.WithExtractors(func(ctx context.Context) (slog.Attr, bool) {
//	        if id, ok := ctx.Value(requestIDKey).(string); ok {
//	            return slog.String("request_id", id), true
//	        }
//	        return slog.Attr{}, false
//	    }),
//	)
package logger
