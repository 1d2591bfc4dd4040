package middlewares

import (
	"context"
	"time"

	"github.com/dmitrymomot/loom/internal"
)

// DefaultTimeout is used when the configured timeout is not positive.
const DefaultTimeout = 30 * time.Second

// timeoutContextKey stores the deadline-bound context for handlers.
type timeoutContextKey struct{}

// Timeout returns middleware that enforces a per-request deadline.
// Handlers that run past it produce a TimeoutError for the global error
// handler; the handler goroutine itself keeps running, so long
// operations should watch GetTimeoutContext(c).Done().
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					c.LogWarn("request timeout", "timeout", timeout.String())
					return &TimeoutError{Duration: timeout}
				}
				return ctx.Err()
			}
		}
	}
}

// GetTimeoutContext returns the deadline-bound context set by Timeout,
// or the request context when the middleware is not applied.
func GetTimeoutContext(c internal.Context) context.Context {
	if v, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return v
	}
	return c.Context()
}
