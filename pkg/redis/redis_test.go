package redis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/redis"
)

func TestConnectValidation(t *testing.T) {
	t.Parallel()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Connect(t.Context(), redis.Config{})
		require.ErrorIs(t, err, redis.ErrEmptyURL)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Connect(t.Context(), redis.Config{URL: "http://localhost:6379"})
		require.ErrorIs(t, err, redis.ErrParseURL)
	})

	t.Run("malformed URL", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Connect(t.Context(), redis.Config{URL: "redis://invalid:port:extra"})
		require.ErrorIs(t, err, redis.ErrParseURL)
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()

		cfg := redis.Config{
			URL:           "redis://127.0.0.1:1",
			RetryAttempts: 1,
			RetryInterval: 10 * time.Millisecond,
			DialTimeout:   50 * time.Millisecond,
		}
		_, err := redis.Connect(t.Context(), cfg)
		require.ErrorIs(t, err, redis.ErrConnectFailed)
	})
}

func TestHealthcheckNilClient(t *testing.T) {
	t.Parallel()

	check := redis.Healthcheck(nil)
	require.ErrorIs(t, check(t.Context()), redis.ErrHealthcheck)
}
