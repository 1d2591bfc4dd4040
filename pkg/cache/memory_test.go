package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/cache"
)

func TestMemoryBasics(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string]()
	t.Cleanup(func() { _ = c.Close() })

	ctx := t.Context()

	require.NoError(t, c.Set(ctx, "a", "alpha", time.Minute))

	got, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "alpha", got)

	ok, err := c.Has(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, c.Delete(ctx, "a"))
	_, err = c.Get(ctx, "a")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestMemoryExpiration(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[int](cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = c.Close() })

	ctx := t.Context()

	require.NoError(t, c.Set(ctx, "short", 1, 10*time.Millisecond))
	require.NoError(t, c.Set(ctx, "forever", 2, -1))

	time.Sleep(20 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	require.ErrorIs(t, err, cache.ErrNotFound)

	got, err := c.Get(ctx, "forever")
	require.NoError(t, err)
	require.Equal(t, 2, got)
}

func TestMemoryLRUEviction(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[int](cache.WithCapacity(2))
	t.Cleanup(func() { _ = c.Close() })

	ctx := t.Context()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))

	// Touch "a" so "b" becomes the eviction candidate.
	_, err := c.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "c", 3, time.Minute))

	_, err = c.Get(ctx, "b")
	require.ErrorIs(t, err, cache.ErrNotFound)

	got, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestMemoryClosed(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string]()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	require.ErrorIs(t, c.Set(t.Context(), "a", "x", 0), cache.ErrClosed)
	require.ErrorIs(t, c.Delete(t.Context(), "a"), cache.ErrClosed)
	require.ErrorIs(t, c.Clear(t.Context()), cache.ErrClosed)
}

func TestGetOrLoad(t *testing.T) {
	t.Parallel()

	t.Run("caches loaded value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		t.Cleanup(func() { _ = c.Close() })

		var calls atomic.Int32
		load := func(ctx context.Context) (string, time.Duration, error) {
			calls.Add(1)
			return "value", time.Minute, nil
		}

		got, err := cache.GetOrLoad(t.Context(), c, "k", load)
		require.NoError(t, err)
		require.Equal(t, "value", got)

		got, err = cache.GetOrLoad(t.Context(), c, "k", load)
		require.NoError(t, err)
		require.Equal(t, "value", got)
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("error is not cached", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		t.Cleanup(func() { _ = c.Close() })

		boom := errors.New("load failed")
		_, err := cache.GetOrLoad(t.Context(), c, "k", func(ctx context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)

		ok, err := c.Has(t.Context(), "k")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("concurrent misses share one load", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		t.Cleanup(func() { _ = c.Close() })

		var calls atomic.Int32
		release := make(chan struct{})
		load := func(ctx context.Context) (int, time.Duration, error) {
			calls.Add(1)
			<-release
			return 42, time.Minute, nil
		}

		var wg sync.WaitGroup
		results := make([]int, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v, err := cache.GetOrLoad(t.Context(), c, "shared", load)
				require.NoError(t, err)
				results[i] = v
			}(i)
		}

		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		require.Equal(t, int32(1), calls.Load())
		for _, v := range results {
			require.Equal(t, 42, v)
		}
	})
}
