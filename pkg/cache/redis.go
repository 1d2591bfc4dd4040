package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOption configures the Redis-backed cache.
type RedisOption func(*redisSettings)

type redisSettings struct {
	prefix     string
	defaultTTL time.Duration
}

// WithKeyPrefix namespaces keys as "{prefix}:{key}" so multiple caches
// can share one Redis database.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *redisSettings) {
		s.prefix = prefix
	}
}

// WithRedisDefaultTTL sets the TTL applied when Set is called with zero.
// Default is one hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(s *redisSettings) {
		s.defaultTTL = d
	}
}

// Redis is a cache backed by a Redis client, serializing values with the
// given Codec. A nil codec falls back to JSON.
type Redis[V any] struct {
	client   redis.UniversalClient
	codec    Codec[V]
	settings redisSettings
}

// NewRedis creates a Redis-backed cache.
func NewRedis[V any](client redis.UniversalClient, codec Codec[V], opts ...RedisOption) *Redis[V] {
	s := redisSettings{defaultTTL: time.Hour}
	for _, opt := range opts {
		opt(&s)
	}
	if codec == nil {
		codec = jsonCodec[V]{}
	}
	return &Redis[V]{client: client, codec: codec, settings: s}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return r.codec.Decode(data)
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.codec.Encode(value)
	if err != nil {
		return err
	}

	if ttl == 0 {
		ttl = r.settings.defaultTTL
	}
	// Negative TTL means never expire, which Redis spells as zero.
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *Redis[V]) Has(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear removes all entries. With a prefix it uses SCAN to avoid
// blocking the server; without one it flushes the whole database.
func (r *Redis[V]) Clear(ctx context.Context) error {
	if r.settings.prefix == "" {
		return r.client.FlushDB(ctx).Err()
	}

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.settings.prefix+":*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if cursor = next; cursor == 0 {
			return nil
		}
	}
}

// Close is a no-op. The client lifecycle belongs to the caller.
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) key(k string) string {
	if r.settings.prefix == "" {
		return k
	}
	return r.settings.prefix + ":" + k
}

var _ Cache[any] = (*Redis[any])(nil)
