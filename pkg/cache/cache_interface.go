package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer.
// Keeping it behind an interface allows swapping the implementation
// (Redis, in-memory fake for tests) without touching the services.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// Returns (found, error): on a cache miss dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error

	// Counter operations, used for rate limiting.
	Increment(ctx context.Context, key string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}
