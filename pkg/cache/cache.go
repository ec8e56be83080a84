// Package cache stores rendered board artifacts (PNG, PDF, graphviz
// output) keyed by a hash of the board and the render options, so that
// repeated renders of an unchanged board skip the external converters.
//
// Backends:
//   - [FileCache]: one raw file per key under the user cache directory,
//     used by the CLI
//   - [RedisCache]: shared cache for `nameplate serve`, enabled by
//     serve.redis_url
//   - [NullCache]: disables caching (--no-cache)
//
// Keys come from a [Keyer]; [ScopedKeyer] namespaces them per board.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the data stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}
