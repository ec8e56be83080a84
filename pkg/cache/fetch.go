package cache

import (
	"context"
	"time"

	"github.com/matzehuels/nameplate/pkg/observability"
)

// Fetch returns the entry under key, or calls produce, stores its result
// with ttl and returns it. kind names the artifact for the cache hooks.
// A failing cache read is treated as a miss and a failing write is
// ignored; only produce errors are returned.
func Fetch(ctx context.Context, c Cache, key, kind string, ttl time.Duration, produce func() ([]byte, error)) ([]byte, error) {
	hooks := observability.Cache()
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, kind)
		return data, nil
	}
	hooks.OnCacheMiss(ctx, kind)

	data, err := produce()
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, data, ttl); err == nil {
		hooks.OnCacheSet(ctx, kind, len(data))
	}
	return data, nil
}
