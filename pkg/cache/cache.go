// Package cache stores rendered artifacts.
//
// A [Cache] is a flat byte store with per-entry expiry. The CLI uses a
// [FileCache] under $XDG_CACHE_HOME; the HTTP server can share a
// [RedisCache] or [MongoCache] between instances. [NullCache] disables
// caching.
//
// Keys are produced by a [Keyer] so every entry point derives the same key
// from the same inputs:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(strokesHash, cache.ArtifactKeyOpts{Format: "svg"})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with expiring entries.
//
// Get reports a miss with hit=false and a nil error; errors are reserved
// for backend failures. A zero ttl passed to Set means the entry does not
// expire.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	// TTLArtifact applies to rendered files.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLStoredRender applies to renders stored through the HTTP API.
	TTLStoredRender = 24 * time.Hour
)
