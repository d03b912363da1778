// Package cache stores rendered chart and deck artifacts between runs.
//
// Rendering a deck rasterizes seven 1280×720 slides and encodes a PDF, which
// is slow enough to be worth skipping when neither the study nor the render
// options changed. Keys are derived by a [Keyer] from a hash of the chart
// payload plus every option that affects the output, so a cache hit is
// always byte-identical to a fresh render.
//
// Two implementations are provided: [FileCache] for the CLI and [NullCache]
// when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the stored data and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// DefaultTTL is how long rendered artifacts stay cached.
const DefaultTTL = 7 * 24 * time.Hour
