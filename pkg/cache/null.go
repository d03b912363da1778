package cache

import (
	"context"
	"time"
)

// NullCache stores nothing, so every lookup misses and every artifact is
// drawn again. The CLI falls back to it for --no-cache, for a disabled
// cache in the config file and when no cache directory can be resolved.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a cache that never hits.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
