package cache

import (
	"context"
	"time"
)

// NullCache backs the "none" cache backend: options and artifacts are
// rebuilt on every request and layouts posted to the server are not kept.
type NullCache struct{}

// NewNullCache returns the cache used when caching is switched off.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get reports a miss for every key.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards data.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
