// Package cache provides the storage layer behind crossflow's pipeline and
// HTTP service.
//
// Building an option is cheap, but the CLI and the server are called with the
// same counts over and over, and stored layouts must outlive a single request.
// Every stage output is therefore written through a [Cache] under a
// content-addressed key produced by a [Keyer]:
//
//	option:<sha256(counts, config)>      -> option JSON
//	artifact:<sha256(option, format)>    -> exported bytes (json, dot)
//	layout:<uuid>                        -> option JSON stored by the server
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled, tests)
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP service
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs per stage.
const (
	// TTLOption is the lifetime of a built option. Options are a pure function
	// of their inputs, so this only bounds disk usage.
	TTLOption = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of an exported artifact.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLLayout is the lifetime of a layout stored through the HTTP API.
	TTLLayout = 24 * time.Hour
)
