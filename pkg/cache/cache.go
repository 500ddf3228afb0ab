// Package cache stores computed layouts, rendered artifacts and 3D scenes.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for multiple server instances
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// A [Keyer] derives keys from content hashes: layout keys hash the chip
// config plus placement options, artifact keys hash the serialized layout
// plus render options. Identical inputs therefore hit the cache no matter
// which front end produced them. [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLScene    = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
