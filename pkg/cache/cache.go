// Package cache stores decoded lockfiles so repeated runs against an
// unchanged file skip YAML decoding.
//
// Entries are keyed by a hash of the lockfile content, so an edited lockfile
// can never be served from a stale entry. Three backends are provided:
//
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: a shared redis instance (useful in CI fleets)
//   - [NullCache]: caching disabled
//
// Cache failures are never fatal to an analysis; callers log and continue.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a decoded lockfile stays cached.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the cached bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LockfileKey returns the key for a decoded lockfile of the given format
	// and raw content.
	LockfileKey(format string, content []byte) string
}

// SchemaVersion is bumped whenever the cached document layout changes so
// old entries are ignored rather than misread.
const SchemaVersion = 1

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LockfileKey returns "lockfile:v<schema>:<format>:<content hash>".
func (DefaultKeyer) LockfileKey(format string, content []byte) string {
	return hashKey("lockfile", SchemaVersion, format, ContentHash(content))
}
