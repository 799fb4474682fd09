// Package cache stores rendered artifacts and fetched source images.
//
// # Overview
//
// A quadart render is deterministic: the same input bytes under the same
// options always produce the same artifact. The pipeline keys artifacts by
// the input hash plus every option that affects output, so repeated renders
// (from the CLI or the HTTP API) skip decomposition entirely.
//
// Backends:
//   - [FileCache]: local directory, zstd-compressed entries (CLI default)
//   - [RedisCache]: shared cache for `quadart serve` replicas
//   - [NullCache]: disables caching (--no-cache)
//
// Keys come from a [Keyer]; [ScopedKeyer] adds a prefix so several
// deployments can share one Redis.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// ArtifactTTL is how long rendered artifacts are kept.
	ArtifactTTL = 7 * 24 * time.Hour

	// SourceTTL is how long images fetched from URLs are kept.
	SourceTTL = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
//
// Get returns (nil, false, nil) on a miss. A ttl of zero or less means
// the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
