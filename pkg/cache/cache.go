// Package cache provides the validation report cache shared by the CLI and
// the API server. A report for a given layout and policy is immutable, so
// cached entries never need invalidation beyond their TTL; the key is a
// content hash of both inputs.
//
// Three backends are provided: a file cache for CLI usage, a Redis cache for
// server deployments, and a null cache for disabling caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// errors are reserved for backend failures. A ttl of zero in Set means the
// entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
