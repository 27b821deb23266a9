// Package cache provides artifact caching for rendered templates and
// guides. The CLI uses a file-based cache under the XDG cache dir; the
// preview server can use Redis instead so multiple instances share
// rendered artifacts.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with optional TTL expiration.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
