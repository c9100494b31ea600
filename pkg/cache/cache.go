// Package cache provides the content-addressed artifact cache used to skip
// re-rendering DOT files whose bytes have not changed. Keys are derived
// from the hash of the DOT content, so a stale entry can never be served
// for modified input.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"
)

// Cache stores rendered artifacts keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RenderKey builds the cache key for an SVG rendered from the given DOT
// bytes. The format version is baked in so a renderer change invalidates
// old entries.
func RenderKey(dot []byte) string {
	return "svg:v1:" + Hash(dot)
}

// DefaultDir returns the default cache directory, ~/.cache/graphmark.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "graphmark")
	}
	return filepath.Join(base, "graphmark")
}
