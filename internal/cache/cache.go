// Package cache stores fetched document bodies so repeated analyses of the
// same contract do not refetch it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store is the caching interface used by the fetcher.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a document source (URL or path).
func Key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return "termlens:v1:" + hex.EncodeToString(sum[:])
}
