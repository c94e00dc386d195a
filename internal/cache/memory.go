package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache with TTL expiry.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL and janitor
// interval.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{cache: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	if val, found := m.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.cache.Set(key, value, ttl)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *Memory) Clear() error {
	m.cache.Flush()
	return nil
}
