package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Disk is a persistent cache rooted at a directory; entries carry their own
// expiry so stale files self-evict on read.
type Disk struct {
	dir string
	ttl time.Duration
}

// NewDisk creates a disk cache. The directory is created lazily on first
// write.
func NewDisk(dir string, ttl time.Duration) *Disk {
	return &Disk{dir: dir, ttl: ttl}
}

type diskEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (d *Disk) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		return nil, false
	}
	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(d.path(key))
		return nil, false
	}
	return entry.Data, true
}

func (d *Disk) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = d.ttl
	}
	data, err := json.Marshal(diskEntry{Data: value, ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(d.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

func (d *Disk) Delete(key string) error {
	return os.Remove(d.path(key))
}

func (d *Disk) Clear() error {
	return os.RemoveAll(d.dir)
}

func (d *Disk) path(key string) string {
	return filepath.Join(d.dir, key+".cache")
}
