package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskStore persists reports under a directory, one file per key.
// Expiry is judged from the file's modification time, so entries
// survive restarts without any index.
type DiskStore struct {
	dir string
	ttl time.Duration
}

// NewDiskStore creates a disk store rooted at dir
func NewDiskStore(dir string, ttl time.Duration) *DiskStore {
	return &DiskStore{dir: dir, ttl: ttl}
}

// Get retrieves a cached report, discarding it when expired
func (s *DiskStore) Get(key string) ([]byte, bool) {
	path := s.path(key)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if s.ttl > 0 && time.Since(info.ModTime()) > s.ttl {
		_ = os.Remove(path)
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a report. The per-call TTL is ignored: the store-wide TTL
// applies from each write's modification time.
func (s *DiskStore) Set(key string, value []byte, _ time.Duration) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(s.path(key), value, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// Delete removes one entry
func (s *DiskStore) Delete(key string) error {
	return os.Remove(s.path(key))
}

// Clear removes the whole cache directory
func (s *DiskStore) Clear() error {
	return os.RemoveAll(s.dir)
}

// path maps a key to a file name. Keys contain ':' which some
// filesystems reject, so they are flattened.
func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, strings.ReplaceAll(key, ":", "_")+".report")
}
