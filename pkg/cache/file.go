package cache

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores entries on disk for CLI runs. Keys produced by the
// [Keyer] carry a stage prefix ("geometry:", "scene:", "http:"), and each
// stage gets its own subdirectory, so a stale scene build can be cleared
// without throwing away the expensive geometry responses next to it.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk envelope around cached bytes. The stage and
// stored-at fields exist for inspection; expiry is the only one Get acts on.
type fileEntry struct {
	Stage     string    `json:"stage"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Data      []byte    `json:"data"`
}

// Get retrieves a value. Unreadable and expired entries are deleted and
// reported as misses so a corrupted file never poisons a pipeline run.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores a value. A ttl of 0 stores the entry without expiration.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	stage, _ := splitStage(key)
	entry := fileEntry{
		Stage:    stage,
		StoredAt: time.Now(),
		Data:     data,
	}
	if ttl > 0 {
		entry.ExpiresAt = entry.StoredAt.Add(ttl)
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}

// Delete removes a value. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for a file cache.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to <dir>/<stage>/<hh>/<ash...>.json, where hh is a
// two-character fan-out so one stage does not pile thousands of files into
// a single directory.
func (c *FileCache) path(key string) string {
	stage, rest := splitStage(key)
	hash := Hash([]byte(rest))
	return filepath.Join(c.dir, stage, hash[:2], hash[2:]+".json")
}

// splitStage separates a key's stage prefix from its hashed remainder. Keys
// without a prefix land in a catch-all stage.
func splitStage(key string) (stage, rest string) {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i], key[i+1:]
	}
	return "misc", key
}

// ClearDir removes every cache entry under dir and reports how many entries
// each stage held. The root directory itself is kept; a missing directory
// counts as an already-empty cache.
func ClearDir(dir string) (map[string]int, error) {
	stages, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	removed := make(map[string]int)
	for _, s := range stages {
		name := s.Name()
		path := filepath.Join(dir, name)
		if !s.IsDir() {
			if os.Remove(path) == nil {
				removed["misc"]++
			}
			continue
		}
		count := 0
		_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err == nil && !d.IsDir() && os.Remove(p) == nil {
				count++
			}
			return nil
		})
		if err := os.RemoveAll(path); err != nil {
			return removed, err
		}
		if count > 0 {
			removed[name] += count
		}
	}
	return removed, nil
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
