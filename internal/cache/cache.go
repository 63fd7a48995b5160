// Package cache persists content hashes of clean files between scans and the
// results of the last scan.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	fileName = "guardscancache.json"
	version  = 1
)

// DB maps a path relative to the scan root to the xxhash hex digest of the
// contents that last scanned clean: no findings and no fault. Files with
// findings or faults are never recorded, so they are scanned every time.
type DB struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

// storeDir prefers .git so the cache is never committed.
func storeDir(root string) (dir, prefix string) {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return gitDir, ""
	}
	return root, "."
}

func defaultPath(root string) string {
	dir, prefix := storeDir(root)
	return filepath.Join(dir, prefix+fileName)
}

// Load reads the cache for root. It always returns a usable DB; a stale
// version or unreadable file yields an empty one plus the error.
func Load(root string) (DB, error) {
	empty := DB{Version: version, Entries: map[string]string{}}
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return empty, err
	}
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return empty, fmt.Errorf("decode cache: %w", err)
	}
	if db.Version != version {
		return empty, fmt.Errorf("cache version %d, want %d", db.Version, version)
	}
	if db.Entries == nil {
		db.Entries = map[string]string{}
	}
	return db, nil
}

// Save writes db atomically next to the final location.
func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	db.Version = version
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(defaultPath(root), b)
}

func writeAtomic(p string, b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(p), filepath.Base(p)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}
