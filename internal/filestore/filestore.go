// Package filestore persists planner collections as one JSON file per key.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Ext is appended to every key to form its file name.
const Ext = ".json"

// Dir stores blobs as files inside a single directory.
type Dir struct {
	path string
	mu   sync.RWMutex
}

// New creates a store rooted at path. The directory is created lazily on
// the first Save.
func New(path string) *Dir {
	return &Dir{path: path}
}

// Path returns the root directory.
func (d *Dir) Path() string {
	return d.path
}

// FileFor returns the file that backs key.
func (d *Dir) FileFor(key string) string {
	return filepath.Join(d.path, key+Ext)
}

// Load reads the blob stored under key. A missing file reports false
// with no error.
func (d *Dir) Load(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	data, err := os.ReadFile(d.FileFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Save writes the blob atomically: temp file, then rename.
func (d *Dir) Save(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(d.path, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	target := d.FileFor(key)
	tmpPath := target + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// Keys lists the keys that currently have a file.
func (d *Dir) Keys() ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entries, err := os.ReadDir(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Ext) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, Ext))
	}
	return keys, nil
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("invalid blob key %q", key)
	}
	return nil
}
