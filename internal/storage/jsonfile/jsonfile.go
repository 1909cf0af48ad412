// Package jsonfile persists the gradebook as a single indented JSON document,
// the format of the historical data.json file.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studiowebux/gradebook/internal/storage"
	"github.com/studiowebux/gradebook/internal/types"
)

// Backend reads and writes one JSON file
type Backend struct {
	path string
}

// New returns a backend for path. The file does not need to exist yet.
func New(path string) *Backend {
	return &Backend{path: path}
}

// Path returns the data file location
func (b *Backend) Path() string {
	return b.path
}

// Load reads the data file. A missing file yields an empty snapshot.
func (b *Backend) Load() (types.Snapshot, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.NewSnapshot(), nil
		}
		return types.NewSnapshot(), storage.Wrap("read data file", err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return types.NewSnapshot(), storage.Wrap(fmt.Sprintf("parse %s", b.path), err)
	}
	snap.Normalize()
	return snap, nil
}

// Save overwrites the data file. The document is written to a temporary
// file in the same directory and renamed over the target, so a failed save
// leaves the previous file intact.
func (b *Backend) Save(snap types.Snapshot) error {
	snap.Normalize()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return storage.Wrap("encode snapshot", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return storage.Wrap("create data directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".data-*.json")
	if err != nil {
		return storage.Wrap("create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return storage.Wrap("write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return storage.Wrap("close temp file", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return storage.Wrap("chmod temp file", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return storage.Wrap("replace data file", err)
	}
	return nil
}

// Close is a no-op; the file is not held open between calls
func (b *Backend) Close() error {
	return nil
}
