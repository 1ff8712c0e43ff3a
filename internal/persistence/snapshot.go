package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"garderobe/internal/models"
)

// Snapshot mirrors wardrobe state to durable local storage: written
// through on every mutation, read once at startup. Round-trip fidelity is
// the only contract; the on-disk encoding is not.
type Snapshot interface {
	// Load returns the stored state, or nil when nothing has been
	// persisted yet (first launch).
	Load() (*models.Snapshot, error)
	Save(state *models.Snapshot) error
}

// FileSnapshot stores the state as a single JSON file.
type FileSnapshot struct {
	path string
}

// NewFileSnapshot creates a snapshot adapter backed by the given file.
func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{path: path}
}

// Ensure FileSnapshot implements Snapshot
var _ Snapshot = (*FileSnapshot)(nil)

// Load reads and decodes the snapshot file.
func (f *FileSnapshot) Load() (*models.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var state models.Snapshot
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &state, nil
}

// Save writes the state to a temp file and renames it into place, so a
// crash mid-write never leaves a truncated snapshot behind.
func (f *FileSnapshot) Save(state *models.Snapshot) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
