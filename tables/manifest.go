package tables

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Manifest describes one complete export. It is written after every
// table file succeeded, so a missing or stale manifest marks an export
// directory whose files may not belong to the same run.
type Manifest struct {
	RunID       string         `json:"run_id"`
	Tool        string         `json:"tool"`
	Source      string         `json:"source"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	Files       []ManifestFile `json:"files"`
}

// ManifestFile is one exported file and its row count.
type ManifestFile struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Rows   int    `json:"rows"`
}

// Rows returns the row count recorded for name, or -1.
func (m *Manifest) Rows(name string) int {
	for _, f := range m.Files {
		if f.Name == name {
			return f.Rows
		}
	}
	return -1
}

// WriteManifest writes dir/manifest.json.
func WriteManifest(dir string, m *Manifest) error {
	return WriteManifestFile(filepath.Join(dir, ManifestFileName), m)
}

func WriteManifestFile(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads dir/manifest.json.
func ReadManifest(dir string) (*Manifest, error) {
	return ReadManifestFile(filepath.Join(dir, ManifestFileName))
}

func ReadManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// RemoveManifestFile deletes the manifest at path if there is one. Exports
// call it before touching any table so a failed run never leaves the
// previous run's manifest next to partly rewritten files.
func RemoveManifestFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove stale manifest: %w", err)
	}
	return nil
}
