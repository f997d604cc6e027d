// Package cache persists the last known session artifact so a restarted
// process can silently recover its session. Storage only; no auth logic.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned by Load when no artifact is cached.
var ErrNotFound = errors.New("session artifact not found")

// Artifact is the cached token material from the last successful exchange.
type Artifact struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Cache stores at most one Artifact.
type Cache interface {
	Load() (*Artifact, error)
	Save(a *Artifact) error
	Clear() error
}

// FileCache stores the artifact as a JSON file with owner-only permissions.
type FileCache struct {
	Path string
}

// NewFileCache returns a FileCache writing to path. The parent directory is
// created on first Save.
func NewFileCache(path string) *FileCache {
	return &FileCache{Path: path}
}

// Load reads and decodes the cached artifact. Returns ErrNotFound when the
// file does not exist; a corrupt file is removed and reported as ErrNotFound
// so recovery degrades to a fresh login instead of failing startup.
func (c *FileCache) Load() (*Artifact, error) {
	b, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		_ = os.Remove(c.Path)
		return nil, ErrNotFound
	}
	if a.AccessToken == "" && a.RefreshToken == "" {
		return nil, ErrNotFound
	}
	return &a, nil
}

// Save encodes and writes the artifact, replacing any previous one.
func (c *FileCache) Save(a *Artifact) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Path, b, 0o600)
}

// Clear removes the cached artifact. Removing a missing file is not an error.
func (c *FileCache) Clear() error {
	err := os.Remove(c.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
