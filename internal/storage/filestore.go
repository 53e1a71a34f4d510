// Package storage abstracts where processed upload files live. The image
// service only needs write, delete, and exists; path resolution stays with
// the caller.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore is the minimal file persistence interface the image pipeline
// consumes.
type FileStore interface {
	// Write persists data under the given filename and returns the full path.
	Write(filename string, data []byte) (string, error)
	// Delete removes the file. Returns false, nil when the file is already
	// absent; deletion is idempotent.
	Delete(filename string) (bool, error)
	// Exists reports whether the file is present.
	Exists(filename string) bool
}

// DiskStore stores files under a base directory on the local filesystem.
type DiskStore struct {
	baseDir string
}

// NewDiskStore creates a DiskStore rooted at baseDir.
func NewDiskStore(baseDir string) *DiskStore {
	return &DiskStore{baseDir: baseDir}
}

func (s *DiskStore) path(filename string) string {
	return filepath.Join(s.baseDir, filepath.Base(filename))
}

// Write persists data under the given filename and returns the full path.
func (s *DiskStore) Write(filename string, data []byte) (string, error) {
	path := s.path(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return path, nil
}

// Delete removes the file; removing an absent file reports false without
// an error.
func (s *DiskStore) Delete(filename string) (bool, error) {
	err := os.Remove(s.path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete %s: %w", filename, err)
	}
	return true, nil
}

// Exists reports whether the file is present.
func (s *DiskStore) Exists(filename string) bool {
	_, err := os.Stat(s.path(filename))
	return err == nil
}
