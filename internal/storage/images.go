// Package storage persists uploaded product images on the local filesystem.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalImageStore writes images under a root directory and serves them back
// through the /uploads static route.
type LocalImageStore struct {
	dir string
}

func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalImageStore{dir: dir}, nil
}

// Save writes data to a fresh uuid-named file and returns its public path.
// Empty data yields an empty path, not an error.
func (s *LocalImageStore) Save(data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if ext == "" {
		ext = ".jpg"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	filename := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	return "/uploads/" + filename, nil
}

// Delete removes a previously saved image. Missing files and empty paths are
// ignored so callers can treat it as best-effort cleanup.
func (s *LocalImageStore) Delete(publicPath string) error {
	if publicPath == "" {
		return nil
	}
	full := filepath.Join(s.dir, filepath.Base(publicPath))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
