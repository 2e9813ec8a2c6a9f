package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"ai_content_generator/schema"
)

// ImageStore writes generated images under a single directory with unique
// per-run names, so concurrent runs never collide.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if dir == "" {
		return nil, errors.New("images directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images directory: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

func (s *ImageStore) Dir() string { return s.dir }

// Save writes a PNG as <platform>_<8-char id>.png and returns its path.
func (s *ImageStore) Save(platform schema.Platform, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("image data is empty")
	}
	filename := fmt.Sprintf("%s_%s.png", platform, uuid.New().String()[:8])
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
