// Package objectstore provides the staged-file store used by imports.
// Local keeps objects under a base directory on disk; the interface
// mirrors the hosted bucket API (upload, download, public URL,
// remove) so a remote implementation can replace it.
package objectstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Local struct {
	baseDir string
	baseURL string
}

func NewLocal(baseDir, baseURL string) *Local {
	if baseDir == "" {
		baseDir = "."
	}
	return &Local{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *Local) Upload(ctx context.Context, path string, data []byte) error {
	_ = ctx

	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write object %s: %w", path, err)
	}
	return nil
}

func (s *Local) Download(ctx context.Context, path string) ([]byte, error) {
	_ = ctx

	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", path, err)
	}
	return data, nil
}

func (s *Local) PublicURL(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Remove deletes the given objects; missing objects are not an error.
func (s *Local) Remove(ctx context.Context, paths ...string) error {
	_ = ctx

	for _, path := range paths {
		full, err := s.resolve(path)
		if err != nil {
			return err
		}
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove object %s: %w", path, err)
		}
	}
	return nil
}

func (s *Local) resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.baseDir, clean), nil
}
