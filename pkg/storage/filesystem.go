package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage persists media on disk under a base directory that the HTTP
// server exposes under PublicPrefix.
type LocalStorage struct {
	baseDir      string
	publicPrefix string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir, publicPrefix string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if publicPrefix == "" {
		publicPrefix = "/media"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, publicPrefix: strings.TrimRight(publicPrefix, "/")}, nil
}

// Dir returns the directory served as static media.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

// PublicPrefix returns the URL prefix media is mounted under.
func (s *LocalStorage) PublicPrefix() string {
	return s.publicPrefix
}

// Put copies r into the named file and returns its public path. A partially
// written file is removed.
func (s *LocalStorage) Put(ctx context.Context, name, _ string, r io.Reader) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("prepare media directory: %w", err)
	}

	target := s.resolve(name)
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write media file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close media file: %w", err)
	}
	return s.publicPrefix + "/" + name, nil
}

// Open returns a read-only handle for a stored file.
func (s *LocalStorage) Open(name string) (*os.File, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(s.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("open media file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file if present.
func (s *LocalStorage) Delete(_ context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(s.resolve(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

func (s *LocalStorage) resolve(name string) string {
	return filepath.Join(s.baseDir, name)
}
