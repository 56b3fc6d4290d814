package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrInvalidName is returned for object names that could escape the media root.
var ErrInvalidName = errors.New("storage: invalid object name")

// Backend stores uploaded media and returns the URL clients use to fetch it.
type Backend interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}

// cleanName accepts flat object names only.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name != path.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	return name, nil
}
