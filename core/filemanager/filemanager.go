package filemanager

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"persistence-setup/core/storage"

	"github.com/spf13/afero"
)

// ErrNotFound is returned by Read when the file does not exist.
var ErrNotFound = errors.New("file not found")

// ErrOutsideRoot is returned for paths that resolve outside the project root.
var ErrOutsideRoot = errors.New("path outside project root")

// FileManager reads and writes project files addressed by slash-separated
// paths relative to the project root.
type FileManager interface {
	// Exists reports whether the file is present.
	Exists(ctx context.Context, path string) (bool, error)

	// Read returns the file content, or ErrNotFound.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write creates or updates the file. Nothing is written when the
	// stored content already equals content; the result reports whether
	// a physical write happened.
	Write(ctx context.Context, path string, content []byte, description string) (bool, error)

	// Delete removes the file if present and reports whether it existed.
	Delete(ctx context.Context, path string, reason string) (bool, error)
}

// New builds the backend selected by cfg.
// fs is used by the local backend and client/bucket by the storage backend.
func New(ctx context.Context, cfg Config, fs afero.Fs, client storage.Client, bucket string) (FileManager, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		if fs == nil {
			fs = afero.NewOsFs()
		}
		return NewLocal(fs, cfg.Root), nil
	case BackendStorage:
		if client == nil {
			return nil, fmt.Errorf("storage backend requires a storage client")
		}
		store := NewObjectStore(client, bucket, cfg.Prefix)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown file backend %q", cfg.Backend)
	}
}

// Clean normalizes a project-relative path and rejects absolute paths and
// paths that climb above the project root.
func Clean(p string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%s: %w", p, ErrOutsideRoot)
	}
	return clean, nil
}
