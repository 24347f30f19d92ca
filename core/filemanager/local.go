package filemanager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Local stores project files in a directory of an afero filesystem.
type Local struct {
	fs   afero.Fs
	root string
}

// NewLocal creates a local backend rooted at root.
func NewLocal(fs afero.Fs, root string) *Local {
	return &Local{fs: fs, root: root}
}

func (l *Local) abs(path string) (string, error) {
	clean, err := Clean(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.root, filepath.FromSlash(clean)), nil
}

func (l *Local) Exists(_ context.Context, path string) (bool, error) {
	target, err := l.abs(path)
	if err != nil {
		return false, err
	}
	ok, err := afero.Exists(l.fs, target)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return ok, nil
}

func (l *Local) Read(_ context.Context, path string) ([]byte, error) {
	target, err := l.abs(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(l.fs, target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (l *Local) Write(ctx context.Context, path string, content []byte, _ string) (bool, error) {
	current, err := l.Read(ctx, path)
	if err == nil && bytes.Equal(current, content) {
		return false, nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false, err
	}

	target, err := l.abs(path)
	if err != nil {
		return false, err
	}
	if err := l.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(l.fs, target, content, 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

func (l *Local) Delete(ctx context.Context, path string, _ string) (bool, error) {
	ok, err := l.Exists(ctx, path)
	if err != nil || !ok {
		return false, err
	}
	target, err := l.abs(path)
	if err != nil {
		return false, err
	}
	if err := l.fs.Remove(target); err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return true, nil
}
