package filemanager

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Action describes what happened to a file.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Change is one effective file mutation.
type Change struct {
	Path        string `json:"path"`
	Action      Action `json:"action"`
	Description string `json:"description,omitempty"`
}

// Recorder wraps a FileManager for a single invocation and records every
// effective mutation. In dry-run mode writes and deletes are kept in an
// overlay so that later reads observe them while the backend stays untouched.
type Recorder struct {
	inner   FileManager
	dryRun  bool
	logger  *zap.Logger
	changes []Change
	overlay map[string][]byte
	deleted map[string]bool
}

// NewRecorder creates a recorder around inner.
func NewRecorder(inner FileManager, dryRun bool, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		inner:   inner,
		dryRun:  dryRun,
		logger:  logger,
		overlay: make(map[string][]byte),
		deleted: make(map[string]bool),
	}
}

// DryRun reports whether mutations are being withheld from the backend.
func (r *Recorder) DryRun() bool {
	return r.dryRun
}

// Changes returns the recorded mutations in order.
func (r *Recorder) Changes() []Change {
	return append([]Change(nil), r.changes...)
}

func (r *Recorder) Exists(ctx context.Context, path string) (bool, error) {
	if r.deleted[path] {
		return false, nil
	}
	if _, ok := r.overlay[path]; ok {
		return true, nil
	}
	return r.inner.Exists(ctx, path)
}

func (r *Recorder) Read(ctx context.Context, path string) ([]byte, error) {
	if r.deleted[path] {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if data, ok := r.overlay[path]; ok {
		return append([]byte(nil), data...), nil
	}
	return r.inner.Read(ctx, path)
}

func (r *Recorder) Write(ctx context.Context, path string, content []byte, description string) (bool, error) {
	if _, err := Clean(path); err != nil {
		return false, err
	}
	current, err := r.Read(ctx, path)
	existed := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false, err
	}
	if existed && bytes.Equal(current, content) {
		return false, nil
	}

	if r.dryRun {
		r.overlay[path] = append([]byte(nil), content...)
		delete(r.deleted, path)
	} else {
		written, err := r.inner.Write(ctx, path, content, description)
		if err != nil {
			return false, err
		}
		if !written {
			return false, nil
		}
	}

	action := ActionCreated
	if existed {
		action = ActionUpdated
	}
	r.record(Change{Path: path, Action: action, Description: description})
	return true, nil
}

func (r *Recorder) Delete(ctx context.Context, path string, reason string) (bool, error) {
	if _, err := Clean(path); err != nil {
		return false, err
	}
	ok, err := r.Exists(ctx, path)
	if err != nil || !ok {
		return false, err
	}

	if r.dryRun {
		r.deleted[path] = true
		delete(r.overlay, path)
	} else {
		deleted, err := r.inner.Delete(ctx, path, reason)
		if err != nil {
			return false, err
		}
		if !deleted {
			return false, nil
		}
	}

	r.record(Change{Path: path, Action: ActionDeleted, Description: reason})
	return true, nil
}

func (r *Recorder) record(c Change) {
	r.changes = append(r.changes, c)
	r.logger.Info("File changed",
		zap.String("path", c.Path),
		zap.String("action", string(c.Action)),
		zap.String("description", c.Description),
		zap.Bool("dry_run", r.dryRun))
}
