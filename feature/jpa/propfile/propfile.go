package propfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"persistence-setup/core/filemanager"
	"persistence-setup/feature/jpa/templates"

	"github.com/magiconair/properties"
)

// Entry is one desired key/value pair.
type Entry struct {
	Key   string
	Value string
}

// Reconciler keeps tracked keys of properties files at their desired values.
type Reconciler struct {
	fm     filemanager.FileManager
	bundle *templates.Bundle
	now    func() time.Time
}

// New creates a Reconciler.
func New(fm filemanager.FileManager, bundle *templates.Bundle) *Reconciler {
	return &Reconciler{fm: fm, bundle: bundle, now: time.Now}
}

// Parse reads properties content without variable expansion.
func Parse(data []byte) (*properties.Properties, error) {
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties: %w", err)
	}
	return p, nil
}

// load reads path, falling back to the named template when the file is absent.
// An empty template name means an absent file yields empty properties.
func (r *Reconciler) load(ctx context.Context, path, template string) (*properties.Properties, bool, error) {
	data, err := r.fm.Read(ctx, path)
	if err == nil {
		p, err := Parse(data)
		if err != nil {
			return nil, true, fmt.Errorf("failed to load %s: %w", path, err)
		}
		return p, true, nil
	}
	if !errors.Is(err, filemanager.ErrNotFound) {
		return nil, false, err
	}
	if template == "" {
		p := properties.NewProperties()
		p.DisableExpansion = true
		return p, false, nil
	}
	if data, err = r.bundle.Get(template); err != nil {
		return nil, false, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %s: %w", template, err)
	}
	return p, false, nil
}

// Reconcile sets every desired entry in path and writes the file when any
// tracked value differs. Values are compared trimmed; an absent key always differs.
// Untracked keys are preserved.
func (r *Reconciler) Reconcile(ctx context.Context, path string, desired []Entry, template, description string) (bool, error) {
	p, _, err := r.load(ctx, path, template)
	if err != nil {
		return false, err
	}

	changed := false
	for _, e := range desired {
		current, ok := p.Get(e.Key)
		if !ok || strings.TrimSpace(current) != strings.TrimSpace(e.Value) {
			changed = true
			break
		}
	}
	if !changed {
		return false, nil
	}

	for _, e := range desired {
		if _, _, err := p.Set(e.Key, e.Value); err != nil {
			return false, fmt.Errorf("failed to set %s in %s: %w", e.Key, path, err)
		}
	}
	return r.store(ctx, path, p, description)
}

func (r *Reconciler) store(ctx context.Context, path string, p *properties.Properties, description string) (bool, error) {
	// loaded comments include the previous header
	p.ClearComments()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#Updated at %s\n", r.now().Format(time.UnixDate))
	if _, err := p.Write(&buf, properties.UTF8); err != nil {
		return false, fmt.Errorf("failed to serialize %s: %w", path, err)
	}
	return r.fm.Write(ctx, path, buf.Bytes(), description)
}

// Entries returns the content of path as sorted "key = value" lines.
func (r *Reconciler) Entries(ctx context.Context, path string) ([]string, error) {
	data, err := r.fm.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	out := make([]string, 0, p.Len())
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		out = append(out, k+" = "+v)
	}
	sort.Strings(out)
	return out, nil
}
