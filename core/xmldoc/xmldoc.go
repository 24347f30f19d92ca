package xmldoc

import (
	"context"
	"errors"
	"fmt"

	"persistence-setup/core/filemanager"

	"github.com/beevik/etree"
)

// IndentSpaces is the indentation used for every written document.
const IndentSpaces = 4

// ErrMissingElement is returned when an element the document must contain is absent.
var ErrMissingElement = errors.New("missing expected element")

// Document is a parsed XML document that remembers its canonical form at load time.
type Document struct {
	*etree.Document

	// Existed is false when the document was built from a fallback template.
	Existed bool

	original string
}

// Parse parses data and records its canonical form.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse xml: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse xml: %w: document root", ErrMissingElement)
	}
	canonical, err := canonicalize(doc)
	if err != nil {
		return nil, err
	}
	return &Document{Document: doc, Existed: true, original: canonical}, nil
}

// Load reads path through fm. When the file is absent, fallback supplies the
// initial content; a nil fallback makes absence an error.
func Load(ctx context.Context, fm filemanager.FileManager, path string, fallback func() ([]byte, error)) (*Document, error) {
	data, err := fm.Read(ctx, path)
	existed := true
	if err != nil {
		if !errors.Is(err, filemanager.ErrNotFound) || fallback == nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		existed = false
		if data, err = fallback(); err != nil {
			return nil, fmt.Errorf("failed to load template for %s: %w", path, err)
		}
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	doc.Existed = existed
	return doc, nil
}

// Changed reports whether the canonical form differs from the one at load time.
func (d *Document) Changed() (bool, error) {
	current, err := canonicalize(d.Document)
	if err != nil {
		return false, err
	}
	return current != d.original, nil
}

// Bytes returns the canonical serialization.
func (d *Document) Bytes() ([]byte, error) {
	current, err := canonicalize(d.Document)
	if err != nil {
		return nil, err
	}
	return []byte(current), nil
}

// Save writes the document when it is new or its canonical form changed.
func (d *Document) Save(ctx context.Context, fm filemanager.FileManager, path, description string) (bool, error) {
	if d.Existed {
		changed, err := d.Changed()
		if err != nil || !changed {
			return false, err
		}
	}
	data, err := d.Bytes()
	if err != nil {
		return false, err
	}
	written, err := fm.Write(ctx, path, data, description)
	if err != nil {
		return false, fmt.Errorf("failed to save %s: %w", path, err)
	}
	return written, nil
}

// canonicalize strips insignificant whitespace and re-indents a copy of doc.
func canonicalize(doc *etree.Document) (string, error) {
	c := doc.Copy()
	c.Indent(IndentSpaces)
	s, err := c.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to serialize xml: %w", err)
	}
	return s, nil
}
