package catalog

import (
	"errors"
	"fmt"

	"github.com/magiconair/properties"
)

// ErrMissingDialect is returned when the dialect catalog has no entry for a combination.
var ErrMissingDialect = errors.New("missing dialect")

// Dialects maps "PROVIDER.DATABASE" keys to dialect, dictionary or platform classes.
type Dialects struct {
	props *properties.Properties
}

// ParseDialects loads a dialect catalog in properties format.
func ParseDialects(data []byte) (*Dialects, error) {
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dialect catalog: %w", err)
	}
	return &Dialects{props: p}, nil
}

// Lookup returns the dialect for the provider/database combination.
func (d *Dialects) Lookup(p Provider, db Database) (string, error) {
	key := p.DialectKey(db)
	value, ok := d.props.Get(key)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingDialect, key)
	}
	return value, nil
}

// Len returns the number of entries.
func (d *Dialects) Len() int {
	return d.props.Len()
}
