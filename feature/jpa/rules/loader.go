package rules

import (
	"errors"
	"fmt"
	"strings"

	"persistence-setup/feature/jpa/catalog"
	"persistence-setup/feature/jpa/pom"
	"persistence-setup/feature/jpa/templates"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrNotInMatrix is returned when a catalog entry has no rules matrix entry.
var ErrNotInMatrix = errors.New("not present in rules matrix")

// LoadFile loads and validates a rules matrix from path on fs.
func LoadFile(fs afero.Fs, path string) (*Matrix, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules matrix %s: %w", path, err)
	}
	return Parse(data)
}

// LoadDefault loads the rules matrix bundled with the templates.
func LoadDefault(bundle *templates.Bundle) (*Matrix, error) {
	data, err := bundle.Get(templates.RulesMatrix)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses and validates YAML rules matrix data.
func Parse(data []byte) (*Matrix, error) {
	var m Matrix
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse rules matrix: %w", err)
	}

	applyDefaults(&m)

	if err := Validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func applyDefaults(m *Matrix) {
	normalize := func(e *Entry) {
		e.ID = strings.TrimSpace(e.ID)
		for i := range e.Plugins {
			if e.Plugins[i].GroupID == "" {
				e.Plugins[i].GroupID = pom.DefaultPluginGroupID
			}
		}
	}
	normalize(&m.Common)
	for i := range m.Databases {
		normalize(&m.Databases[i])
	}
	for i := range m.Providers {
		normalize(&m.Providers[i])
	}
}

// Validate checks that every catalog database key and provider id has exactly one entry.
func Validate(m *Matrix) error {
	if err := validateSection("database", m.Databases, catalog.DatabaseKeys()); err != nil {
		return err
	}
	return validateSection("ORM provider", m.Providers, catalog.ProviderIDs())
}

func validateSection(kind string, entries []Entry, ids []string) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("invalid rules matrix: %s entry without id", kind)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("invalid rules matrix: duplicate %s entry %q", kind, e.ID)
		}
		seen[e.ID] = struct{}{}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s %s: %w", kind, strings.Join(missing, ", "), ErrNotInMatrix)
	}
	return nil
}
