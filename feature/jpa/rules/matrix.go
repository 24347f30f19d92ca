package rules

import "persistence-setup/feature/jpa/pom"

// Entry holds everything one database, provider or the common section contributes.
type Entry struct {
	ID                 string           `yaml:"id"`
	Properties         []pom.Property   `yaml:"properties"`
	Dependencies       []pom.Dependency `yaml:"dependencies"`
	Repositories       []pom.Repository `yaml:"repositories"`
	PluginRepositories []pom.Repository `yaml:"pluginRepositories"`
	Plugins            []pom.Plugin     `yaml:"plugins"`
	Filters            []pom.Filter     `yaml:"filters"`
	Resources          []pom.Resource   `yaml:"resources"`
}

// Matrix is the parsed rules matrix.
type Matrix struct {
	Common    Entry   `yaml:"common"`
	Databases []Entry `yaml:"databases"`
	Providers []Entry `yaml:"ormProviders"`
}

// Database returns the entry for a database key.
func (m *Matrix) Database(key string) (Entry, bool) {
	return find(m.Databases, key)
}

// Provider returns the entry for a provider id.
func (m *Matrix) Provider(id string) (Entry, bool) {
	return find(m.Providers, id)
}

func find(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
