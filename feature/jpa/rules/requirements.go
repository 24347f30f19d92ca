package rules

import (
	"fmt"

	"persistence-setup/core/reconcile"
	"persistence-setup/feature/jpa/pom"
)

// Requirements are the records of every reconciliation axis.
type Requirements struct {
	Properties         []pom.Property
	Dependencies       *reconcile.Set[pom.Dependency]
	Repositories       *reconcile.Set[pom.Repository]
	PluginRepositories *reconcile.Set[pom.Repository]
	Plugins            *reconcile.Set[pom.Plugin]
	Filters            *reconcile.Set[pom.Filter]
	Resources          *reconcile.Set[pom.Resource]
}

func newRequirements() Requirements {
	return Requirements{
		Dependencies:       reconcile.NewSet[pom.Dependency](),
		Repositories:       reconcile.NewSet[pom.Repository](),
		PluginRepositories: reconcile.NewSet[pom.Repository](),
		Plugins:            reconcile.NewSet[pom.Plugin](),
		Filters:            reconcile.NewSet[pom.Filter](),
		Resources:          reconcile.NewSet[pom.Resource](),
	}
}

func (r *Requirements) add(e Entry) {
	r.Properties = append(r.Properties, e.Properties...)
	r.Dependencies.AddAll(reconcile.NewSet(e.Dependencies...))
	r.Repositories.AddAll(reconcile.NewSet(e.Repositories...))
	r.PluginRepositories.AddAll(reconcile.NewSet(e.PluginRepositories...))
	r.Plugins.AddAll(reconcile.NewSet(e.Plugins...))
	r.Filters.AddAll(reconcile.NewSet(e.Filters...))
	r.Resources.AddAll(reconcile.NewSet(e.Resources...))
}

// WithoutDependency returns a copy of r with the dependency key removed.
func (r Requirements) WithoutDependency(key string) Requirements {
	r.Dependencies = r.Dependencies.Filter(func(d pom.Dependency) bool {
		return d.Key() != key
	})
	return r
}

// Required returns the records needed by the selected database key and provider,
// followed by the common section.
func (m *Matrix) Required(databaseKey, providerID string) (Requirements, error) {
	db, ok := m.Database(databaseKey)
	if !ok {
		return Requirements{}, fmt.Errorf("database %s: %w", databaseKey, ErrNotInMatrix)
	}
	provider, ok := m.Provider(providerID)
	if !ok {
		return Requirements{}, fmt.Errorf("ORM provider %s: %w", providerID, ErrNotInMatrix)
	}

	r := newRequirements()
	r.add(db)
	r.add(provider)
	r.add(m.Common)
	return r, nil
}

// Universe returns every record any database or provider may contribute.
// The common section is never part of it, so common records are never removed.
func (m *Matrix) Universe() Requirements {
	r := newRequirements()
	for _, e := range m.Databases {
		r.add(e)
	}
	for _, e := range m.Providers {
		r.add(e)
	}
	return r
}
