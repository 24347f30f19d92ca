package pom

import "persistence-setup/core/reconcile"

// Axis names used in plans, logs and journal entries.
const (
	AxisDependencies       = "dependencies"
	AxisRepositories       = "repositories"
	AxisPluginRepositories = "pluginRepositories"
	AxisPlugins            = "plugins"
	AxisFilters            = "filters"
	AxisResources          = "resources"
)

// axis adapts a pair of Project edits to reconcile.Mutator.
type axis[T reconcile.Keyed] struct {
	name   string
	add    func(T) error
	remove func(T) error
}

func (a axis[T]) Name() string        { return a.name }
func (a axis[T]) Add(item T) error    { return a.add(item) }
func (a axis[T]) Remove(item T) error { return a.remove(item) }

func ignore[T any](fn func(T) bool) func(T) error {
	return func(item T) error {
		fn(item)
		return nil
	}
}

// DependencyMutator edits the project dependencies.
func (p *Project) DependencyMutator() reconcile.Mutator[Dependency] {
	return axis[Dependency]{name: AxisDependencies, add: ignore(p.AddDependency), remove: ignore(p.RemoveDependency)}
}

// RepositoryMutator edits the project repositories.
func (p *Project) RepositoryMutator() reconcile.Mutator[Repository] {
	return axis[Repository]{name: AxisRepositories, add: ignore(p.AddRepository), remove: ignore(p.RemoveRepository)}
}

// PluginRepositoryMutator edits the project plugin repositories.
func (p *Project) PluginRepositoryMutator() reconcile.Mutator[Repository] {
	return axis[Repository]{name: AxisPluginRepositories, add: ignore(p.AddPluginRepository), remove: ignore(p.RemovePluginRepository)}
}

// PluginMutator edits the build plugins.
func (p *Project) PluginMutator() reconcile.Mutator[Plugin] {
	add := func(pl Plugin) error {
		_, err := p.AddPlugin(pl)
		return err
	}
	return axis[Plugin]{name: AxisPlugins, add: add, remove: ignore(p.RemovePlugin)}
}

// FilterMutator edits the build filters.
func (p *Project) FilterMutator() reconcile.Mutator[Filter] {
	return axis[Filter]{name: AxisFilters, add: ignore(p.AddFilter), remove: ignore(p.RemoveFilter)}
}

// ResourceMutator edits the build resources.
func (p *Project) ResourceMutator() reconcile.Mutator[Resource] {
	return axis[Resource]{name: AxisResources, add: ignore(p.AddResource), remove: ignore(p.RemoveResource)}
}
