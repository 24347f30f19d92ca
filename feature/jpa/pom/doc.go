// Package pom reads and edits the project build descriptor (pom.xml).
//
// # Value Objects
//
// Dependency, Repository, Plugin, Filter, Resource and Property mirror the
// descriptor sections the persistence setup manages. Each implements
// reconcile.Keyed with its natural key:
//
//	Dependency  groupId:artifactId
//	Repository  id
//	Plugin      groupId:artifactId (groupId defaults to org.apache.maven.plugins)
//	Filter      file reference
//	Resource    directory|includes|excludes
//
// # Editing
//
// Project exposes the existing records per axis as reconcile sets and one
// Mutator per axis, so a reconcile.Plan can be applied directly:
//
//	project, err := pom.Load(ctx, fm)
//	plan := reconcile.Reconcile(required, universe, project.Dependencies())
//	_, err = reconcile.ApplyPlan(plan, project.DependencyMutator())
//	_, err = project.Save(ctx, fm, "updated dependencies")
//
// Adds are idempotent and removals drop every declaration sharing a key.
// Save only writes when the canonical document changed.
package pom
