// Package reconcile provides a generic keyed-set reconciliation engine.
//
// A reconciliation axis (dependencies, repositories, plugins, filters, resources)
// is described by three sets of records identified by a natural key:
//
//   - required: what the current selection needs
//   - universe: everything the axis could ever contribute
//   - existing: what the artifact currently holds
//
// # Engine
//
// Reconcile computes a Plan with
//
//	ToAdd    = required - existing
//	ToRemove = (universe ∩ existing) - required
//
// Records outside the universe are never removed, which keeps user content intact.
// Running the same reconciliation twice yields an empty plan the second time.
//
// # Sets
//
// Set keeps insertion order so that output written back to documents is
// deterministic, while membership, union, intersection and difference are
// decided by Key alone.
//
// # Applying
//
// ApplyPlan drives a Mutator one record at a time, removals first. Plan.Actions
// flattens the same order into keyed add/remove steps for previews.
//
//	plan := reconcile.Reconcile(required, universe, existing)
//	n, err := reconcile.ApplyPlan(plan, mutator)
package reconcile
