package reconcile

import "fmt"

// Mutator applies single-record changes to an artifact collection.
type Mutator[T Keyed] interface {
	// Name identifies the axis in error messages (e.g., "dependencies").
	Name() string

	// Add inserts a record into the collection.
	Add(item T) error

	// Remove deletes a record from the collection.
	Remove(item T) error
}

// ApplyPlan executes the plan against the mutator, removals first.
// Returns the number of records touched and any error encountered.
func ApplyPlan[T Keyed](plan Plan[T], mutator Mutator[T]) (executed int, err error) {
	for _, item := range plan.ToRemove.Items() {
		if err := mutator.Remove(item); err != nil {
			return executed, fmt.Errorf("failed to remove %s %s: %w", mutator.Name(), item.Key(), err)
		}
		executed++
	}
	for _, item := range plan.ToAdd.Items() {
		if err := mutator.Add(item); err != nil {
			return executed, fmt.Errorf("failed to add %s %s: %w", mutator.Name(), item.Key(), err)
		}
		executed++
	}
	return executed, nil
}

// ReconcileAndApply is a convenience wrapper that plans and applies one axis.
func ReconcileAndApply[T Keyed](required, universe, existing *Set[T], mutator Mutator[T]) (Plan[T], int, error) {
	plan := Reconcile(required, universe, existing)
	executed, err := ApplyPlan(plan, mutator)
	return plan, executed, err
}
