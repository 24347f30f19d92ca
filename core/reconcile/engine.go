package reconcile

// Reconcile computes the plan that moves existing towards required on one axis.
//
// Only records inside universe are candidates for removal, so anything the
// axis could never have contributed (user additions, unrelated artifacts)
// is left alone. When required and existing already agree the plan is empty.
func Reconcile[T Keyed](required, universe, existing *Set[T]) Plan[T] {
	if required == nil {
		required = NewSet[T]()
	}
	if universe == nil {
		universe = NewSet[T]()
	}
	if existing == nil {
		existing = NewSet[T]()
	}

	return Plan[T]{
		ToAdd:    required.Difference(existing),
		ToRemove: universe.Intersect(existing).Difference(required),
	}
}

// Union merges the given sets in order.
func Union[T Keyed](sets ...*Set[T]) *Set[T] {
	out := NewSet[T]()
	for _, s := range sets {
		out.AddAll(s)
	}
	return out
}
