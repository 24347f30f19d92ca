package reconcile

// Keyed is implemented by every record that takes part in set reconciliation.
// Two records with the same Key are the same artifact regardless of their other fields.
type Keyed interface {
	Key() string
}

// Set is an insertion-ordered set of keyed records.
// Membership is decided by Key; the first record added under a key wins.
type Set[T Keyed] struct {
	keys  []string
	items map[string]T
}

// NewSet builds a set from the given records, dropping later duplicates.
func NewSet[T Keyed](items ...T) *Set[T] {
	s := &Set[T]{items: make(map[string]T, len(items))}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add inserts the record and reports whether the set changed.
func (s *Set[T]) Add(item T) bool {
	if s.items == nil {
		s.items = make(map[string]T)
	}
	key := item.Key()
	if _, ok := s.items[key]; ok {
		return false
	}
	s.keys = append(s.keys, key)
	s.items[key] = item
	return true
}

// AddAll inserts every record of other.
func (s *Set[T]) AddAll(other *Set[T]) {
	if other == nil {
		return
	}
	for _, item := range other.Items() {
		s.Add(item)
	}
}

// Remove deletes the record with the same key and reports whether the set changed.
func (s *Set[T]) Remove(item T) bool {
	key := item.Key()
	if _, ok := s.items[key]; !ok {
		return false
	}
	delete(s.items, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether a record with the same key is a member.
func (s *Set[T]) Has(item T) bool {
	if s == nil {
		return false
	}
	_, ok := s.items[item.Key()]
	return ok
}

// Get returns the member stored under key.
func (s *Set[T]) Get(key string) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	item, ok := s.items[key]
	if !ok {
		return zero, false
	}
	return item, true
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Items returns the members in insertion order.
func (s *Set[T]) Items() []T {
	if s == nil {
		return nil
	}
	out := make([]T, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.items[k])
	}
	return out
}

// Keys returns the member keys in insertion order.
func (s *Set[T]) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Intersect returns the members of s that are also in other, in s's order.
func (s *Set[T]) Intersect(other *Set[T]) *Set[T] {
	out := NewSet[T]()
	for _, item := range s.Items() {
		if other.Has(item) {
			out.Add(item)
		}
	}
	return out
}

// Difference returns the members of s that are not in other, in s's order.
func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	out := NewSet[T]()
	for _, item := range s.Items() {
		if !other.Has(item) {
			out.Add(item)
		}
	}
	return out
}

// Filter returns the members for which keep reports true.
func (s *Set[T]) Filter(keep func(T) bool) *Set[T] {
	out := NewSet[T]()
	for _, item := range s.Items() {
		if keep(item) {
			out.Add(item)
		}
	}
	return out
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionAdd adds a required record that is missing.
	ActionAdd ActionType = "add"
	// ActionRemove removes a known record the selection no longer requires.
	ActionRemove ActionType = "remove"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the natural key of the record.
	Key string `json:"key"`
}

// Plan contains the records one axis must gain and lose.
type Plan[T Keyed] struct {
	// ToAdd is required minus existing.
	ToAdd *Set[T]

	// ToRemove is (universe intersect existing) minus required.
	ToRemove *Set[T]
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	// Added counts planned additions.
	Added int `json:"added"`

	// Removed counts planned removals.
	Removed int `json:"removed"`
}

// Empty reports whether the plan has nothing to do.
func (p Plan[T]) Empty() bool {
	return p.ToAdd.Len() == 0 && p.ToRemove.Len() == 0
}

// Summary returns the plan's aggregate counts.
func (p Plan[T]) Summary() PlanSummary {
	return PlanSummary{Added: p.ToAdd.Len(), Removed: p.ToRemove.Len()}
}

// Actions flattens the plan into removals followed by additions.
func (p Plan[T]) Actions() []Action {
	actions := make([]Action, 0, p.ToAdd.Len()+p.ToRemove.Len())
	for _, item := range p.ToRemove.Items() {
		actions = append(actions, Action{Type: ActionRemove, Key: item.Key()})
	}
	for _, item := range p.ToAdd.Items() {
		actions = append(actions, Action{Type: ActionAdd, Key: item.Key()})
	}
	return actions
}
