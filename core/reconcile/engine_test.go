package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type rec struct {
	id      string
	version string
}

func (r rec) Key() string { return r.id }

func set(ids ...string) *Set[rec] {
	s := NewSet[rec]()
	for _, id := range ids {
		s.Add(rec{id: id})
	}
	return s
}

func TestSet_KeyedMembership(t *testing.T) {
	s := NewSet(rec{id: "a", version: "1"}, rec{id: "b"}, rec{id: "a", version: "2"})

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	got, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", got.version, "first record under a key wins")

	assert.True(t, s.Has(rec{id: "a", version: "other"}))
	assert.True(t, s.Remove(rec{id: "a"}))
	assert.False(t, s.Remove(rec{id: "a"}))
	assert.Equal(t, []string{"b"}, s.Keys())
}

func TestSet_NilSafe(t *testing.T) {
	var s *Set[rec]
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has(rec{id: "a"}))
	assert.Nil(t, s.Items())
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		required   []string
		universe   []string
		existing   []string
		wantAdd    []string
		wantRemove []string
	}{
		{"Empty", nil, nil, nil, []string{}, []string{}},
		{"AlreadyEqual", []string{"a", "b"}, []string{"a", "b", "c"}, []string{"a", "b"}, []string{}, []string{}},
		{"AddMissing", []string{"a", "b"}, []string{"a", "b"}, []string{"a"}, []string{"b"}, []string{}},
		{"RemoveStale", []string{"a"}, []string{"a", "b"}, []string{"a", "b"}, []string{}, []string{"b"}},
		{"SwitchAxis", []string{"pg"}, []string{"mysql", "pg"}, []string{"mysql", "user"}, []string{"pg"}, []string{"mysql"}},
		{"OutsideUniverseKept", []string{}, []string{"a"}, []string{"x", "y"}, []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Reconcile(set(tt.required...), set(tt.universe...), set(tt.existing...))
			assert.Equal(t, tt.wantAdd, nonNil(plan.ToAdd.Keys()))
			assert.Equal(t, tt.wantRemove, nonNil(plan.ToRemove.Keys()))
		})
	}
}

func TestReconcile_ConvergesToRequired(t *testing.T) {
	universe := set("a", "b", "c", "d")
	required := set("b", "d")
	existing := set("a", "b", "c")

	plan := Reconcile(required, universe, existing)

	result := Union(existing, plan.ToAdd).Difference(plan.ToRemove)
	assert.ElementsMatch(t, required.Keys(), result.Keys())

	again := Reconcile(required, universe, result)
	assert.True(t, again.Empty())
}

func TestReconcile_NilInputs(t *testing.T) {
	plan := Reconcile[rec](nil, nil, set("a"))
	assert.True(t, plan.Empty())
}

func TestFilter(t *testing.T) {
	s := set("keep", "drop", "keep-too")
	out := s.Filter(func(r rec) bool { return r.id != "drop" })
	assert.Equal(t, []string{"keep", "keep-too"}, out.Keys())
}

func nonNil(keys []string) []string {
	if keys == nil {
		return []string{}
	}
	return keys
}
