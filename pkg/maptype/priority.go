package maptype

import (
	"cmp"
	"slices"
)

// Unranked is the rank given to map types outside PriorityOrder.
const Unranked = 999

// PriorityOrder is the fixed presentation order of the primary map types.
// "Packed", "Unknown" and custom types are not part of it.
var PriorityOrder = []string{
	"Diffuse",
	"Metalness",
	"Roughness",
	"Alpha",
	"Normal",
	"Displacement",
	"Transmission",
	"AmbientOcclusion",
	"Emission",
	"Subsurface",
}

var priorityLookup = func() map[string]int {
	m := make(map[string]int, len(PriorityOrder))
	for i, name := range PriorityOrder {
		m[name] = i
	}
	return m
}()

// Rank returns the index of mapType in PriorityOrder, or Unranked.
func Rank(mapType string) int {
	if r, ok := priorityLookup[mapType]; ok {
		return r
	}
	return Unranked
}

// Subject is the naming surface of anything the classifier can order: a
// unique name and an optional human label.
type Subject struct {
	Name  string
	Label string
}

// Display returns the label, or the name if no label is set.
func (s Subject) Display() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Name
}

// Sort returns a copy of items ordered by the rank of their classification,
// then by name. subject extracts the naming surface of an item. The sort is
// stable, so items with equal rank and name keep their input order.
func Sort[T any](items []T, t Table, subject func(T) Subject) []T {
	type keyed struct {
		item T
		rank int
		name string
	}
	ks := make([]keyed, len(items))
	for i, it := range items {
		s := subject(it)
		ks[i] = keyed{item: it, rank: Rank(t.ClassifySubject(s).MapType), name: s.Name}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		if c := cmp.Compare(a.rank, b.rank); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	out := make([]T, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}
