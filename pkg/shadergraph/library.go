package shadergraph

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateGroup is returned by [Library.Add] when a group name is taken.
var ErrDuplicateGroup = errors.New("duplicate group name")

// Library holds the node-group templates of a scene by name, in the order
// they were added.
type Library struct {
	trees map[string]*Tree
	order []string
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{trees: make(map[string]*Tree)}
}

// Add stores t under t.Name.
func (l *Library) Add(t *Tree) error {
	if t == nil || t.Name == "" {
		return ErrInvalidNodeName
	}
	if _, ok := l.trees[t.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateGroup, t.Name)
	}
	l.trees[t.Name] = t
	l.order = append(l.order, t.Name)
	return nil
}

// Get returns the group called name.
func (l *Library) Get(name string) (*Tree, bool) {
	t, ok := l.trees[name]
	return t, ok
}

// Has reports whether a group called name exists.
func (l *Library) Has(name string) bool {
	_, ok := l.trees[name]
	return ok
}

// Names returns group names in insertion order.
func (l *Library) Names() []string { return slices.Clone(l.order) }

// Trees returns the groups in insertion order.
func (l *Library) Trees() []*Tree {
	out := make([]*Tree, len(l.order))
	for i, name := range l.order {
		out[i] = l.trees[name]
	}
	return out
}

// Len returns the number of groups.
func (l *Library) Len() int { return len(l.order) }

// Copy stores a deep, local copy of the group src under newName.
func (l *Library) Copy(src, newName string) (*Tree, error) {
	t, ok := l.trees[src]
	if !ok {
		return nil, fmt.Errorf("%w: group %q", ErrUnknownNode, src)
	}
	c := t.Clone(newName)
	if err := l.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

// FreeName returns base if unused, otherwise base with the first free
// ".NNN" suffix. This is how the host renames a datablock whose name is
// already taken.
func (l *Library) FreeName(base string) string {
	if !l.Has(base) {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s.%03d", base, i)
		if !l.Has(name) {
			return name
		}
	}
}
