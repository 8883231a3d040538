// Package placement positions nodes added by the operators.
//
// Successive additions in an unchanged view stack downward from the last
// added node. When the view has moved, the next node lands at the view
// center.
package placement

import (
	"sync"

	"github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph"
)

const (
	// StepY is the vertical offset between stacked nodes.
	StepY = -100
	// ViewThreshold is how far the view may move and still count as unchanged.
	ViewThreshold = 50
)

// Context remembers the last placement. The zero value is ready to use.
type Context struct {
	mu       sync.Mutex
	last     *shadergraph.Vec2
	lastView *shadergraph.Vec2
}

// Next returns the location for a new node given the current view center.
func (c *Context) Next(view shadergraph.Vec2) shadergraph.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()

	loc := view
	if c.last != nil && c.lastView != nil && view.Sub(*c.lastView).Len() <= ViewThreshold {
		loc = shadergraph.Vec2{X: c.last.X, Y: c.last.Y + StepY}
	}
	c.last = &loc
	c.lastView = &view
	return loc
}

// Reset forgets the last placement.
func (c *Context) Reset() {
	c.mu.Lock()
	c.last, c.lastView = nil, nil
	c.mu.Unlock()
}
