package resource

import (
	"glres/internal/profiling"

	"go.uber.org/zap"
)

// SetAllUnused clears the used flag of every realized resource. Run it once
// per frame before rendering marks resources used.
func (c *Context) SetAllUnused() {
	c.resources.ForEachRemovable(func(r Resource) {
		r.base().used = false
	})
}

// UnrealizeUnused unrealizes every resource not marked used since the last
// SetAllUnused, then flushes the delete queue. It returns the number of
// resources unrealized.
func (c *Context) UnrealizeUnused() int {
	defer profiling.Track("resource.UnrealizeUnused")()
	return c.sweep(func(r Resource) bool {
		return !r.base().used
	})
}

// UnrealizeAll unrealizes every resource and flushes the delete queue. It
// returns the number of resources unrealized.
func (c *Context) UnrealizeAll() int {
	defer profiling.Track("resource.UnrealizeAll")()
	return c.sweep(func(Resource) bool {
		return true
	})
}

func (c *Context) sweep(collect func(Resource) bool) int {
	c.stack.Push(c)
	defer c.stack.Pop()

	visited, removed := 0, 0
	c.resources.ForEachRemovable(func(r Resource) {
		visited++
		if collect(r) {
			Unrealize(r, c)
			removed++
		}
	})
	c.Flush()
	c.stats.Sweeps++

	profiling.Count("resource.unrealized", removed)
	if removed > 0 {
		Logger().Debug("sweep",
			zap.Stringer("context", c),
			zap.Int("visited", visited),
			zap.Int("unrealized", removed),
			zap.Int("remaining", c.resources.Len()),
		)
	}
	return removed
}
