package resource

import (
	"fmt"

	"glres/internal/profiling"

	"go.uber.org/zap"
)

// Stats is a snapshot of a context's bookkeeping.
type Stats struct {
	Realized         int
	Pending          int
	ImmediateDeletes uint64
	DeferredDeletes  uint64
	Sweeps           uint64
}

// Context is a rendering context as seen by the registry: it owns the
// registry of resources realized for it and the queue of deletions that
// could not be issued while it was not current.
type Context struct {
	name    string
	stack   *Stack
	deleter Deleter
	binder  Binder

	resources Registry
	pending   []lazyDelete
	stats     Stats
	closed    bool
}

// Option configures a Context.
type Option func(*Context)

// WithBinder makes Push and Pop switch the native context through b.
func WithBinder(b Binder) Option {
	return func(c *Context) {
		c.binder = b
	}
}

// NewContext creates a context whose current-ness is tracked by stack and
// whose native deletions go through d.
func NewContext(name string, stack *Stack, d Deleter, opts ...Option) *Context {
	if stack == nil || d == nil {
		panic("resource: context needs a stack and a deleter")
	}
	c := &Context{
		name:    name,
		stack:   stack,
		deleter: d,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) String() string {
	if c == nil {
		return "<none>"
	}
	return c.name
}

// Stack returns the stack the context is tracked by.
func (c *Context) Stack() *Stack {
	return c.stack
}

// Registry returns the resources currently realized for the context.
func (c *Context) Registry() *Registry {
	return &c.resources
}

// IsCurrent reports whether native calls against c are valid right now.
func (c *Context) IsCurrent() bool {
	return c.stack.Current() == c
}

// Do runs fn with c pushed as the current context.
func (c *Context) Do(fn func()) {
	c.stack.Push(c)
	defer c.stack.Pop()
	fn()
}

// RequestDelete deletes a native handle owned by c. The delete happens
// immediately when c is current and is queued until the next Flush
// otherwise.
func (c *Context) RequestDelete(kind Kind, id uint32) {
	if c.IsCurrent() {
		kind.delete(c.deleter, id)
		c.stats.ImmediateDeletes++
		return
	}
	c.pending = append(c.pending, lazyDelete{kind: kind, id: id})
	c.stats.DeferredDeletes++
	Logger().Debug("deferred delete",
		zap.Stringer("context", c),
		zap.Stringer("kind", kind),
		zap.Uint32("id", id),
	)
}

// Pending returns the number of queued deletions.
func (c *Context) Pending() int {
	return len(c.pending)
}

// Flush issues every queued deletion in request order and empties the
// queue. c must be current when anything is queued.
func (c *Context) Flush() {
	if len(c.pending) == 0 {
		return
	}
	if !c.IsCurrent() {
		panic(fmt.Sprintf("resource: flush of %d deletes for %s while %s is current",
			len(c.pending), c, c.stack.Current()))
	}
	defer profiling.Track("resource.Flush")()

	for _, ld := range c.pending {
		ld.kind.delete(c.deleter, ld.id)
	}
	profiling.Count("resource.flushedDeletes", len(c.pending))
	Logger().Debug("flushed deletes", zap.Stringer("context", c), zap.Int("count", len(c.pending)))
	c.pending = c.pending[:0]
}

// Stats returns a snapshot of the context's counters.
func (c *Context) Stats() Stats {
	s := c.stats
	s.Realized = c.resources.Len()
	s.Pending = len(c.pending)
	return s
}

// Close unrealizes every resource and marks the context closed. Realizing
// anything for a closed context panics.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.UnrealizeAll()
	c.closed = true
	Logger().Info("context closed",
		zap.Stringer("context", c),
		zap.Uint64("immediate_deletes", c.stats.ImmediateDeletes),
		zap.Uint64("deferred_deletes", c.stats.DeferredDeletes),
	)
}
