package resource

import "fmt"

// Resource is a client-visible handle that may have a device-side
// allocation under one Context at a time.
//
// Concrete kinds embed Base and implement Release, which must request
// exactly one delete (Context.RequestDelete) per native handle they own.
// Composite kinds may override SetUsed to mark the resources they own.
type Resource interface {
	base() *Base

	Release(ctx *Context)
	SetUsed(used bool)
	Used() bool
	IsRealized() bool
	RealizedFor() *Context
}

// Base carries the registry bookkeeping shared by every Resource. The zero
// value is an unrealized resource.
type Base struct {
	realizedFor *Context
	used        bool
	link        *node
}

func (b *Base) base() *Base { return b }

// IsRealized reports whether the resource is allocated under some context.
func (b *Base) IsRealized() bool {
	return b.realizedFor != nil
}

// RealizedFor returns the context the resource is allocated under, or nil.
func (b *Base) RealizedFor() *Context {
	return b.realizedFor
}

// Used reports whether the resource was marked used since the last
// SetAllUnused of its context.
func (b *Base) Used() bool {
	return b.used
}

// SetUsed sets the used flag.
func (b *Base) SetUsed(used bool) {
	b.used = used
}

// RealizeFor records that r has a device-side representation under ctx and
// links it into ctx's registry. It does not allocate anything: the concrete
// kind does that before (or lazily after) calling it.
//
// Realizing an already realized resource is a programming error and panics.
func RealizeFor(r Resource, ctx *Context) {
	if ctx == nil {
		panic(fmt.Sprintf("resource: realize %T for nil context", r))
	}
	b := r.base()
	if b.realizedFor != nil {
		panic(fmt.Sprintf("resource: %T already realized for %s, realize for %s", r, b.realizedFor, ctx))
	}
	if ctx.closed {
		panic(fmt.Sprintf("resource: realize %T for closed context %s", r, ctx))
	}
	b.realizedFor = ctx
	ctx.resources.Append(r)
}

// Unrealize releases r's native handles through r.Release, unlinks it from
// ctx's registry and clears the association. ctx must be the context r is
// realized for; anything else panics.
func Unrealize(r Resource, ctx *Context) {
	b := r.base()
	if b.realizedFor != ctx {
		panic(fmt.Sprintf("resource: unrealize %T for %s, realized for %s", r, ctx, b.realizedFor))
	}
	r.Release(ctx)
	ctx.resources.Unlink(r)
	b.realizedFor = nil
}

// Destroy checks that r may be dropped by its owner. A resource still
// realized would leak its native handles, so that panics.
func Destroy(r Resource) {
	b := r.base()
	if b.realizedFor != nil {
		panic(fmt.Sprintf("resource: destroy %T still realized for %s", r, b.realizedFor))
	}
	b.used = false
}
