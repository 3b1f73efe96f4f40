package resource

import "fmt"

// node is a registry link. Each realized Resource owns exactly one.
type node struct {
	prev, next *node
	owner      *Registry
	res        Resource
}

// Registry is the set of resources realized for one context, in
// realization order. It is a circular doubly linked list around a sentinel
// head so that append and unlink are O(1) without search. The zero value is
// an empty registry; the head is allocated on first use.
type Registry struct {
	head *node
	n    int
}

func (g *Registry) lazyInit() {
	if g.head != nil {
		return
	}
	g.head = &node{}
	g.head.next = g.head
	g.head.prev = g.head
}

// Append links r at the tail.
func (g *Registry) Append(r Resource) {
	b := r.base()
	if b.link != nil {
		panic(fmt.Sprintf("resource: %T already linked into a registry", r))
	}
	g.lazyInit()

	n := &node{owner: g, res: r}
	prev := g.head.prev
	n.next = g.head
	n.prev = prev
	prev.next = n
	g.head.prev = n

	b.link = n
	g.n++
}

// Unlink removes r. r must currently be linked into g.
func (g *Registry) Unlink(r Resource) {
	b := r.base()
	n := b.link
	if n == nil || n.owner != g {
		panic(fmt.Sprintf("resource: unlink %T not linked into this registry", r))
	}

	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	n.owner, n.res = nil, nil

	b.link = nil
	g.n--
}

// Contains reports whether r is linked into g.
func (g *Registry) Contains(r Resource) bool {
	n := r.base().link
	return n != nil && n.owner == g
}

// Len returns the number of linked resources.
func (g *Registry) Len() int {
	return g.n
}

// ForEachRemovable calls fn for every resource in realization order. The
// cursor steps to the successor before fn runs, so fn may unlink the
// resource it is handed. It must not unlink any other member.
func (g *Registry) ForEachRemovable(fn func(Resource)) {
	if g.head == nil {
		return
	}
	for n := g.head.next; n != g.head; {
		r := n.res
		n = n.next
		fn(r)
	}
}

// Resources returns a snapshot of the linked resources in order.
func (g *Registry) Resources() []Resource {
	out := make([]Resource, 0, g.n)
	g.ForEachRemovable(func(r Resource) {
		out = append(out, r)
	})
	return out
}
