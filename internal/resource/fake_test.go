package resource

import "testing"

// deleteCall is one native delete issued by fakeDeleter.
type deleteCall struct {
	kind Kind
	id   uint32
}

type fakeDeleter struct {
	calls []deleteCall
}

func (d *fakeDeleter) DeleteTexture(id uint32)      { d.calls = append(d.calls, deleteCall{KindTexture, id}) }
func (d *fakeDeleter) DeleteBuffer(id uint32)       { d.calls = append(d.calls, deleteCall{KindBuffer, id}) }
func (d *fakeDeleter) DeleteFramebuffer(id uint32)  { d.calls = append(d.calls, deleteCall{KindFramebuffer, id}) }
func (d *fakeDeleter) DeleteRenderbuffer(id uint32) { d.calls = append(d.calls, deleteCall{KindRenderbuffer, id}) }

// handle is a single-handle resource of any kind.
type handle struct {
	Base
	kind Kind
	id   uint32
}

func (h *handle) Release(ctx *Context) {
	ctx.RequestDelete(h.kind, h.id)
}

// group owns no handle and marks its members used along with itself.
type group struct {
	Base
	members []*handle
}

func (g *group) Release(*Context) {}

func (g *group) SetUsed(used bool) {
	g.Base.SetUsed(used)
	for _, m := range g.members {
		m.SetUsed(used)
	}
}

type binderCall struct {
	name   string
	detach bool
}

type fakeBinder struct {
	name string
	log  *[]binderCall
}

func (b fakeBinder) MakeCurrent()   { *b.log = append(*b.log, binderCall{name: b.name}) }
func (b fakeBinder) DetachCurrent() { *b.log = append(*b.log, binderCall{name: b.name, detach: true}) }

func newTestContext(name string) (*Context, *fakeDeleter) {
	d := &fakeDeleter{}
	return NewContext(name, NewStack(), d), d
}

func mustPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic: %s", what)
		}
	}()
	fn()
}
