package gpu

import (
	"errors"
	"image"
	"testing"

	"glres/internal/resource"
)

type deleted struct {
	kind resource.Kind
	id   uint32
}

// fakeDevice hands out increasing ids and records deletes. It fails the
// test if anything is allocated or deleted while its context is not
// current.
type fakeDevice struct {
	t       *testing.T
	ctx     *resource.Context
	next    uint32
	deletes []deleted
	failFB  bool

	textures, buffers, renderbuffers, framebuffers int
}

func newFakeContext(t *testing.T) (*resource.Context, *fakeDevice) {
	dev := &fakeDevice{t: t}
	ctx := resource.NewContext("test", resource.NewStack(), dev)
	dev.ctx = ctx
	return ctx, dev
}

func (d *fakeDevice) checkCurrent(op string) {
	d.t.Helper()
	if !d.ctx.IsCurrent() {
		d.t.Errorf("%s while context not current", op)
	}
}

func (d *fakeDevice) alloc(op string) uint32 {
	d.checkCurrent(op)
	d.next++
	return d.next
}

func (d *fakeDevice) CreateTexture(*image.RGBA, TextureParams) uint32 {
	d.textures++
	return d.alloc("CreateTexture")
}

func (d *fakeDevice) CreateBuffer(BufferTarget, BufferUsage, int, any) uint32 {
	d.buffers++
	return d.alloc("CreateBuffer")
}

func (d *fakeDevice) CreateRenderbuffer(RenderbufferFormat, int, int) uint32 {
	d.renderbuffers++
	return d.alloc("CreateRenderbuffer")
}

func (d *fakeDevice) CreateFramebuffer(color, depth uint32) (uint32, error) {
	d.checkCurrent("CreateFramebuffer")
	if d.failFB {
		return 0, errors.New("framebuffer incomplete")
	}
	if color == 0 || depth == 0 {
		d.t.Errorf("framebuffer created with missing attachment %d/%d", color, depth)
	}
	d.framebuffers++
	return d.alloc("CreateFramebuffer"), nil
}

func (d *fakeDevice) del(kind resource.Kind, id uint32) {
	d.checkCurrent("delete " + kind.String())
	d.deletes = append(d.deletes, deleted{kind, id})
}

func (d *fakeDevice) DeleteTexture(id uint32)      { d.del(resource.KindTexture, id) }
func (d *fakeDevice) DeleteBuffer(id uint32)       { d.del(resource.KindBuffer, id) }
func (d *fakeDevice) DeleteFramebuffer(id uint32)  { d.del(resource.KindFramebuffer, id) }
func (d *fakeDevice) DeleteRenderbuffer(id uint32) { d.del(resource.KindRenderbuffer, id) }

func (d *fakeDevice) countDeletes(kind resource.Kind) int {
	n := 0
	for _, del := range d.deletes {
		if del.kind == kind {
			n++
		}
	}
	return n
}
