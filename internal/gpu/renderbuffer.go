package gpu

import "glres/internal/resource"

// Renderbuffer is renderbuffer storage, typically a depth attachment.
type Renderbuffer struct {
	resource.Base

	format        RenderbufferFormat
	width, height int
	id            uint32
}

func NewRenderbuffer(format RenderbufferFormat, width, height int) *Renderbuffer {
	return &Renderbuffer{format: format, width: width, height: height}
}

func (r *Renderbuffer) ID() uint32 { return r.id }

func (r *Renderbuffer) Realize(ctx *resource.Context, dev Device) {
	if r.RealizedFor() == ctx {
		return
	}
	ctx.Do(func() {
		r.id = dev.CreateRenderbuffer(r.format, r.width, r.height)
		resource.RealizeFor(r, ctx)
	})
}

func (r *Renderbuffer) Release(ctx *resource.Context) {
	ctx.RequestDelete(resource.KindRenderbuffer, r.id)
	r.id = 0
}

func (r *Renderbuffer) Destroy() {
	resource.Destroy(r)
}
