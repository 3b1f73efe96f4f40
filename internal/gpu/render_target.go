package gpu

import (
	"fmt"

	"glres/internal/resource"
)

// RenderTarget is an offscreen framebuffer with a color texture and a
// depth-stencil renderbuffer. It owns the framebuffer handle; the
// attachments are resources of their own that it marks used with itself.
type RenderTarget struct {
	resource.Base

	color *Texture
	depth *Renderbuffer
	id    uint32
}

// NewRenderTarget returns an unrealized width x height render target.
func NewRenderTarget(width, height int) *RenderTarget {
	return &RenderTarget{
		color: NewRenderTexture(width, height),
		depth: NewRenderbuffer(Depth24Stencil8, width, height),
	}
}

func (rt *RenderTarget) ID() uint32                { return rt.id }
func (rt *RenderTarget) Color() *Texture           { return rt.color }
func (rt *RenderTarget) Depth() *Renderbuffer      { return rt.depth }
func (rt *RenderTarget) Size() (width, height int) { return rt.color.Size() }

// SetUsed marks the target and both attachments.
func (rt *RenderTarget) SetUsed(used bool) {
	rt.Base.SetUsed(used)
	rt.color.SetUsed(used)
	rt.depth.SetUsed(used)
}

// Realize allocates the attachments and the framebuffer for ctx. A
// framebuffer whose attachments were reclaimed is rebuilt.
func (rt *RenderTarget) Realize(ctx *resource.Context, dev Device) error {
	if rt.RealizedFor() == ctx && rt.color.RealizedFor() == ctx && rt.depth.RealizedFor() == ctx {
		return nil
	}

	var err error
	ctx.Do(func() {
		if rt.RealizedFor() == ctx {
			resource.Unrealize(rt, ctx)
		}
		rt.color.Realize(ctx, dev)
		rt.depth.Realize(ctx, dev)

		var id uint32
		id, err = dev.CreateFramebuffer(rt.color.ID(), rt.depth.ID())
		if err != nil {
			err = fmt.Errorf("render target for %s: %w", ctx, err)
			return
		}
		rt.id = id
		resource.RealizeFor(rt, ctx)
	})
	return err
}

// Unrealize unrealizes the target and both attachments.
func (rt *RenderTarget) Unrealize() {
	if ctx := rt.RealizedFor(); ctx != nil {
		resource.Unrealize(rt, ctx)
	}
	if ctx := rt.color.RealizedFor(); ctx != nil {
		resource.Unrealize(rt.color, ctx)
	}
	if ctx := rt.depth.RealizedFor(); ctx != nil {
		resource.Unrealize(rt.depth, ctx)
	}
}

func (rt *RenderTarget) Release(ctx *resource.Context) {
	ctx.RequestDelete(resource.KindFramebuffer, rt.id)
	rt.id = 0
}

// Destroy destroys the target and its attachments. All must be unrealized.
func (rt *RenderTarget) Destroy() {
	resource.Destroy(rt)
	rt.color.Destroy()
	rt.depth.Destroy()
}
