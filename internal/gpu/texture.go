package gpu

import (
	"image"

	"glres/internal/resource"
)

// Texture is a 2D texture uploaded from an RGBA image.
type Texture struct {
	resource.Base

	img    *image.RGBA
	params TextureParams
	id     uint32
	dirty  bool
}

// NewTexture returns an unrealized texture for img.
func NewTexture(img *image.RGBA, params TextureParams) *Texture {
	return &Texture{img: img, params: params}
}

// NewRenderTexture returns an unrealized texture with blank storage, for
// use as a render target attachment.
func NewRenderTexture(width, height int) *Texture {
	return NewTexture(image.NewRGBA(image.Rect(0, 0, width, height)), TextureParams{
		MinFilter: FilterLinear,
		MagFilter: FilterLinear,
	})
}

// ID returns the native handle, or 0 when unrealized.
func (t *Texture) ID() uint32 { return t.id }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetImage replaces the pixels. A realized texture is reuploaded on the
// next Realize.
func (t *Texture) SetImage(img *image.RGBA) {
	t.img = img
	t.dirty = t.IsRealized()
}

// Realize uploads the texture for ctx if it has no allocation there yet.
func (t *Texture) Realize(ctx *resource.Context, dev Device) {
	if t.RealizedFor() == ctx && !t.dirty {
		return
	}
	ctx.Do(func() {
		if owner := t.RealizedFor(); t.dirty && owner != nil {
			resource.Unrealize(t, owner)
		}
		t.dirty = false
		t.id = dev.CreateTexture(t.img, t.params)
		resource.RealizeFor(t, ctx)
	})
}

func (t *Texture) Release(ctx *resource.Context) {
	ctx.RequestDelete(resource.KindTexture, t.id)
	t.id = 0
}

// Destroy drops the pixel data. The texture must be unrealized.
func (t *Texture) Destroy() {
	resource.Destroy(t)
	t.img = nil
}
