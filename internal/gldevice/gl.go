// Package gldevice backs the registry with OpenGL 4.1 core through go-gl.
package gldevice

import (
	"fmt"
	"image"

	"glres/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// GL implements gpu.Device against whatever GL context is current on the
// calling thread.
type GL struct {
	log *zap.Logger
}

var _ gpu.Device = (*GL)(nil)

// New returns a device. gl.Init must already have run with a context
// current.
func New(log *zap.Logger) *GL {
	if log == nil {
		log = zap.NewNop()
	}
	return &GL{log: log.Named("gl")}
}

func (d *GL) checkError(label string) {
	if err := gl.GetError(); err != gl.NO_ERROR {
		d.log.Warn("gl error", zap.String("op", label), zap.String("code", fmt.Sprintf("0x%x", err)))
	}
}

func (d *GL) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
	d.checkError("DeleteTextures")
}

func (d *GL) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
	d.checkError("DeleteBuffers")
}

func (d *GL) DeleteFramebuffer(id uint32) {
	gl.DeleteFramebuffers(1, &id)
	d.checkError("DeleteFramebuffers")
}

func (d *GL) DeleteRenderbuffer(id uint32) {
	gl.DeleteRenderbuffers(1, &id)
	d.checkError("DeleteRenderbuffers")
}

func glFilter(f gpu.Filter, mipmaps bool) int32 {
	switch {
	case f == gpu.FilterLinear && mipmaps:
		return gl.LINEAR_MIPMAP_LINEAR
	case f == gpu.FilterLinear:
		return gl.LINEAR
	case mipmaps:
		return gl.NEAREST_MIPMAP_NEAREST
	}
	return gl.NEAREST
}

func glWrap(w gpu.Wrap) int32 {
	if w == gpu.WrapRepeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func (d *GL) CreateTexture(img *image.RGBA, p gpu.TextureParams) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(p.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(p.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(p.MinFilter, p.Mipmaps))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(p.MagFilter, false))

	size := img.Rect.Size()
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	if p.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	d.checkError("CreateTexture")
	return texture
}

func (d *GL) CreateBuffer(target gpu.BufferTarget, usage gpu.BufferUsage, size int, data any) uint32 {
	t := uint32(gl.ARRAY_BUFFER)
	if target == gpu.ElementArrayBuffer {
		t = gl.ELEMENT_ARRAY_BUFFER
	}
	u := uint32(gl.STATIC_DRAW)
	if usage == gpu.DynamicDraw {
		u = gl.DYNAMIC_DRAW
	}

	var buffer uint32
	gl.GenBuffers(1, &buffer)
	gl.BindBuffer(t, buffer)
	if size > 0 {
		gl.BufferData(t, size, gl.Ptr(data), u)
	}
	gl.BindBuffer(t, 0)
	d.checkError("CreateBuffer")
	return buffer
}

func (d *GL) CreateRenderbuffer(format gpu.RenderbufferFormat, width, height int) uint32 {
	f := uint32(gl.DEPTH24_STENCIL8)
	switch format {
	case gpu.DepthComponent16:
		f = gl.DEPTH_COMPONENT16
	case gpu.RGBA8:
		f = gl.RGBA8
	}

	var rb uint32
	gl.GenRenderbuffers(1, &rb)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rb)
	gl.RenderbufferStorage(gl.RENDERBUFFER, f, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	d.checkError("CreateRenderbuffer")
	return rb
}

func (d *GL) CreateFramebuffer(color, depth uint32) (uint32, error) {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, color, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, depth)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &fb)
		return 0, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return fb, nil
}

// ClearTarget binds fb (0 for the window) and clears it to c.
func (d *GL) ClearTarget(fb uint32, width, height int, c mgl32.Vec4) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(c.X(), c.Y(), c.Z(), c.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// DrawMesh binds the mesh's buffers and texture and issues an indexed draw
// of its positions with whatever program is in use.
func (d *GL) DrawMesh(vao uint32, m *gpu.Mesh) {
	gl.BindVertexArray(vao)
	if tex := m.Texture(); tex != nil {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex.ID())
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.Vertices().ID())
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.Indices().ID())
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(m.IndexCount()), gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	d.checkError("DrawMesh")
}
