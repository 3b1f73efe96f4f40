// Package gpu holds the concrete device-backed resource kinds. Each kind
// allocates through a Device and releases through its context's delete
// queue.
package gpu

import (
	"image"

	"glres/internal/resource"
)

// Filter is a texture sampling filter.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

// Wrap is a texture coordinate wrap mode.
type Wrap int

const (
	WrapClampToEdge Wrap = iota
	WrapRepeat
)

// TextureParams describes how a texture is sampled.
type TextureParams struct {
	MinFilter Filter
	MagFilter Filter
	Wrap      Wrap
	Mipmaps   bool
}

// BufferTarget is the binding point a buffer is created for.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// BufferUsage is the expected update pattern of a buffer's contents.
type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
)

// RenderbufferFormat is the storage format of a renderbuffer.
type RenderbufferFormat int

const (
	Depth24Stencil8 RenderbufferFormat = iota
	DepthComponent16
	RGBA8
)

// Device performs native allocations. Every call is only valid while the
// context the result will belong to is current; the kinds in this package
// push their context around each call.
type Device interface {
	resource.Deleter

	CreateTexture(img *image.RGBA, params TextureParams) uint32
	CreateBuffer(target BufferTarget, usage BufferUsage, size int, data any) uint32
	CreateRenderbuffer(format RenderbufferFormat, width, height int) uint32
	// CreateFramebuffer attaches color and depth. On failure nothing is
	// left allocated.
	CreateFramebuffer(color, depth uint32) (uint32, error)
}
