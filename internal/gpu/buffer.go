package gpu

import (
	"glres/internal/resource"

	"github.com/go-gl/mathgl/mgl32"
)

// Buffer is a vertex or index buffer.
type Buffer struct {
	resource.Base

	target BufferTarget
	usage  BufferUsage
	size   int
	data   any
	id     uint32
}

// NewVertexBuffer returns an unrealized array buffer holding positions.
func NewVertexBuffer(positions []mgl32.Vec3) *Buffer {
	return &Buffer{
		target: ArrayBuffer,
		usage:  StaticDraw,
		size:   len(positions) * 3 * 4,
		data:   positions,
	}
}

// NewIndexBuffer returns an unrealized element buffer holding indices.
func NewIndexBuffer(indices []uint32) *Buffer {
	return &Buffer{
		target: ElementArrayBuffer,
		usage:  StaticDraw,
		size:   len(indices) * 4,
		data:   indices,
	}
}

func (b *Buffer) ID() uint32           { return b.id }
func (b *Buffer) Target() BufferTarget { return b.target }

// Size returns the buffer size in bytes.
func (b *Buffer) Size() int { return b.size }

// Realize creates the buffer for ctx if it has no allocation there yet.
func (b *Buffer) Realize(ctx *resource.Context, dev Device) {
	if b.RealizedFor() == ctx {
		return
	}
	ctx.Do(func() {
		b.id = dev.CreateBuffer(b.target, b.usage, b.size, b.data)
		resource.RealizeFor(b, ctx)
	})
}

func (b *Buffer) Release(ctx *resource.Context) {
	ctx.RequestDelete(resource.KindBuffer, b.id)
	b.id = 0
}

// Destroy drops the CPU-side data. The buffer must be unrealized.
func (b *Buffer) Destroy() {
	resource.Destroy(b)
	b.data = nil
}
