package gpu

import (
	"glres/internal/resource"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh groups the buffers and optional texture needed to draw one piece of
// geometry. It owns no native handle itself; realizing it realizes its
// parts, and marking it used marks them.
type Mesh struct {
	resource.Base

	vertices *Buffer
	indices  *Buffer
	texture  *Texture
	count    int
}

// NewMesh returns an unrealized mesh. tex may be nil.
func NewMesh(positions []mgl32.Vec3, indices []uint32, tex *Texture) *Mesh {
	return &Mesh{
		vertices: NewVertexBuffer(positions),
		indices:  NewIndexBuffer(indices),
		texture:  tex,
		count:    len(indices),
	}
}

func (m *Mesh) Vertices() *Buffer { return m.vertices }
func (m *Mesh) Indices() *Buffer  { return m.indices }
func (m *Mesh) Texture() *Texture { return m.texture }
func (m *Mesh) IndexCount() int   { return m.count }

// SetUsed marks the mesh and every part.
func (m *Mesh) SetUsed(used bool) {
	m.Base.SetUsed(used)
	m.vertices.SetUsed(used)
	m.indices.SetUsed(used)
	if m.texture != nil {
		m.texture.SetUsed(used)
	}
}

// Realize makes sure every part has an allocation under ctx.
func (m *Mesh) Realize(ctx *resource.Context, dev Device) {
	m.vertices.Realize(ctx, dev)
	m.indices.Realize(ctx, dev)
	if m.texture != nil {
		m.texture.Realize(ctx, dev)
	}
	if m.RealizedFor() != ctx {
		resource.RealizeFor(m, ctx)
	}
}

// Unrealize unrealizes the mesh and its buffers from whichever context
// each is realized for. A shared texture is left to its owner.
func (m *Mesh) Unrealize() {
	for _, r := range []resource.Resource{m, m.vertices, m.indices} {
		if ctx := r.RealizedFor(); ctx != nil {
			resource.Unrealize(r, ctx)
		}
	}
}

// Release has nothing to delete: the parts are swept on their own.
func (m *Mesh) Release(*resource.Context) {}

// Destroy destroys the mesh and its buffers. A shared texture is left to
// its owner.
func (m *Mesh) Destroy() {
	resource.Destroy(m)
	m.vertices.Destroy()
	m.indices.Destroy()
}

// Quad returns the positions and indices of a unit quad in the XY plane
// centered on the origin, transformed by model.
func Quad(model mgl32.Mat4) ([]mgl32.Vec3, []uint32) {
	corners := []mgl32.Vec3{
		{-0.5, -0.5, 0},
		{0.5, -0.5, 0},
		{0.5, 0.5, 0},
		{-0.5, 0.5, 0},
	}
	for i, c := range corners {
		corners[i] = mgl32.TransformCoordinate(c, model)
	}
	return corners, []uint32{0, 1, 2, 2, 3, 0}
}
