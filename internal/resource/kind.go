package resource

import "fmt"

// Kind selects the native delete primitive that releases a handle.
type Kind int

const (
	KindTexture Kind = iota
	KindBuffer
	KindFramebuffer
	KindRenderbuffer
)

func (k Kind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindBuffer:
		return "buffer"
	case KindFramebuffer:
		return "framebuffer"
	case KindRenderbuffer:
		return "renderbuffer"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Deleter is the native graphics API seen by the registry: one delete
// primitive per Kind. Every call is only valid while the context that owns
// id is current.
type Deleter interface {
	DeleteTexture(id uint32)
	DeleteBuffer(id uint32)
	DeleteFramebuffer(id uint32)
	DeleteRenderbuffer(id uint32)
}

func (k Kind) delete(d Deleter, id uint32) {
	switch k {
	case KindTexture:
		d.DeleteTexture(id)
	case KindBuffer:
		d.DeleteBuffer(id)
	case KindFramebuffer:
		d.DeleteFramebuffer(id)
	case KindRenderbuffer:
		d.DeleteRenderbuffer(id)
	default:
		panic(fmt.Sprintf("resource: delete of unknown kind %d (id %d)", int(k), id))
	}
}

// lazyDelete is a native deletion deferred until its context is current.
type lazyDelete struct {
	kind Kind
	id   uint32
}
