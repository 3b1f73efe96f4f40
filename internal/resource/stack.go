package resource

// Binder makes a context's native state current on the calling thread.
// Contexts without a Binder are purely logical (tests, headless tools).
type Binder interface {
	MakeCurrent()
	DetachCurrent()
}

// Stack tracks which context native calls are currently valid against.
// Push and Pop nest as save/restore pairs.
//
// A Stack is not safe for concurrent use. Native contexts are bound to the
// thread driving them, so every context sharing a Stack must be driven from
// that one thread; give each render thread its own Stack.
type Stack struct {
	frames []*Context
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push makes ctx the current context.
func (s *Stack) Push(ctx *Context) {
	prev := s.Current()
	s.frames = append(s.frames, ctx)
	if prev != ctx && ctx.binder != nil {
		ctx.binder.MakeCurrent()
	}
}

// Pop removes the top context and restores the previous one, if any.
// Popping an empty stack panics.
func (s *Stack) Pop() {
	if len(s.frames) == 0 {
		panic("resource: pop of empty context stack")
	}
	top := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]

	prev := s.Current()
	switch {
	case prev == top:
	case prev != nil:
		if prev.binder != nil {
			prev.binder.MakeCurrent()
		}
	case top.binder != nil:
		top.binder.DetachCurrent()
	}
}

// Current returns the top of the stack, or nil when it is empty.
func (s *Stack) Current() *Context {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of pushed contexts.
func (s *Stack) Depth() int {
	return len(s.frames)
}
