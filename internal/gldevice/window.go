package gldevice

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window binds a glfw window's GL context for a resource.Context.
type Window struct {
	*glfw.Window
}

func (w Window) MakeCurrent() {
	w.MakeContextCurrent()
}

func (w Window) DetachCurrent() {
	glfw.DetachCurrentContext()
}

// OpenWindow creates a GL 4.1 core window. share, when non-nil, is the
// window whose objects the new context shares. visible=false gives a
// hidden window usable as an offscreen context.
func OpenWindow(width, height int, title string, visible bool, share *glfw.Window) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(width, height, title, nil, share)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, err
	}

	// Disable V-Sync; the frame limiter paces the loop
	glfw.SwapInterval(0)
	glfw.DetachCurrentContext()

	return window, nil
}
