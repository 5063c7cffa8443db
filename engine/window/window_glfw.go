package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
	closed  bool
}

var _ windowPlatform = &glfwWindow{}

// newPlatformWindow creates the GLFW window, wires its callbacks into the event registry
// and stores it as the window platform.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(sizeLimit(w.minWidth), sizeLimit(w.minHeight), sizeLimit(w.maxWidth), sizeLimit(w.maxHeight))

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.platform = gw

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.requestClose()
		}
	})

	win.SetCloseCallback(func(_ *glfw.Window) {
		gw.requestClose()
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		xpos, ypos := win.GetCursorPos()
		w.dispatch(Event{Kind: EventScroll, X: float32(xpos), Y: float32(ypos), Delta: float32(yoff)})
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		btn, ok := mouseButton(button)
		if !ok {
			return
		}
		xpos, ypos := win.GetCursorPos()
		e := Event{X: float32(xpos), Y: float32(ypos), Button: btn}
		switch action {
		case glfw.Press:
			e.Kind = EventPointerDown
		case glfw.Release:
			e.Kind = EventPointerUp
		default:
			return
		}
		w.dispatch(e)
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.dispatch(Event{Kind: EventPointerMove, X: float32(xpos), Y: float32(ypos)})
	})

	// Framebuffer size is the content size in pixels. On high-DPI displays it differs from the
	// window size, and the renderer needs pixel dimensions for surface configuration.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.setSize(width, height)
		w.dispatch(Event{Kind: EventResize, Width: width, Height: height})
	})

	win.SetSizeCallback(func(_ *glfw.Window, _, _ int) {
		fbWidth, fbHeight := win.GetFramebufferSize()
		w.setSize(fbWidth, fbHeight)
		w.dispatch(Event{Kind: EventWindowResize, Width: fbWidth, Height: fbHeight})
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.setSize(fbWidth, fbHeight)

	return nil
}

func sizeLimit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

func mouseButton(b glfw.MouseButton) (MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return MouseButtonMiddle, true
	}
	return 0, false
}

// requestClose stops the message loop and notifies close listeners once.
func (gw *glfwWindow) requestClose() {
	if !gw.running {
		return
	}
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.parent.dispatch(Event{Kind: EventClose})
}

// surfaceDescriptor uses the wgpuglfw bridge, which has per-platform implementations
// (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func (gw *glfwWindow) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	if gw.closed {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func (gw *glfwWindow) isRunning() bool {
	return !gw.closed && gw.running && !gw.window.ShouldClose()
}

// pollEvents polls GLFW without blocking. Callbacks run on the calling thread.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (gw *glfwWindow) pollEvents() bool {
	glfw.PollEvents()
	return gw.isRunning()
}

// close destroys the GLFW window and terminates the GLFW library. Closing twice is a no-op.
func (gw *glfwWindow) close() error {
	if gw.closed {
		return nil
	}
	gw.running = false
	gw.closed = true
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}
