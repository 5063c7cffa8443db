package window

import (
	"runtime"
	"sync"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
)

// Surface is a drawable attached to a Window as a child.
// The window only tracks identity; the renderer that created the surface owns its GPU resources.
type Surface interface {
	// Label returns a debug name for the surface.
	Label() string
}

// Window is a mount target for rendering surfaces.
// It reports its content-box size, owns the list of attached surfaces, dispatches
// resize and pointer events to registered listeners, and schedules per-refresh frame callbacks.
type Window interface {
	// Width returns the current content width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current content height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// Headless windows return nil.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// AppendChild attaches a surface to the window. Appending a surface that is already a child is a no-op.
	//
	// Parameters:
	//   - s: the surface to attach
	AppendChild(s Surface)

	// RemoveChild detaches a surface from the window.
	//
	// Parameters:
	//   - s: the surface to detach
	//
	// Returns:
	//   - bool: true if the surface was a child and has been removed
	RemoveChild(s Surface) bool

	// Contains reports whether the surface is currently a child of the window.
	//
	// Parameters:
	//   - s: the surface to look up
	//
	// Returns:
	//   - bool: true if s is attached
	Contains(s Surface) bool

	// Children returns a copy of the attached surfaces in attach order.
	//
	// Returns:
	//   - []Surface: the attached surfaces
	Children() []Surface

	// AddListener registers a callback for one kind of window event.
	//
	// Parameters:
	//   - kind: the event kind to listen for
	//   - callback: function invoked with each matching event
	//
	// Returns:
	//   - ListenerID: handle for RemoveListener
	AddListener(kind EventKind, callback func(Event)) ListenerID

	// RemoveListener unregisters a callback. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the handle returned by AddListener
	RemoveListener(id ListenerID)

	// ListenerCount returns the number of registered listeners across all event kinds.
	//
	// Returns:
	//   - int: registered listener count
	ListenerCount() int

	// RequestFrame schedules a callback for the next display refresh.
	// Each request fires at most once; callers re-request to keep a loop alive.
	//
	// Parameters:
	//   - callback: function receiving the seconds elapsed since the previous refresh
	//
	// Returns:
	//   - FrameHandle: handle for CancelFrame
	RequestFrame(callback FrameCallback) FrameHandle

	// CancelFrame cancels a pending frame request. Handles that already fired are ignored.
	//
	// Parameters:
	//   - handle: the handle returned by RequestFrame
	CancelFrame(handle FrameHandle)

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// ProcessMessages runs the window message loop, firing pending frame callbacks once per iteration.
	// Blocks until the window is closed.
	ProcessMessages()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error
}

// windowPlatform is the per-platform half of a window.
type windowPlatform interface {
	surfaceDescriptor() *wgpu.SurfaceDescriptor
	isRunning() bool
	pollEvents() bool
	close() error
}

// engineWindow holds the platform-independent window state.
type engineWindow struct {
	mu *sync.Mutex

	// title is the window title displayed in the title bar.
	title string

	// minWidth, minHeight, maxWidth and maxHeight bound resizing on platforms that support size limits.
	// Zero means unbounded.
	minWidth  int
	minHeight int
	maxWidth  int
	maxHeight int

	// width and height are the current content size in pixels.
	width  int
	height int

	children  []Surface
	listeners *listenerRegistry
	frames    *frameScheduler
	lastFrame time.Time

	platform windowPlatform
}

var _ Window = &engineWindow{}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		mu:        &sync.Mutex{},
		title:     "Oxy Viewer",
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
		listeners: newListenerRegistry(),
		frames:    newFrameScheduler(),
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// NewWindow creates and shows a GLFW-backed window.
// Must be called from the main goroutine; the OS thread is locked for the window's lifetime.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if GLFW could not create the window
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

func (w *engineWindow) setSize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width = width
	w.height = height
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.platform == nil {
		return nil
	}
	return w.platform.surfaceDescriptor()
}

func (w *engineWindow) AppendChild(s Surface) {
	if s == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range w.children {
		if c == s {
			return
		}
	}
	w.children = append(w.children, s)
}

func (w *engineWindow) RemoveChild(s Surface) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, c := range w.children {
		if c == s {
			w.children = append(w.children[:i], w.children[i+1:]...)
			return true
		}
	}
	return false
}

func (w *engineWindow) Contains(s Surface) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range w.children {
		if c == s {
			return true
		}
	}
	return false
}

func (w *engineWindow) Children() []Surface {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Surface, len(w.children))
	copy(out, w.children)
	return out
}

func (w *engineWindow) AddListener(kind EventKind, callback func(Event)) ListenerID {
	return w.listeners.add(kind, callback)
}

func (w *engineWindow) RemoveListener(id ListenerID) {
	w.listeners.remove(id)
}

func (w *engineWindow) ListenerCount() int {
	return w.listeners.count()
}

func (w *engineWindow) RequestFrame(callback FrameCallback) FrameHandle {
	return w.frames.request(callback)
}

func (w *engineWindow) CancelFrame(handle FrameHandle) {
	w.frames.cancel(handle)
}

func (w *engineWindow) IsRunning() bool {
	if w.platform == nil {
		return false
	}
	return w.platform.isRunning()
}

func (w *engineWindow) Close() error {
	if w.platform == nil {
		return nil
	}
	return w.platform.close()
}

func (w *engineWindow) ProcessMessages() {
	w.lastFrame = time.Now()
	for w.IsRunning() {
		if ok := w.platform.pollEvents(); !ok {
			break
		}

		now := time.Now()
		dt := float32(now.Sub(w.lastFrame).Seconds())
		w.lastFrame = now
		w.frames.flush(dt)

		runtime.Gosched()
	}
}

// dispatch delivers an event to every listener registered for its kind.
func (w *engineWindow) dispatch(e Event) {
	w.listeners.dispatch(e)
}
