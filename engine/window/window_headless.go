package window

import "github.com/cogentcore/webgpu/wgpu"

// HeadlessWindow is a Window without a display. It is driven explicitly by its owner:
// Step fires pending frames, SetSize resizes the content box and Dispatch injects events.
type HeadlessWindow interface {
	Window

	// Step fires every frame callback pending before the call.
	//
	// Parameters:
	//   - deltaTime: seconds passed to each callback
	//
	// Returns:
	//   - int: the number of callbacks that fired
	Step(deltaTime float32) int

	// SetSize changes the content size and notifies resize listeners the way a desktop window does:
	// EventResize followed by EventWindowResize.
	//
	// Parameters:
	//   - width: new width in pixels
	//   - height: new height in pixels
	SetSize(width, height int)

	// Dispatch delivers an event to the listeners registered for its kind.
	//
	// Parameters:
	//   - e: the event to deliver
	Dispatch(e Event)

	// PendingFrames returns the number of frame requests that will fire on the next Step.
	//
	// Returns:
	//   - int: pending request count
	PendingFrames() int
}

type headlessPlatform struct {
	running bool
}

var _ windowPlatform = &headlessPlatform{}

func (h *headlessPlatform) surfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (h *headlessPlatform) isRunning() bool                           { return h.running }
func (h *headlessPlatform) pollEvents() bool                          { return h.running }

func (h *headlessPlatform) close() error {
	h.running = false
	return nil
}

type headlessWindow struct {
	*engineWindow
}

var _ HeadlessWindow = &headlessWindow{}

// NewHeadlessWindow creates a window with no platform backing.
//
// Parameters:
//   - options: functional options to configure the window; only the size options apply
//
// Returns:
//   - HeadlessWindow: the window
func NewHeadlessWindow(options ...WindowBuilderOption) HeadlessWindow {
	w := newEngineWindow(options...)
	w.platform = &headlessPlatform{running: true}
	return &headlessWindow{engineWindow: w}
}

func (h *headlessWindow) Step(deltaTime float32) int {
	return h.frames.flush(deltaTime)
}

func (h *headlessWindow) SetSize(width, height int) {
	h.setSize(width, height)
	h.dispatch(Event{Kind: EventResize, Width: width, Height: height})
	h.dispatch(Event{Kind: EventWindowResize, Width: width, Height: height})
}

func (h *headlessWindow) Dispatch(e Event) {
	h.dispatch(e)
}

func (h *headlessWindow) PendingFrames() int {
	return h.frames.pendingCount()
}
