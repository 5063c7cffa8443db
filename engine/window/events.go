package window

import (
	"sort"
	"sync"
)

// EventKind identifies the kind of window event a listener receives.
type EventKind int

const (
	// EventResize fires when the content (framebuffer) size changes.
	EventResize EventKind = iota

	// EventWindowResize fires when the window frame size changes. Platforms without a
	// framebuffer watcher only emit this one.
	EventWindowResize

	// EventPointerDown fires when a mouse button is pressed.
	EventPointerDown

	// EventPointerMove fires when the cursor moves within the window.
	EventPointerMove

	// EventPointerUp fires when a mouse button is released.
	EventPointerUp

	// EventScroll fires for mouse wheel input. Positive delta scrolls up.
	EventScroll

	// EventClose fires once when the window is asked to close.
	EventClose
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Event is a single window event. Fields that do not apply to the kind are zero.
type Event struct {
	Kind   EventKind
	X, Y   float32
	Button MouseButton
	Delta  float32
	Width  int
	Height int
}

// ListenerID identifies a registered listener.
type ListenerID uint64

type listener struct {
	kind     EventKind
	callback func(Event)
}

// listenerRegistry stores listeners and dispatches events in registration order.
type listenerRegistry struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners map[ListenerID]listener
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{listeners: make(map[ListenerID]listener)}
}

func (r *listenerRegistry) add(kind EventKind, callback func(Event)) ListenerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.listeners[r.nextID] = listener{kind: kind, callback: callback}
	return r.nextID
}

func (r *listenerRegistry) remove(id ListenerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listeners, id)
}

func (r *listenerRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

// dispatch calls matching listeners outside the lock so callbacks may add or remove listeners.
func (r *listenerRegistry) dispatch(e Event) {
	r.mu.Lock()
	ids := make([]ListenerID, 0, len(r.listeners))
	for id, l := range r.listeners {
		if l.kind == e.Kind && l.callback != nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	r.mu.Unlock()

	for _, id := range ids {
		r.mu.Lock()
		l, ok := r.listeners[id]
		r.mu.Unlock()
		if ok {
			l.callback(e)
		}
	}
}
