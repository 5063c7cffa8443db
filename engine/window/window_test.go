package window

import "testing"

type testSurface struct{ name string }

func (s *testSurface) Label() string { return s.name }

func TestChildren(t *testing.T) {
	w := NewHeadlessWindow()
	a, b := &testSurface{"a"}, &testSurface{"b"}

	w.AppendChild(a)
	w.AppendChild(b)
	w.AppendChild(a)
	if got := len(w.Children()); got != 2 {
		t.Fatalf("children = %d, want 2", got)
	}
	if !w.Contains(a) {
		t.Fatal("expected a to be a child")
	}
	if !w.RemoveChild(a) {
		t.Fatal("RemoveChild(a) = false, want true")
	}
	if w.RemoveChild(a) {
		t.Fatal("second RemoveChild(a) = true, want false")
	}
	if w.Contains(a) || !w.Contains(b) {
		t.Fatalf("children after remove = %v", w.Children())
	}
}

func TestListenersByKind(t *testing.T) {
	w := NewHeadlessWindow()
	var resized, moved int
	id := w.AddListener(EventResize, func(Event) { resized++ })
	w.AddListener(EventPointerMove, func(Event) { moved++ })

	w.Dispatch(Event{Kind: EventResize})
	w.Dispatch(Event{Kind: EventPointerMove})
	w.Dispatch(Event{Kind: EventPointerMove})
	if resized != 1 || moved != 2 {
		t.Fatalf("resized=%d moved=%d, want 1 and 2", resized, moved)
	}

	w.RemoveListener(id)
	w.RemoveListener(id)
	w.Dispatch(Event{Kind: EventResize})
	if resized != 1 {
		t.Fatalf("removed listener fired, resized=%d", resized)
	}
	if got := w.ListenerCount(); got != 1 {
		t.Fatalf("ListenerCount = %d, want 1", got)
	}
}

func TestListenerRemovedDuringDispatch(t *testing.T) {
	w := NewHeadlessWindow()
	var second ListenerID
	fired := 0
	w.AddListener(EventScroll, func(Event) { w.RemoveListener(second) })
	second = w.AddListener(EventScroll, func(Event) { fired++ })

	w.Dispatch(Event{Kind: EventScroll, Delta: 1})
	if fired != 0 {
		t.Fatalf("listener removed by an earlier listener still fired %d times", fired)
	}
}

func TestSetSizeNotifiesBothKinds(t *testing.T) {
	w := NewHeadlessWindow(WithSize(800, 600))
	var kinds []EventKind
	w.AddListener(EventResize, func(e Event) { kinds = append(kinds, e.Kind) })
	w.AddListener(EventWindowResize, func(e Event) { kinds = append(kinds, e.Kind) })

	w.SetSize(1024, 768)
	if w.Width() != 1024 || w.Height() != 768 {
		t.Fatalf("size = %dx%d, want 1024x768", w.Width(), w.Height())
	}
	if len(kinds) != 2 || kinds[0] != EventResize || kinds[1] != EventWindowResize {
		t.Fatalf("event kinds = %v", kinds)
	}
}

func TestFrameRequestsFireOnce(t *testing.T) {
	w := NewHeadlessWindow()
	count := 0
	w.RequestFrame(func(float32) { count++ })

	if fired := w.Step(1.0 / 60); fired != 1 {
		t.Fatalf("Step fired %d, want 1", fired)
	}
	if fired := w.Step(1.0 / 60); fired != 0 {
		t.Fatalf("second Step fired %d, want 0", fired)
	}
	if count != 1 {
		t.Fatalf("callback ran %d times, want 1", count)
	}
}

func TestFrameRequestedDuringFlushRunsNextStep(t *testing.T) {
	w := NewHeadlessWindow()
	count := 0
	var loop FrameCallback
	loop = func(float32) {
		w.RequestFrame(loop)
		count++
	}
	w.RequestFrame(loop)

	for i := 0; i < 5; i++ {
		w.Step(0.016)
	}
	if count != 5 {
		t.Fatalf("loop ran %d times over 5 steps, want 5", count)
	}
	if w.PendingFrames() != 1 {
		t.Fatalf("pending = %d, want 1", w.PendingFrames())
	}
}

func TestCancelFrame(t *testing.T) {
	w := NewHeadlessWindow()
	count := 0
	h := w.RequestFrame(func(float32) { count++ })
	w.CancelFrame(h)
	w.CancelFrame(h)
	w.Step(0.016)
	if count != 0 {
		t.Fatalf("cancelled callback ran %d times", count)
	}
	if w.PendingFrames() != 0 {
		t.Fatalf("pending = %d, want 0", w.PendingFrames())
	}
}

func TestHeadlessClose(t *testing.T) {
	w := NewHeadlessWindow()
	if !w.IsRunning() {
		t.Fatal("new headless window should be running")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if w.IsRunning() {
		t.Fatal("closed window still running")
	}
	if w.SurfaceDescriptor() != nil {
		t.Fatal("headless window must not expose a surface descriptor")
	}
	// the loop must return immediately once closed
	w.ProcessMessages()
}

func TestBuilderOptions(t *testing.T) {
	w := newEngineWindow(
		WithTitle("demo"),
		WithSize(640, 480),
		WithMinSize(100, 80),
		WithMaxSize(1920, 0),
	)
	if w.title != "demo" {
		t.Fatalf("title = %q, want demo", w.title)
	}
	if w.width != 640 || w.height != 480 {
		t.Fatalf("size = %dx%d, want 640x480", w.width, w.height)
	}
	if w.minWidth != 100 || w.minHeight != 80 || w.maxWidth != 1920 || w.maxHeight != 0 {
		t.Fatalf("limits = min %dx%d max %dx%d", w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	}
}
