package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) < float64(eps)
}

func TestSetAspectRecomputesProjection(t *testing.T) {
	c := NewCamera(WithFov(float32(math.Pi/3)), WithAspect(1))
	before := c.ProjectionMatrix()

	c.SetAspect(2)
	after := c.ProjectionMatrix()
	if before == after {
		t.Fatal("projection unchanged after aspect change")
	}
	if !near(after[5]/after[0], 2, 1e-5) {
		t.Fatalf("focal ratio = %v, want 2", after[5]/after[0])
	}

	c.UpdateProjectionMatrix()
	if c.ProjectionMatrix() != after {
		t.Fatal("UpdateProjectionMatrix without changes altered the matrix")
	}
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	c := NewCamera(WithAspect(1.5))
	for _, bad := range []float32{0, -1, float32(math.Inf(1)), float32(math.NaN())} {
		c.SetAspect(bad)
		if c.Aspect() != 1.5 {
			t.Fatalf("SetAspect(%v) changed aspect to %v", bad, c.Aspect())
		}
	}
}

func TestUniformCarriesPosition(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3))
	u := c.Uniform()
	if u.CameraPosition != [3]float32{1, 2, 3} {
		t.Fatalf("uniform position = %v", u.CameraPosition)
	}
	if u.ViewProj != c.ViewProjectionMatrix() {
		t.Fatal("uniform view-projection differs from camera")
	}
	if got := len(u.Marshal()); got != 80 {
		t.Fatalf("marshalled size = %d, want 80", got)
	}
}

func TestOrbitControlsInitialPlacement(t *testing.T) {
	c := NewCamera(WithPosition(0, 2.2, 6))
	oc := NewOrbitControls(c, nil, WithOrbitTarget(0, 1, 0))

	if c.Target() != [3]float32{0, 1, 0} {
		t.Fatalf("camera target = %v, want (0, 1, 0)", c.Target())
	}
	r, az, el := oc.Spherical()
	wantR := float32(math.Sqrt(1.2*1.2 + 36))
	if !near(r, wantR, 1e-4) || !near(az, 0, 1e-5) || el <= 0 {
		t.Fatalf("spherical = (%v, %v, %v)", r, az, el)
	}

	oc.Update()
	if p := c.Position(); !near(p[1], 2.2, 1e-4) || !near(p[2], 6, 1e-4) {
		t.Fatalf("idle update moved camera to %v", p)
	}
}

func TestOrbitDampingConverges(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitControls(c, nil)
	if oc.DampingFactor() != 0.05 {
		t.Fatalf("default damping = %v, want 0.05", oc.DampingFactor())
	}

	oc.Rotate(1, 0)
	oc.Update()
	_, az, _ := oc.Spherical()
	if !near(az, 0.05, 1e-5) {
		t.Fatalf("first update azimuth = %v, want 0.05", az)
	}

	for i := 0; i < 1000; i++ {
		oc.Update()
	}
	_, az, _ = oc.Spherical()
	if !near(az, 1, 1e-3) {
		t.Fatalf("azimuth converged to %v, want 1", az)
	}
	if oc.Update() {
		t.Fatal("camera still moving after damping settled")
	}
}

func TestOrbitElevationClamped(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitControls(c, nil, WithDamping(0), WithElevationLimits(-0.5, 0.5))
	oc.Rotate(0, 3)
	oc.Update()
	if _, _, el := oc.Spherical(); el != 0.5 {
		t.Fatalf("elevation = %v, want clamp at 0.5", el)
	}
}

func TestOrbitZoomClamped(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitControls(c, nil, WithRadiusLimits(2, 20))

	oc.Zoom(0.5)
	oc.Update()
	if r, _, _ := oc.Spherical(); !near(r, 5, 1e-4) {
		t.Fatalf("radius = %v, want 5", r)
	}
	oc.Zoom(100)
	oc.Update()
	if r, _, _ := oc.Spherical(); r != 20 {
		t.Fatalf("radius = %v, want clamp at 20", r)
	}
}

func TestOrbitDragAndDispose(t *testing.T) {
	w := window.NewHeadlessWindow(window.WithSize(800, 600))
	c := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitControls(c, w, WithDamping(0))
	if w.ListenerCount() != 4 {
		t.Fatalf("listeners = %d, want 4", w.ListenerCount())
	}

	w.Dispatch(window.Event{Kind: window.EventPointerDown, Button: window.MouseButtonLeft, X: 100, Y: 100})
	w.Dispatch(window.Event{Kind: window.EventPointerMove, X: 400, Y: 100})
	w.Dispatch(window.Event{Kind: window.EventPointerUp, Button: window.MouseButtonLeft})
	if !oc.Update() {
		t.Fatal("drag did not move the camera")
	}
	_, az, _ := oc.Spherical()
	want := -2 * math.Pi * 300 / 600.0
	if !near(az, float32(want), 1e-4) {
		t.Fatalf("azimuth after drag = %v, want %v", az, want)
	}

	w.Dispatch(window.Event{Kind: window.EventPointerMove, X: 0, Y: 0})
	if oc.Update() {
		t.Fatal("pointer move without button held rotated the camera")
	}

	oc.Dispose()
	oc.Dispose()
	if w.ListenerCount() != 0 {
		t.Fatalf("listeners after dispose = %d, want 0", w.ListenerCount())
	}
}

func TestOrbitScrollZooms(t *testing.T) {
	w := window.NewHeadlessWindow()
	c := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitControls(c, w)

	w.Dispatch(window.Event{Kind: window.EventScroll, Delta: 1})
	oc.Update()
	if r, _, _ := oc.Spherical(); r >= 10 {
		t.Fatalf("scroll up radius = %v, want < 10", r)
	}
}

func TestCameraTargetAndUpOptions(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 5), WithTarget(1, 2, 3), WithUp(0, 0, 1))
	if c.Target() != [3]float32{1, 2, 3} {
		t.Fatalf("target = %v", c.Target())
	}
	if c.Up() != [3]float32{0, 0, 1} {
		t.Fatalf("up = %v", c.Up())
	}
}

func TestOrbitInputSpeeds(t *testing.T) {
	w := window.NewHeadlessWindow(window.WithSize(800, 600))
	c := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitControls(c, w, WithDamping(0), WithRotateSpeed(0.5), WithZoomSpeed(2))

	w.Dispatch(window.Event{Kind: window.EventPointerDown, Button: window.MouseButtonLeft, X: 100, Y: 100})
	w.Dispatch(window.Event{Kind: window.EventPointerMove, X: 400, Y: 100})
	w.Dispatch(window.Event{Kind: window.EventPointerUp, Button: window.MouseButtonLeft})
	w.Dispatch(window.Event{Kind: window.EventScroll, Delta: 1})
	oc.Update()

	r, az, _ := oc.Spherical()
	if want := float32(-math.Pi * 300 / 600.0); !near(az, want, 1e-4) {
		t.Fatalf("azimuth = %v, want %v", az, want)
	}
	if !near(r, 10*0.95*0.95, 1e-4) {
		t.Fatalf("radius = %v, want %v", r, 10*0.95*0.95)
	}
}
