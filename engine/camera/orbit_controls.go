package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// OrbitControls orbits a Camera around a target point in response to window pointer input.
// Left-drag rotates, the wheel zooms. Rotation is damped: input accumulates into pending deltas
// that Update applies a fraction of each frame, so the camera glides to rest after the pointer stops.
type OrbitControls interface {
	// Target returns the point the camera orbits around.
	//
	// Returns:
	//   - [3]float32: the orbit target
	Target() [3]float32

	// SetTarget moves the orbit target. The camera keeps its current position until the next Update.
	//
	// Parameters:
	//   - x, y, z: the new target
	SetTarget(x, y, z float32)

	// Spherical returns the current orbit coordinates relative to the target.
	//
	// Returns:
	//   - radius: distance from the target
	//   - azimuth: horizontal angle around +Y in radians, zero on +Z
	//   - elevation: angle above the horizontal plane in radians
	Spherical() (radius, azimuth, elevation float32)

	// DampingFactor returns the fraction of pending rotation applied per Update.
	//
	// Returns:
	//   - float32: the damping factor in (0, 1], or 0 when damping is disabled
	DampingFactor() float32

	// Rotate adds rotation input in radians, as a drag would.
	//
	// Parameters:
	//   - azimuth: horizontal rotation
	//   - elevation: vertical rotation
	Rotate(azimuth, elevation float32)

	// Zoom scales the orbit radius on the next Update. Values below 1 move the camera closer.
	//
	// Parameters:
	//   - scale: radius multiplier
	Zoom(scale float32)

	// Update applies pending input and writes the new placement to the camera.
	//
	// Returns:
	//   - bool: true if the camera moved
	Update() bool

	// Dispose removes every window listener the controls registered. Further input is ignored.
	Dispose()
}

type orbitControlsImpl struct {
	mu *sync.Mutex

	camera Camera
	mount  window.Window

	target [3]float32

	radius    float32
	azimuth   float32
	elevation float32

	// pending input, drained by Update
	azimuthDelta   float32
	elevationDelta float32
	radiusScale    float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	rotateSpeed float32
	zoomSpeed   float32
	damping     float32

	dragging bool
	lastX    float32
	lastY    float32

	listeners []window.ListenerID
	disposed  bool
}

var _ OrbitControls = &orbitControlsImpl{}

// NewOrbitControls binds orbit controls to a camera and a window.
// The initial orbit is derived from the camera's position relative to the target.
// A nil window yields controls that only respond to Rotate and Zoom.
//
// Parameters:
//   - cam: the camera to drive
//   - mount: the window whose pointer events steer the camera
//   - options: functional options to configure the controls
//
// Returns:
//   - OrbitControls: the bound controls
func NewOrbitControls(cam Camera, mount window.Window, options ...OrbitControlsBuilderOption) OrbitControls {
	oc := &orbitControlsImpl{
		mu:           &sync.Mutex{},
		camera:       cam,
		mount:        mount,
		radiusScale:  1,
		minRadius:    0.5,
		maxRadius:    200,
		minElevation: -float32(math.Pi/2 - 0.01),
		maxElevation: float32(math.Pi/2 - 0.01),
		rotateSpeed:  1,
		zoomSpeed:    1,
		damping:      0.05,
	}
	for _, option := range options {
		option(oc)
	}

	oc.syncFromCamera()
	cam.LookAt(oc.target[0], oc.target[1], oc.target[2])

	if mount != nil {
		oc.listeners = []window.ListenerID{
			mount.AddListener(window.EventPointerDown, oc.onPointerDown),
			mount.AddListener(window.EventPointerMove, oc.onPointerMove),
			mount.AddListener(window.EventPointerUp, oc.onPointerUp),
			mount.AddListener(window.EventScroll, oc.onScroll),
		}
	}
	return oc
}

func (oc *orbitControlsImpl) Target() [3]float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControlsImpl) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = [3]float32{x, y, z}
	oc.syncFromCamera()
}

func (oc *orbitControlsImpl) Spherical() (radius, azimuth, elevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius, oc.azimuth, oc.elevation
}

func (oc *orbitControlsImpl) DampingFactor() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.damping
}

func (oc *orbitControlsImpl) Rotate(azimuth, elevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.disposed {
		return
	}
	oc.azimuthDelta += azimuth
	oc.elevationDelta += elevation
}

func (oc *orbitControlsImpl) Zoom(scale float32) {
	if scale <= 0 {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.disposed {
		return
	}
	oc.radiusScale *= scale
}

func (oc *orbitControlsImpl) Update() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if oc.damping > 0 {
		oc.azimuth += oc.azimuthDelta * oc.damping
		oc.elevation += oc.elevationDelta * oc.damping
		oc.azimuthDelta *= 1 - oc.damping
		oc.elevationDelta *= 1 - oc.damping
	} else {
		oc.azimuth += oc.azimuthDelta
		oc.elevation += oc.elevationDelta
		oc.azimuthDelta = 0
		oc.elevationDelta = 0
	}
	oc.elevation = common.Clamp(oc.elevation, oc.minElevation, oc.maxElevation)
	oc.radius = common.Clamp(oc.radius*oc.radiusScale, oc.minRadius, oc.maxRadius)
	oc.radiusScale = 1

	cosElev := float32(math.Cos(float64(oc.elevation)))
	sinElev := float32(math.Sin(float64(oc.elevation)))
	cosAzim := float32(math.Cos(float64(oc.azimuth)))
	sinAzim := float32(math.Sin(float64(oc.azimuth)))

	next := [3]float32{
		oc.target[0] + oc.radius*cosElev*sinAzim,
		oc.target[1] + oc.radius*sinElev,
		oc.target[2] + oc.radius*cosElev*cosAzim,
	}
	prev := oc.camera.Position()
	moved := common.Length3(common.Sub3(next, prev)) > 1e-6 || oc.camera.Target() != oc.target

	oc.camera.SetPosition(next[0], next[1], next[2])
	oc.camera.LookAt(oc.target[0], oc.target[1], oc.target[2])
	return moved
}

func (oc *orbitControlsImpl) Dispose() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.disposed {
		return
	}
	oc.disposed = true
	oc.dragging = false
	if oc.mount != nil {
		for _, id := range oc.listeners {
			oc.mount.RemoveListener(id)
		}
	}
	oc.listeners = nil
}

// syncFromCamera derives spherical coordinates from the camera position. Caller must hold the mutex.
func (oc *orbitControlsImpl) syncFromCamera() {
	offset := common.Sub3(oc.camera.Position(), oc.target)
	oc.radius = common.Length3(offset)
	if oc.radius < 1e-6 {
		oc.radius = oc.minRadius
		oc.azimuth = 0
		oc.elevation = 0
		return
	}
	oc.azimuth = float32(math.Atan2(float64(offset[0]), float64(offset[2])))
	oc.elevation = float32(math.Asin(float64(common.Clamp(offset[1]/oc.radius, -1, 1))))
}

func (oc *orbitControlsImpl) viewportHeight() float32 {
	if oc.mount == nil || oc.mount.Height() <= 0 {
		return 1
	}
	return float32(oc.mount.Height())
}

func (oc *orbitControlsImpl) onPointerDown(e window.Event) {
	if e.Button != window.MouseButtonLeft {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.disposed {
		return
	}
	oc.dragging = true
	oc.lastX, oc.lastY = e.X, e.Y
}

// onPointerMove converts drag distance to rotation: a drag across the full viewport height is one turn.
func (oc *orbitControlsImpl) onPointerMove(e window.Event) {
	height := oc.viewportHeight()

	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.dragging || oc.disposed {
		return
	}
	dx := e.X - oc.lastX
	dy := e.Y - oc.lastY
	oc.lastX, oc.lastY = e.X, e.Y

	oc.azimuthDelta -= 2 * math.Pi * dx / height * oc.rotateSpeed
	oc.elevationDelta += 2 * math.Pi * dy / height * oc.rotateSpeed
}

func (oc *orbitControlsImpl) onPointerUp(e window.Event) {
	if e.Button != window.MouseButtonLeft {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.dragging = false
}

func (oc *orbitControlsImpl) onScroll(e window.Event) {
	if e.Delta == 0 {
		return
	}
	step := float32(math.Pow(0.95, float64(oc.zoomSpeed)))

	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.disposed {
		return
	}
	if e.Delta > 0 {
		oc.radiusScale *= step
	} else {
		oc.radiusScale /= step
	}
}
