package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32
	up       [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

// Camera defines a perspective camera.
// The camera owns its placement (position, look-at target, up vector) and its projection
// settings, and keeps view, projection and view-projection matrices current whenever either changes.
type Camera interface {
	// Position returns the world-space camera position.
	//
	// Returns:
	//   - [3]float32: the camera position
	Position() [3]float32

	// Target returns the world-space point the camera looks at.
	//
	// Returns:
	//   - [3]float32: the look-at target
	Target() [3]float32

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - [3]float32: up vector components
	Up() [3]float32

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Uniform returns the camera state packed for GPU upload.
	//
	// Returns:
	//   - GPUCameraUniform: view-projection matrix and world position
	Uniform() GPUCameraUniform

	// SetPosition moves the camera and recomputes the view matrix.
	//
	// Parameters:
	//   - x, y, z: world-space position
	SetPosition(x, y, z float32)

	// LookAt points the camera at a world-space target and recomputes the view matrix.
	//
	// Parameters:
	//   - x, y, z: world-space target
	LookAt(x, y, z float32)

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - x, y, z: up vector components
	SetUp(x, y, z float32)

	// SetFov sets the vertical field of view in radians and recomputes the projection matrix.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes the projection matrix.
	// Non-positive ratios are ignored.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes the projection matrix.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes the projection matrix.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// UpdateProjectionMatrix recomputes the projection matrix from the current settings.
	// Calling it without changing any setting leaves the matrix unchanged.
	UpdateProjectionMatrix()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new perspective Camera.
// Defaults: 45° vertical FOV, aspect 1, near 0.1, far 100, positioned at (0, 0, 5) looking at the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: [3]float32{0, 0, 5},
		up:       [3]float32{0, 1, 0},
		fov:      45.0 * (math.Pi / 180.0),
		aspect:   1.0,
		near:     0.1,
		far:      100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateView()
	c.updateProjection()
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		ViewProj:       c.viewProjectionMatrix,
		CameraPosition: c.position,
	}
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = [3]float32{x, y, z}
	c.updateView()
}

func (c *cameraImpl) LookAt(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = [3]float32{x, y, z}
	c.updateView()
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateView()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateProjection()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 || math.IsNaN(float64(aspect)) || math.IsInf(float64(aspect), 0) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateProjection()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateProjection()
}

func (c *cameraImpl) UpdateProjectionMatrix() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateProjection()
}

// updateView recalculates the view and view-projection matrices. Caller must hold the mutex.
func (c *cameraImpl) updateView() {
	common.LookAt(c.viewMatrix[:], c.position, c.target, c.up)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}

// updateProjection recalculates the projection and view-projection matrices. Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
