package camera

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = [3]float32{x, y, z}
	}
}

// WithTarget sets the world-space point the camera looks at.
//
// Parameters:
//   - x, y, z: target components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's look-at target
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = [3]float32{x, y, z}
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = [3]float32{x, y, z}
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}
