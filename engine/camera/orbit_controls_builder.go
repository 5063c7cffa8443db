package camera

// OrbitControlsBuilderOption is a functional option for configuring orbit controls.
type OrbitControlsBuilderOption func(*orbitControlsImpl)

// WithOrbitTarget sets the point the camera orbits around.
//
// Parameters:
//   - x, y, z: the orbit target
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithOrbitTarget(x, y, z float32) OrbitControlsBuilderOption {
	return func(oc *orbitControlsImpl) {
		oc.target = [3]float32{x, y, z}
	}
}

// WithDamping sets the fraction of pending rotation applied per Update.
// Zero disables damping so input applies immediately.
//
// Parameters:
//   - factor: damping factor in [0, 1]
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithDamping(factor float32) OrbitControlsBuilderOption {
	return func(oc *orbitControlsImpl) {
		if factor < 0 {
			factor = 0
		}
		if factor > 1 {
			factor = 1
		}
		oc.damping = factor
	}
}

// WithRotateSpeed scales drag-to-rotation conversion.
//
// Parameters:
//   - speed: rotation multiplier
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithRotateSpeed(speed float32) OrbitControlsBuilderOption {
	return func(oc *orbitControlsImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed scales how far one wheel notch zooms.
//
// Parameters:
//   - speed: zoom multiplier
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithZoomSpeed(speed float32) OrbitControlsBuilderOption {
	return func(oc *orbitControlsImpl) {
		oc.zoomSpeed = speed
	}
}

// WithRadiusLimits bounds the orbit distance.
//
// Parameters:
//   - minRadius: closest distance to the target
//   - maxRadius: farthest distance from the target
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithRadiusLimits(minRadius, maxRadius float32) OrbitControlsBuilderOption {
	return func(oc *orbitControlsImpl) {
		oc.minRadius = minRadius
		oc.maxRadius = maxRadius
	}
}

// WithElevationLimits bounds the vertical orbit angle in radians above the horizontal plane.
//
// Parameters:
//   - minElevation: lowest elevation
//   - maxElevation: highest elevation
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithElevationLimits(minElevation, maxElevation float32) OrbitControlsBuilderOption {
	return func(oc *orbitControlsImpl) {
		oc.minElevation = minElevation
		oc.maxElevation = maxElevation
	}
}
