package light

import "github.com/Carmen-Shannon/oxy-viewer/common"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}

// WithTarget is an option builder that sets the point a directional light shines toward.
//
// Parameters:
//   - x: the x target component
//   - y: the y target component
//   - z: the z target component
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = [3]float32{x, y, z}
	}
}

// WithColor is an option builder that sets the light color (sky color for hemisphere lights).
//
// Parameters:
//   - c: the color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(c common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithGroundColor is an option builder that sets the hemisphere ground color.
//
// Parameters:
//   - c: the color
//
// Returns:
//   - LightBuilderOption: a function that applies the ground color option to a lightImpl
func WithGroundColor(c common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.groundColor = c
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithCastsShadows is an option builder that marks a directional light as shadow casting.
// Ignored for other light types.
//
// Parameters:
//   - castsShadows: true to render a shadow map for this light
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow option to a lightImpl
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}

// WithShadowMapSize is an option builder that sets the shadow map resolution.
// Non-positive sizes keep the default.
//
// Parameters:
//   - size: width and height in texels
//
// Returns:
//   - LightBuilderOption: a function that applies the resolution option to a lightImpl
func WithShadowMapSize(size int) LightBuilderOption {
	return func(l *lightImpl) {
		if size > 0 {
			l.shadowMapSize = size
		}
	}
}

// WithShadowCamera is an option builder that sets the orthographic shadow frustum.
//
// Parameters:
//   - halfExtent: half-size of the frustum in world units
//   - near: near plane distance from the light position
//   - far: far plane distance from the light position
//
// Returns:
//   - LightBuilderOption: a function that applies the frustum option to a lightImpl
func WithShadowCamera(halfExtent, near, far float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadowHalfExtent = halfExtent
		l.shadowNear = near
		l.shadowFar = far
	}
}

// WithShadowBias is an option builder that sets the constant depth bias for shadow comparisons.
//
// Parameters:
//   - bias: the bias
//
// Returns:
//   - LightBuilderOption: a function that applies the bias option to a lightImpl
func WithShadowBias(bias float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadowBias = bias
	}
}
