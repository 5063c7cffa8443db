package light

import "github.com/Carmen-Shannon/oxy-viewer/common"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeHemisphere represents sky/ground ambient lighting. Fragments facing up receive
	// the sky color, fragments facing down the ground color, with a smooth blend between.
	LightTypeHemisphere LightType = iota

	// LightTypeDirectional represents a distant source like the sun. It shines from its
	// position toward its target with no distance attenuation and may cast shadows.
	LightTypeDirectional
)

// lightImpl is the implementation of the Light interface.
// Lights are configured at construction and never mutated afterwards, so no lock is needed.
type lightImpl struct {
	lightType   LightType
	position    [3]float32
	target      [3]float32
	color       common.Color
	groundColor common.Color
	intensity   float32

	castsShadows     bool
	shadowMapSize    int
	shadowHalfExtent float32
	shadowNear       float32
	shadowFar        float32
	shadowBias       float32
}

// Light defines a light source in the scene.
//
// Both light types share this interface; type-specific properties (ground color for
// hemisphere lights, shadow settings for directional lights) return their defaults when
// not applicable.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: hemisphere or directional
	Type() LightType

	// Position returns the world-space position of the light.
	// For directional lights this is where the light shines from.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Target returns the world-space point a directional light shines toward.
	//
	// Returns:
	//   - [3]float32: target as (x, y, z)
	Target() [3]float32

	// Direction returns the normalized direction the light travels (from position toward target).
	//
	// Returns:
	//   - [3]float32: normalized direction
	Direction() [3]float32

	// Color returns the light color. For hemisphere lights this is the sky color.
	//
	// Returns:
	//   - common.Color: the color
	Color() common.Color

	// GroundColor returns the hemisphere ground color.
	//
	// Returns:
	//   - common.Color: the ground color
	GroundColor() common.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// CastsShadows returns whether this light renders a shadow map each frame.
	// Only directional lights cast shadows.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// ShadowMapSize returns the width and height of the shadow depth texture in texels.
	//
	// Returns:
	//   - int: shadow map resolution
	ShadowMapSize() int

	// ShadowCamera returns the orthographic bounds of the shadow frustum.
	//
	// Returns:
	//   - halfExtent: half-size of the frustum in world units
	//   - near: near plane distance from the light position
	//   - far: far plane distance from the light position
	ShadowCamera() (halfExtent, near, far float32)

	// ShadowBias returns the constant depth bias applied to shadow comparisons.
	//
	// Returns:
	//   - float32: the bias
	ShadowBias() float32
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:        lightType,
		position:         [3]float32{0, 1, 0},
		color:            common.Color{1, 1, 1},
		groundColor:      common.Color{0, 0, 0},
		intensity:        1.0,
		shadowMapSize:    ShadowMapResolution,
		shadowHalfExtent: DefaultShadowHalfExtent,
		shadowNear:       DefaultShadowNear,
		shadowFar:        DefaultShadowFar,
		shadowBias:       DefaultShadowBias,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.lightType != LightTypeDirectional {
		l.castsShadows = false
	}
	return l
}

// NewHemisphereLight creates a hemisphere light.
//
// Parameters:
//   - sky: color received by upward-facing surfaces
//   - ground: color received by downward-facing surfaces
//   - intensity: scalar multiplier
//
// Returns:
//   - Light: the hemisphere light
func NewHemisphereLight(sky, ground common.Color, intensity float32) Light {
	return NewLight(LightTypeHemisphere, WithColor(sky), WithGroundColor(ground), WithIntensity(intensity))
}

// NewDirectionalLight creates a directional light shining from position toward the origin unless
// a target option says otherwise.
//
// Parameters:
//   - color: light color
//   - intensity: scalar multiplier
//   - opts: additional options such as WithPosition or WithCastsShadows
//
// Returns:
//   - Light: the directional light
func NewDirectionalLight(color common.Color, intensity float32, opts ...LightBuilderOption) Light {
	all := append([]LightBuilderOption{WithColor(color), WithIntensity(intensity)}, opts...)
	return NewLight(LightTypeDirectional, all...)
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Target() [3]float32 {
	return l.target
}

func (l *lightImpl) Direction() [3]float32 {
	d := common.Sub3(l.target, l.position)
	if common.Length3(d) < 1e-8 {
		return [3]float32{0, -1, 0}
	}
	return common.Normalize3(d)
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) GroundColor() common.Color {
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) ShadowMapSize() int {
	return l.shadowMapSize
}

func (l *lightImpl) ShadowCamera() (halfExtent, near, far float32) {
	return l.shadowHalfExtent, l.shadowNear, l.shadowFar
}

func (l *lightImpl) ShadowBias() float32 {
	return l.shadowBias
}
