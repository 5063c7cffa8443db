package material

import "github.com/Carmen-Shannon/oxy-viewer/common"

// MaterialBuilderOption is a functional option for configuring a Material during construction.
type MaterialBuilderOption func(*material)

// WithName sets the material identifier.
//
// Parameters:
//   - name: the name to assign to the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor sets the albedo RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithColor sets an opaque albedo color.
//
// Parameters:
//   - color: the RGB color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color.RGBA(1)
	}
}

// WithMetallic sets the metallic factor of the material.
//
// Parameters:
//   - metallic: the metallic factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metallic option to a material
func WithMetallic(metallic float32) MaterialBuilderOption {
	return func(m *material) {
		m.metallic = common.Clamp(metallic, 0, 1)
	}
}

// WithRoughness sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = common.Clamp(roughness, 0, 1)
	}
}

// WithPipelineKey sets the render pipeline key for the material.
//
// Parameters:
//   - key: the pipeline key identifying which render pipeline to use
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

