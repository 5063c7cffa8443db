package shader

import (
	_ "embed"
)

const (
	// KeyLitVertex and KeyLitFragment identify the two stages of the lit pipeline.
	KeyLitVertex   = "lit_vs"
	KeyLitFragment = "lit_fs"

	// KeyShadowVertex identifies the depth-only shadow stage.
	KeyShadowVertex = "shadow_vs"
)

//go:embed assets/lit.wgsl
var litSource string

//go:embed assets/shadow.wgsl
var shadowSource string

// LitSource returns the WGSL for the lit pipeline.
func LitSource() string {
	return litSource
}

// ShadowSource returns the WGSL for the shadow pipeline.
func ShadowSource() string {
	return shadowSource
}

// NewLitShaders parses both stages of the lit pipeline.
//
// Returns:
//   - Shader: the vertex stage
//   - Shader: the fragment stage
//   - error: an error if either stage fails to parse
func NewLitShaders() (Shader, Shader, error) {
	vs, err := NewShader(KeyLitVertex, ShaderTypeVertex, litSource)
	if err != nil {
		return nil, nil, err
	}
	fs, err := NewShader(KeyLitFragment, ShaderTypeFragment, litSource)
	if err != nil {
		return nil, nil, err
	}
	return vs, fs, nil
}

// NewShadowShader parses the depth-only shadow stage.
//
// Returns:
//   - Shader: the vertex stage
//   - error: an error if parsing fails
func NewShadowShader() (Shader, error) {
	return NewShader(KeyShadowVertex, ShaderTypeVertex, shadowSource)
}
