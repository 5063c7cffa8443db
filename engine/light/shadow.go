package light

import "github.com/Carmen-Shannon/oxy-viewer/common"

// ShadowMapResolution is the default width and height in texels of the shadow
// depth texture.
const ShadowMapResolution = 2048

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// of the directional light shadow frustum.
const DefaultShadowHalfExtent float32 = 35.0

// DefaultShadowNear is the default near plane for the directional light's
// orthographic shadow projection.
const DefaultShadowNear float32 = 0.5

// DefaultShadowFar is the default far plane for the directional light's
// orthographic shadow projection.
const DefaultShadowFar float32 = 60.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.0015

// ShadowViewProjection builds the orthographic view-projection matrix a directional light
// renders its shadow map with. The frustum looks from the light position toward its target.
//
// Parameters:
//   - l: the directional light
//
// Returns:
//   - [16]float32: column-major light view-projection matrix
func ShadowViewProjection(l Light) [16]float32 {
	up := [3]float32{0, 1, 0}
	if d := l.Direction(); absF32(d[1]) > 0.99 {
		up = [3]float32{1, 0, 0}
	}

	var view, proj, vp [16]float32
	common.LookAt(view[:], l.Position(), l.Target(), up)

	halfExtent, near, far := l.ShadowCamera()
	common.Orthographic(proj[:], -halfExtent, halfExtent, -halfExtent, halfExtent, near, far)

	common.Mul4(vp[:], proj[:], view[:])
	return vp
}

// absF32 returns the absolute value of a float32.
func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
