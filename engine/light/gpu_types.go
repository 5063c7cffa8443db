package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniform is the GPU-aligned lighting block of the frame uniform.
// Size: 128 bytes (WGSL aligned).
//
// Layout:
//
//	mat4x4<f32> light_view_proj  (64 bytes, offset 0)
//	vec4<f32>   sky              (16 bytes, offset 64)  rgb + hemisphere intensity
//	vec4<f32>   ground           (16 bytes, offset 80)  rgb + shadow bias
//	vec4<f32>   sun_direction    (16 bytes, offset 96)  xyz toward the light + sun intensity
//	vec4<f32>   sun_color        (16 bytes, offset 112) rgb + shadows enabled (0 or 1)
type GPULightUniform struct {
	LightViewProj [16]float32
	Sky           [4]float32
	Ground        [4]float32
	SunDirection  [4]float32
	SunColor      [4]float32
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := 0
	put := func(vals []float32) {
		for _, v := range vals {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
			off += 4
		}
	}
	put(g.LightViewProj[:])
	put(g.Sky[:])
	put(g.Ground[:])
	put(g.SunDirection[:])
	put(g.SunColor[:])
	return buf
}

// ShadowsEnabled reports whether the uniform samples the shadow map.
//
// Returns:
//   - bool: true if a shadow-casting directional light was packed
func (g *GPULightUniform) ShadowsEnabled() bool {
	return g.SunColor[3] != 0
}

// GPUShadowUniform is the uniform of the depth-only shadow pass: the light view-projection matrix.
// Size: 64 bytes (mat4x4<f32>).
type GPUShadowUniform struct {
	LightVP [16]float32
}

// Size returns the size of the GPUShadowUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (u *GPUShadowUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPUShadowUniform struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (u *GPUShadowUniform) Marshal() []byte {
	buf := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(u.LightVP[i]))
	}
	return buf
}

// BuildLightUniform packs scene lights into a GPULightUniform.
// The first hemisphere light supplies the ambient term and the first directional light the sun term;
// further lights of either kind are ignored. With no lights the uniform is all zeroes, which renders unlit geometry black.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - GPULightUniform: the packed uniform
//   - Light: the directional light whose shadow map should be rendered, or nil
func BuildLightUniform(lights []Light) (GPULightUniform, Light) {
	var u GPULightUniform
	var sun, hemi Light
	for _, l := range lights {
		switch l.Type() {
		case LightTypeHemisphere:
			if hemi == nil {
				hemi = l
			}
		case LightTypeDirectional:
			if sun == nil {
				sun = l
			}
		}
	}

	if hemi != nil {
		sky, ground := hemi.Color(), hemi.GroundColor()
		u.Sky = [4]float32{sky[0], sky[1], sky[2], hemi.Intensity()}
		u.Ground = [4]float32{ground[0], ground[1], ground[2], 0}
	}

	var caster Light
	if sun != nil {
		d := sun.Direction()
		c := sun.Color()
		u.SunDirection = [4]float32{-d[0], -d[1], -d[2], sun.Intensity()}
		u.SunColor = [4]float32{c[0], c[1], c[2], 0}
		if sun.CastsShadows() {
			caster = sun
			u.LightViewProj = ShadowViewProjection(sun)
			u.Ground[3] = sun.ShadowBias()
			u.SunColor[3] = 1
		}
	}
	return u, caster
}
