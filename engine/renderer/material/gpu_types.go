package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialUniform is the GPU-aligned representation of a material uniform.
// Size: 32 bytes (WGSL aligned).
type GPUMaterialUniform struct {
	BaseColor [4]float32 // offset  0: albedo rgba (vec4<f32>)
	Params    [4]float32 // offset 16: roughness, metallic, unused, unused (vec4<f32>)
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.BaseColor[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Params[i]))
	}
	return buf
}
