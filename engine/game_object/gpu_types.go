package game_object

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUObjectUniform is the per-object uniform bound at group 1 of the lit and shadow pipelines.
// Size: 80 bytes (WGSL aligned).
type GPUObjectUniform struct {
	Model [16]float32 // offset  0: model matrix (mat4x4<f32>)
	Flags [4]float32  // offset 64: x = receives shadows, yzw unused (vec4<f32>)
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Flags[i]))
	}
	return buf
}
