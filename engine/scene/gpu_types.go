package scene

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUFogUniform is the fog block at the tail of the frame uniform.
// Size: 32 bytes (WGSL aligned).
type GPUFogUniform struct {
	Color  [4]float32 // offset  0: fog rgb, w unused
	Params [4]float32 // offset 16: near, far, enabled (0 or 1), unused
}

// Size returns the size of the GPUFogUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUFogUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFogUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPUFogUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Color[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Params[i]))
	}
	return buf
}

// FogUniform packs the scene fog for GPU upload. Disabled fog packs with enabled = 0.
//
// Parameters:
//   - s: the scene
//
// Returns:
//   - GPUFogUniform: the packed uniform
func FogUniform(s Scene) GPUFogUniform {
	f := s.Fog()
	if f == nil {
		return GPUFogUniform{}
	}
	return GPUFogUniform{
		Color:  f.Color.RGBA(1),
		Params: [4]float32{f.Near, f.Far, 1, 0},
	}
}
