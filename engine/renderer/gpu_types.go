package renderer

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// GPUFrameUniform is the per-frame uniform bound at group 0 binding 0 of the lit pipeline.
// Size: 240 bytes (WGSL aligned).
//
// Layout:
//
//	CameraUniform camera  (80 bytes, offset 0)
//	LightUniform  light   (128 bytes, offset 80)
//	FogUniform    fog     (32 bytes, offset 208)
type GPUFrameUniform struct {
	Camera camera.GPUCameraUniform
	Light  light.GPULightUniform
	Fog    scene.GPUFogUniform
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (240)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 240-byte buffer ready for GPU upload
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, 0, g.Size())
	buf = append(buf, g.Camera.Marshal()...)
	buf = append(buf, g.Light.Marshal()...)
	buf = append(buf, g.Fog.Marshal()...)
	return buf
}
