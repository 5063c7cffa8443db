package renderer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing. This is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// String returns the configuration name of the present mode.
func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// ParsePresentMode converts a configuration name into a PresentMode.
//
// Parameters:
//   - s: "vsync" or "uncapped", case-insensitive
//
// Returns:
//   - PresentMode: the parsed mode
//   - error: an error for any other value
func ParsePresentMode(s string) (PresentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vsync":
		return PresentModeVSync, nil
	case "uncapped":
		return PresentModeUncapped, nil
	default:
		return PresentModeVSync, fmt.Errorf("unknown present mode %q (want vsync or uncapped)", s)
	}
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values (8, 16) are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8× multisample anti-aliasing. Adapter-dependent.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16× multisample anti-aliasing. Adapter-dependent.
	MSAA16x MSAASampleCount = 16
)

// ParseMSAA validates a raw sample count.
//
// Parameters:
//   - n: 1, 4, 8 or 16
//
// Returns:
//   - MSAASampleCount: the sample count
//   - error: an error for any other value
func ParseMSAA(n int) (MSAASampleCount, error) {
	switch MSAASampleCount(n) {
	case MSAAOff, MSAA4x, MSAA8x, MSAA16x:
		return MSAASampleCount(n), nil
	default:
		return MSAA4x, fmt.Errorf("unsupported MSAA sample count %d (want 1, 4, 8 or 16)", n)
	}
}

// RendererBackend is the set of GPU primitives the renderer drives each frame.
// A frame is BeginFrame, an optional shadow pass, the main pass, then EndFrame.
type RendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and recreates the depth and MSAA targets,
	// releasing the previous ones.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	//
	// Returns:
	//   - error: an error if a render target could not be created
	ConfigureSurface(width, height int) error

	// SetClearColor sets the color the main pass clears to.
	//
	// Parameters:
	//   - c: linear RGB clear color
	SetClearColor(c common.Color)

	// RegisterRenderPipeline creates the GPU pipeline for a description and stores it on the description.
	// Depth-only descriptions get no fragment stage, no color target and sample count 1.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers creates vertex and index buffers from raw byte data and stores them on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex data bytes
	//   - indexData: the raw 32-bit index data bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the buffers a layout descriptor declares and a bind group over them.
	// Texture views and samplers must already be set on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created resources on
	//   - layout: the bind group layout the pipeline was created with
	//   - descriptor: the reflected layout descriptor for the group
	//   - bufferSizes: buffer sizes in bytes keyed by binding index
	//
	// Returns:
	//   - error: an error if a resource is missing or creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizes map[int]uint64) error

	// CreateShadowDepthTexture creates a Depth32Float texture and view for shadow mapping.
	//
	// Parameters:
	//   - width: shadow map width in texels
	//   - height: shadow map height in texels
	//
	// Returns:
	//   - *wgpu.TextureView: the depth texture view
	//   - *wgpu.Texture: the underlying texture (caller must release when done)
	//   - error: an error if texture creation fails
	CreateShadowDepthTexture(width, height int) (*wgpu.TextureView, *wgpu.Texture, error)

	// CreateComparisonSampler creates a comparison sampler suitable for PCF shadow mapping.
	//
	// Returns:
	//   - *wgpu.Sampler: the comparison sampler
	//   - error: an error if sampler creation fails
	CreateComparisonSampler() (*wgpu.Sampler, error)

	// WriteBuffer queues a write to a provider's buffer. Missing buffers are skipped.
	//
	// Parameters:
	//   - provider: the provider owning the buffer
	//   - binding: the binding index of the buffer
	//   - data: the bytes to write at offset 0
	WriteBuffer(provider bind_group_provider.BindGroupProvider, binding int, data []byte)

	// BeginFrame acquires the next swapchain image and opens the frame's command encoder.
	//
	// Returns:
	//   - error: an error if the surface image or encoder could not be acquired
	BeginFrame() error

	// BeginShadowPass starts a depth-only pass into the shadow map.
	//
	// Parameters:
	//   - depthView: the shadow map view
	BeginShadowPass(depthView *wgpu.TextureView)

	// ShadowDrawCall encodes one indexed draw of a whole mesh in the shadow pass.
	//
	// Parameters:
	//   - p: the shadow pipeline
	//   - meshProvider: the provider holding vertex and index buffers
	//   - bindGroups: providers bound at groups 0..n in order
	ShadowDrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// EndShadowPass ends the shadow pass.
	EndShadowPass()

	// BeginMainPass starts the color pass into the swapchain image.
	BeginMainPass()

	// DrawCall encodes one indexed draw of an index range in the main pass.
	//
	// Parameters:
	//   - p: the lit pipeline
	//   - meshProvider: the provider holding vertex and index buffers
	//   - firstIndex: the first index of the range
	//   - indexCount: the number of indices in the range
	//   - bindGroups: providers bound at groups 0..n in order
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, firstIndex, indexCount int, bindGroups []bind_group_provider.BindGroupProvider)

	// EndMainPass ends the color pass.
	EndMainPass()

	// EndFrame submits the frame's commands and presents the swapchain image.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Release frees every GPU object the backend owns, including the device and surface.
	// Safe to call more than once.
	Release()
}
