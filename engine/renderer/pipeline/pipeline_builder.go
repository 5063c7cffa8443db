package pipeline

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithVertexShader sets the vertex shader for this pipeline.
//
// Parameters:
//   - s: the vertex shader to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the vertex shader for this pipeline
func WithVertexShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = s
	}
}

// WithFragmentShader sets the fragment shader for this pipeline.
//
// Parameters:
//   - s: the fragment shader to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the fragment shader for this pipeline
func WithFragmentShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fragmentShader = s
	}
}

// WithDepthTestEnabled sets whether depth testing is enabled for this pipeline.
//
// Parameters:
//   - enabled: a boolean indicating whether depth testing should be enabled
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth test enabled state for this pipeline
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
	}
}

// WithDepthWriteEnabled sets whether depth writing is enabled for this pipeline.
//
// Parameters:
//   - enabled: a boolean indicating whether depth writing should be enabled
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth write enabled state for this pipeline
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithDepthFormat sets the depth attachment format the pipeline renders into.
//
// Parameters:
//   - format: the depth texture format (e.g., wgpu.TextureFormatDepth24Plus, wgpu.TextureFormatDepth32Float)
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth format for this pipeline
func WithDepthFormat(format wgpu.TextureFormat) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthFormat = format
	}
}

// WithDepthBias sets the depth bias parameters for this pipeline.
//
// Parameters:
//   - bias: the constant depth bias to apply
//   - slopeScale: the slope scale depth bias to apply
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth bias parameters for this pipeline
func WithDepthBias(bias int32, slopeScale float32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthBias = bias
		p.depthBiasSlopeScale = slopeScale
	}
}

// WithCullMode sets the cull mode for this pipeline.
//
// Parameters:
//   - mode: the cull mode to use for this pipeline (e.g., wgpu.CullModeNone, wgpu.CullModeFront, wgpu.CullModeBack)
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode for this pipeline
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}
