package pipeline

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// KeyLit is the forward lit pipeline every material draws with.
	KeyLit = "lit"

	// KeyShadow is the depth-only pipeline rendering shadow casters into the shadow map.
	KeyShadow = "shadow"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the WebGPU render pipeline object and the configuration it was created from.
type pipeline struct {
	mu *sync.Mutex

	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// vertexShader is required; fragmentShader is nil for depth-only pipelines.
	vertexShader, fragmentShader shader.Shader

	renderPipeline   *wgpu.RenderPipeline
	bindGroupLayouts []*wgpu.BindGroupLayout

	// The following properties are used to configure the pipeline during creation and can be toggled/set with the builder options.

	depthTestEnabled    bool
	depthWriteEnabled   bool
	depthFormat         wgpu.TextureFormat
	depthBias           int32
	depthBiasSlopeScale float32
	blendEnabled        bool
	cullMode            wgpu.CullMode
	topology            wgpu.PrimitiveTopology
	frontFace           wgpu.FrontFace
	writeMask           wgpu.ColorWriteMask
	blendState          *wgpu.BlendState
}

// Pipeline defines the interface for a GPU render pipeline: its shader stages, the bind group
// layouts it was created with, and the depth, blend, cull and topology state required for creation.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader associated with the specified stage if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the stage to retrieve
	//
	// Returns:
	//   - shader.Shader: the shader for that stage, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// DepthOnly reports whether the pipeline has no fragment stage and no color target.
	//
	// Returns:
	//   - bool: true for depth-only pipelines
	DepthOnly() bool

	// RenderPipeline returns the created WebGPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the pipeline object
	RenderPipeline() *wgpu.RenderPipeline

	// BindGroupLayout returns the layout the pipeline was created with at a group index.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout, or nil if out of range or not registered
	BindGroupLayout(group int) *wgpu.BindGroupLayout

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// DepthFormat returns the format of the depth attachment the pipeline renders into.
	//
	// Returns:
	//   - wgpu.TextureFormat: the depth format
	DepthFormat() wgpu.TextureFormat

	// DepthBias returns the depth bias value configured for this pipeline.
	//
	// Returns:
	//   - int32: the depth bias value for this pipeline
	DepthBias() int32

	// DepthBiasSlopeScale returns the depth bias slope scale configured for this pipeline.
	//
	// Returns:
	//   - float32: the depth bias slope scale for this pipeline
	DepthBiasSlopeScale() float32

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline, or nil if blending is not enabled
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the created pipeline and the layouts it was created with.
	// The layouts are borrowed; whoever created them releases them.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline
	//   - layouts: bind group layouts indexed by group
	SetRenderPipeline(p *wgpu.RenderPipeline, layouts []*wgpu.BindGroupLayout)

	// Release releases the render pipeline. Safe to call more than once.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new render Pipeline description.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		mu:                &sync.Mutex{},
		pipelineKey:       pipelineKey,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		depthFormat:       wgpu.TextureFormatDepth24Plus,
		blendEnabled:      false,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewLitPipeline describes the forward lit pipeline.
//
// Parameters:
//   - vs: the lit vertex stage
//   - fs: the lit fragment stage
//
// Returns:
//   - Pipeline: the pipeline description
func NewLitPipeline(vs, fs shader.Shader) Pipeline {
	return NewPipeline(KeyLit,
		WithVertexShader(vs),
		WithFragmentShader(fs),
	)
}

// NewShadowPipeline describes the depth-only shadow pipeline. A small slope-scaled
// bias keeps lit surfaces from shadowing themselves.
//
// Parameters:
//   - vs: the shadow vertex stage
//
// Returns:
//   - Pipeline: the pipeline description
func NewShadowPipeline(vs shader.Shader) Pipeline {
	return NewPipeline(KeyShadow,
		WithVertexShader(vs),
		WithDepthFormat(wgpu.TextureFormatDepth32Float),
		WithDepthBias(2, 2.0),
	)
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) DepthOnly() bool {
	return p.fragmentShader == nil
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderPipeline
}

func (p *pipeline) BindGroupLayout(group int) *wgpu.BindGroupLayout {
	p.mu.Lock()
	defer p.mu.Unlock()
	if group < 0 || group >= len(p.bindGroupLayouts) {
		return nil
	}
	return p.bindGroupLayouts[group]
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthFormat() wgpu.TextureFormat {
	return p.depthFormat
}

func (p *pipeline) DepthBias() int32 {
	return p.depthBias
}

func (p *pipeline) DepthBiasSlopeScale() float32 {
	return p.depthBiasSlopeScale
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline, layouts []*wgpu.BindGroupLayout) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.renderPipeline != nil && p.renderPipeline != rp {
		p.renderPipeline.Release()
	}
	p.renderPipeline = rp
	p.bindGroupLayouts = layouts
}

func (p *pipeline) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	p.bindGroupLayouts = nil
}
