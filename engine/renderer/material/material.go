package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
)

// PipelineLit is the pipeline key of the default lit surface pipeline.
const PipelineLit = "lit"

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name        string
	baseColor   [4]float32
	metallic    float32
	roughness   float32
	pipelineKey string

	bindGroupProvider bind_group_provider.BindGroupProvider

	disposed  bool
	onDispose []func()
}

// Material defines the interface for a render material, encapsulating surface
// properties and the GPU resource bindings needed for draw calls.
//
// Surface properties are set at construction and are read-only through this interface.
// The bind group provider is filled by the Renderer on first draw and released by Dispose.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the albedo RGBA color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Metallic retrieves the metallic factor of the material.
	//
	// Returns:
	//   - float32: the metallic factor in [0, 1]
	Metallic() float32

	// Roughness retrieves the roughness factor of the material.
	//
	// Returns:
	//   - float32: the roughness factor in [0, 1]
	Roughness() float32

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the material's provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Uniform returns the material packed for GPU upload.
	//
	// Returns:
	//   - GPUMaterialUniform: the packed uniform
	Uniform() GPUMaterialUniform

	// OnDispose registers a callback run once when the material is disposed.
	// Registering on an already disposed material runs nothing.
	//
	// Parameters:
	//   - fn: the callback
	OnDispose(fn func())

	// Dispose releases the material's GPU resources. Only the first call has any effect.
	Dispose()

	// Disposed reports whether Dispose has been called.
	//
	// Returns:
	//   - bool: true once disposed
	Disposed() bool
}

var _ Material = &material{}

// NewMaterial creates a new Material with the provided options applied.
// Defaults: white, fully rough, non-metallic, lit pipeline.
//
// Parameters:
//   - options: a variadic list of MaterialBuilderOption functions to configure the Material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:          &sync.Mutex{},
		name:        "material",
		baseColor:   [4]float32{1, 1, 1, 1},
		roughness:   1,
		pipelineKey: PipelineLit,
	}
	for _, opt := range options {
		opt(m)
	}
	m.bindGroupProvider = bind_group_provider.NewBindGroupProvider("material_" + m.name)
	return m
}

// NewStandardMaterial creates a lit material with a solid color.
//
// Parameters:
//   - name: material identifier
//   - color: the albedo color
//   - options: additional options
//
// Returns:
//   - Material: the material
func NewStandardMaterial(name string, color common.Color, options ...MaterialBuilderOption) Material {
	all := append([]MaterialBuilderOption{WithName(name), WithColor(color)}, options...)
	return NewMaterial(all...)
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Metallic() float32 {
	return m.metallic
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) Uniform() GPUMaterialUniform {
	return GPUMaterialUniform{
		BaseColor: m.baseColor,
		Params:    [4]float32{m.roughness, m.metallic, 0, 0},
	}
}

func (m *material) OnDispose(fn func()) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return
	}
	m.onDispose = append(m.onDispose, fn)
}

func (m *material) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	hooks := m.onDispose
	m.onDispose = nil
	m.mu.Unlock()

	m.bindGroupProvider.Release()
	for _, fn := range hooks {
		fn()
	}
}

func (m *material) Disposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}
