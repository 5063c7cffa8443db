package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies which pipeline stage a shader feeds.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
// It holds the WGSL source plus everything reflected from it that pipeline creation needs.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              []wgpu.VertexBufferLayout
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a parsed WGSL shader stage. It exposes the shader's
// unique key, source code, entry point, bind group layout descriptors and vertex buffer
// layouts needed for pipeline creation and resource wiring.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// ShaderType returns the stage this shader feeds.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// EntryPoint returns the entry point name for this shader's stage.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors.
	// These are the CPU-side descriptors extracted from the shader source which the
	// renderer uses to create the actual wgpu.BindGroupLayout GPU objects.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name declared at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if nothing is declared there
	BindGroupVarName(group, binding int) string

	// VertexLayouts retrieves the vertex buffer layouts reflected from vertex input structs.
	// Fragment shaders return nil.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: one layout per vertex input struct, in source order
	VertexLayouts() []wgpu.VertexBufferLayout

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader parses WGSL source for one pipeline stage.
// A single source file may hold several stages; each gets its own Shader.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the stage to reflect
//   - source: the WGSL source
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error if the source declares no entry point for the stage
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	entry := parseEntryPoint(source, shaderType)
	if entry == "" {
		return nil, fmt.Errorf("shader %s: no entry point for stage %d", key, shaderType)
	}

	s := &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
		entryPoint: entry,
		module: &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: source,
			},
		},
	}
	if shaderType == ShaderTypeVertex {
		s.vertexLayouts = parseVertexLayouts(source)
	}

	// Render stages share bind groups, so every entry is visible to both stages.
	// Identical descriptors then collapse onto one layout across pipelines.
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(source, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
