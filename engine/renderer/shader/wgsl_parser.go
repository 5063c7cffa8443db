package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// vertexFormatInfo holds the wgpu vertex format and its byte size for offset calculation
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// parsedField represents a single field extracted from a WGSL struct during parsing
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct represents a WGSL struct block extracted during parsing
type parsedStruct struct {
	name   string
	fields []parsedField
}

// wgslVertexFormatMap maps WGSL type names to their corresponding wgpu vertex format and byte size
var wgslVertexFormatMap = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
	"vec4<u32>": {wgpu.VertexFormatUint32x4, 16},
	"i32":       {wgpu.VertexFormatSint32, 4},
}

var (
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	locationRegex    = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex     = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex skips leading attributes and captures the field name and type.
	fieldRegex = regexp.MustCompile(`^(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+)$`)

	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// bindGroupDeclRegex captures group, binding, optional address space, variable name, and type
	// from declarations like: @group(0) @binding(0) var<uniform> frame_data: FrameUniform;
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// parseEntryPoint extracts the entry point function name for the given shader type
// from WGSL source. Returns an empty string if no matching entry point attribute is found.
//
// Parameters:
//   - source: the raw WGSL source code string
//   - shaderType: the stage to search for
//
// Returns:
//   - string: the entry point function name, or empty string if not found
func parseEntryPoint(source string, shaderType ShaderType) string {
	cleaned := stripComments(source)

	var re *regexp.Regexp
	switch shaderType {
	case ShaderTypeVertex:
		re = vertexEntryRegex
	case ShaderTypeFragment:
		re = fragmentEntryRegex
	default:
		return ""
	}

	if match := re.FindStringSubmatch(cleaned); match != nil {
		return match[1]
	}
	return ""
}

// parseVertexLayouts finds every struct that is a pure vertex input (@location fields, no @builtin)
// and converts it into a wgpu.VertexBufferLayout with tightly packed offsets.
// Structs containing unrecognized WGSL types are skipped.
func parseVertexLayouts(source string) []wgpu.VertexBufferLayout {
	var out []wgpu.VertexBufferLayout
	for _, ps := range parseStructBlocks(stripComments(source)) {
		if !isVertexInputStruct(ps) {
			continue
		}
		if layout, ok := buildVertexBufferLayout(ps); ok {
			out = append(out, layout)
		}
	}
	return out
}

// parseBindGroupLayouts extracts all @group(N) @binding(M) resource declarations from WGSL
// source and returns them as wgpu.BindGroupLayoutDescriptor values grouped by group index.
// Each descriptor's entries are sorted by binding index.
//
// Parameters:
//   - source: the raw WGSL source code string
//   - visibility: the shader stage visibility flag to set on each entry
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: layout descriptors keyed by group index
//   - map[int]map[int]string: variable names keyed by group and binding index
func parseBindGroupLayouts(source string, visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string) {
	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	varNames := make(map[int]map[int]string)

	for _, match := range bindGroupDeclRegex.FindAllStringSubmatch(stripComments(source), -1) {
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		addressSpace := strings.TrimSpace(match[3])
		varName := strings.TrimSpace(match[4])
		typeName := strings.TrimSpace(match[5])

		groups[group] = append(groups[group], classifyResource(uint32(binding), visibility, addressSpace, typeName))
		if varNames[group] == nil {
			varNames[group] = make(map[int]string)
		}
		varNames[group][binding] = varName
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		result[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}
	return result, varNames
}

// classifyResource fills in the buffer, texture or sampler half of a layout entry
// from the declaration's address space and type.
func classifyResource(binding uint32, visibility wgpu.ShaderStage, addressSpace, typeName string) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
	}

	switch {
	case addressSpace == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case strings.HasPrefix(addressSpace, "storage"):
		if strings.Contains(addressSpace, "read_write") {
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		} else {
			entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		}
	case typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case typeName == "sampler_comparison":
		entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
	case typeName == "texture_depth_2d":
		entry.Texture.SampleType = wgpu.TextureSampleTypeDepth
		entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
	case strings.HasPrefix(typeName, "texture_2d"):
		entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
		entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
	}
	return entry
}

func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))
	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}
	return structs
}

func parseStructFields(body string) []parsedField {
	var fields []parsedField
	for _, line := range splitAtTopLevelCommas(body) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		field := parsedField{
			name:      fm[1],
			typeName:  strings.TrimSpace(fm[2]),
			location:  -1,
			isBuiltin: builtinRegex.MatchString(line),
		}
		if loc := locationRegex.FindStringSubmatch(line); loc != nil {
			if n, err := strconv.Atoi(loc[1]); err == nil {
				field.location = n
			}
		}
		fields = append(fields, field)
	}
	return fields
}

// isVertexInputStruct distinguishes vertex inputs from vertex outputs, which mix @location with @builtin(position).
func isVertexInputStruct(ps parsedStruct) bool {
	hasLocation := false
	for _, f := range ps.fields {
		if f.isBuiltin {
			return false
		}
		if f.location >= 0 {
			hasLocation = true
		}
	}
	return hasLocation
}

func buildVertexBufferLayout(ps parsedStruct) (wgpu.VertexBufferLayout, bool) {
	attrs := make([]wgpu.VertexAttribute, 0, len(ps.fields))
	var offset uint64
	for _, f := range ps.fields {
		info, ok := wgslVertexFormatMap[f.typeName]
		if !ok {
			return wgpu.VertexBufferLayout{}, false
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         info.format,
			Offset:         offset,
			ShaderLocation: uint32(f.location),
		})
		offset += info.size
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, true
}

// splitAtTopLevelCommas splits at commas not nested inside angle brackets, so array<T, N> stays whole.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// stripComments removes line comments and (possibly nested) block comments from WGSL source.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch {
			case source[i] == '/' && source[i+1] == '*':
				depth++
				i++
				continue
			case source[i] == '*' && source[i+1] == '/' && depth > 0:
				depth--
				i++
				continue
			case depth == 0 && source[i] == '/' && source[i+1] == '/':
				for i < len(source) && source[i] != '\n' {
					i++
				}
				if i < len(source) {
					sb.WriteByte('\n')
				}
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
