package model

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
)

// Group is a contiguous index range drawn with one material of a Multiple binding.
type Group struct {
	// Start is the first index of the range.
	Start int
	// Count is the number of indices in the range.
	Count int
	// MaterialIndex selects the material from the node's binding.
	MaterialIndex int
}

// geometry is the implementation of the Geometry interface.
type geometry struct {
	mu *sync.Mutex

	name           string
	vertices       []GPUVertex
	indices        []uint32
	groups         []Group
	boundingRadius float32

	meshProvider bind_group_provider.BindGroupProvider

	disposed  bool
	onDispose []func()
}

// Geometry is CPU-side mesh data plus the GPU buffers the Renderer uploads it to.
// Vertex and index data are immutable after construction. GPU buffers are created lazily
// on first draw and released by Dispose.
type Geometry interface {
	// Name retrieves the geometry identifier.
	//
	// Returns:
	//   - string: the geometry name
	Name() string

	// Vertices returns the vertex data. Callers must not modify the slice.
	//
	// Returns:
	//   - []GPUVertex: the vertices
	Vertices() []GPUVertex

	// Indices returns the triangle list indices. Callers must not modify the slice.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// VertexData returns the vertices packed for GPU upload.
	//
	// Returns:
	//   - []byte: the packed vertex data
	VertexData() []byte

	// IndexData returns the indices packed for GPU upload.
	//
	// Returns:
	//   - []byte: the packed index data
	IndexData() []byte

	// IndexCount returns the number of indices in the mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Groups returns the draw groups. A geometry without explicit groups has one group
	// spanning every index with material index 0.
	//
	// Returns:
	//   - []Group: the draw groups
	Groups() []Group

	// BoundingRadius returns the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// MeshProvider retrieves the BindGroupProvider holding the GPU vertex and index buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// OnDispose registers a callback run once when the geometry is disposed.
	// Registering on an already disposed geometry runs nothing.
	//
	// Parameters:
	//   - fn: the callback
	OnDispose(fn func())

	// Dispose releases the geometry's GPU buffers. Only the first call has any effect.
	Dispose()

	// Disposed reports whether Dispose has been called.
	//
	// Returns:
	//   - bool: true once disposed
	Disposed() bool
}

var _ Geometry = &geometry{}

// NewGeometry creates a Geometry from vertex and index data.
//
// Parameters:
//   - vertices: the vertices
//   - indices: triangle list indices into vertices
//   - options: functional options to configure the geometry
//
// Returns:
//   - Geometry: the geometry
func NewGeometry(vertices []GPUVertex, indices []uint32, options ...GeometryBuilderOption) Geometry {
	g := &geometry{
		mu:       &sync.Mutex{},
		name:     "geometry",
		vertices: vertices,
		indices:  indices,
	}
	for _, opt := range options {
		opt(g)
	}
	for _, v := range vertices {
		if r := common.Length3(v.Position); r > g.boundingRadius {
			g.boundingRadius = r
		}
	}
	g.meshProvider = bind_group_provider.NewBindGroupProvider("mesh_" + g.name)
	return g
}

func (g *geometry) Name() string {
	return g.name
}

func (g *geometry) Vertices() []GPUVertex {
	return g.vertices
}

func (g *geometry) Indices() []uint32 {
	return g.indices
}

func (g *geometry) VertexData() []byte {
	return MarshalVertices(g.vertices)
}

func (g *geometry) IndexData() []byte {
	return MarshalIndices(g.indices)
}

func (g *geometry) IndexCount() int {
	return len(g.indices)
}

func (g *geometry) Groups() []Group {
	if len(g.groups) == 0 {
		return []Group{{Start: 0, Count: len(g.indices), MaterialIndex: 0}}
	}
	out := make([]Group, len(g.groups))
	copy(out, g.groups)
	return out
}

func (g *geometry) BoundingRadius() float32 {
	return g.boundingRadius
}

func (g *geometry) MeshProvider() bind_group_provider.BindGroupProvider {
	return g.meshProvider
}

func (g *geometry) OnDispose(fn func()) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return
	}
	g.onDispose = append(g.onDispose, fn)
}

func (g *geometry) Dispose() {
	g.mu.Lock()
	if g.disposed {
		g.mu.Unlock()
		return
	}
	g.disposed = true
	hooks := g.onDispose
	g.onDispose = nil
	g.mu.Unlock()

	g.meshProvider.Release()
	for _, fn := range hooks {
		fn()
	}
}

func (g *geometry) Disposed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.disposed
}
