package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

// objectCount hands out unique IDs to objects created without WithID.
var objectCount atomic.Uint64

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	enabled atomic.Bool

	position [3]float32
	rotation [3]float32
	scale    [3]float32

	geometry      model.Geometry
	materials     material.Binding
	castShadow    bool
	receiveShadow bool
	attachedLight light.Light
}

// GameObject is a node of the scene graph: a transform with an optional mesh
// (geometry plus material binding) and an optional attached light.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's debug name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Position returns the object's world-space position.
	//
	// Returns:
	//   - [3]float32: position components
	Position() [3]float32

	// SetPosition sets the object's world-space position.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// Rotation returns the object's Euler rotation in radians, applied Y then X then Z.
	//
	// Returns:
	//   - [3]float32: rotation about X, Y and Z
	Rotation() [3]float32

	// SetRotation sets the object's Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation about each axis
	SetRotation(rx, ry, rz float32)

	// Rotate adds to the object's Euler rotation.
	//
	// Parameters:
	//   - dx, dy, dz: radians to add about each axis
	Rotate(dx, dy, dz float32)

	// Scale returns the object's scale.
	//
	// Returns:
	//   - [3]float32: scale components
	Scale() [3]float32

	// SetScale sets the object's scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale components
	SetScale(sx, sy, sz float32)

	// ModelMatrix builds the object's column-major model matrix from its transform.
	//
	// Returns:
	//   - [16]float32: the model matrix
	ModelMatrix() [16]float32

	// Geometry returns the mesh geometry, or nil for nodes that draw nothing.
	//
	// Returns:
	//   - model.Geometry: the geometry or nil
	Geometry() model.Geometry

	// Material returns the node's material binding.
	//
	// Returns:
	//   - material.Binding: Single, Multiple, or the zero binding
	Material() material.Binding

	// SetMaterial replaces the node's material binding. The previous materials are not disposed.
	//
	// Parameters:
	//   - b: the new binding
	SetMaterial(b material.Binding)

	// IsMesh reports whether the node has both geometry and at least one material.
	//
	// Returns:
	//   - bool: true if the node can be drawn
	IsMesh() bool

	// CastShadow reports whether the node renders into shadow maps.
	//
	// Returns:
	//   - bool: true if the node casts shadows
	CastShadow() bool

	// ReceiveShadow reports whether the node samples shadow maps when lit.
	//
	// Returns:
	//   - bool: true if the node receives shadows
	ReceiveShadow() bool

	// Light returns the light attached to this node, or nil.
	//
	// Returns:
	//   - light.Light: the attached light or nil
	Light() light.Light

	// Uniform returns the per-object GPU uniform for this node.
	//
	// Returns:
	//   - GPUObjectUniform: model matrix and shading flags
	Uniform() GPUObjectUniform
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new scene node with an identity transform.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the new object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		mu:    &sync.Mutex{},
		id:    objectCount.Add(1),
		scale: [3]float32{1, 1, 1},
	}
	g.enabled.Store(true)
	for _, opt := range options {
		opt(g)
	}
	return g
}

// NewMesh creates a drawable node.
//
// Parameters:
//   - geo: the geometry
//   - mat: the material binding
//   - options: further options
//
// Returns:
//   - GameObject: the mesh node
func NewMesh(geo model.Geometry, mat material.Binding, options ...GameObjectBuilderOption) GameObject {
	return NewGameObject(append([]GameObjectBuilderOption{WithGeometry(geo), WithMaterial(mat)}, options...)...)
}

// NewLightNode creates a node carrying a light.
// Directional lights report their own position, so the node is placed there.
//
// Parameters:
//   - l: the light
//   - options: further options
//
// Returns:
//   - GameObject: the light node
func NewLightNode(l light.Light, options ...GameObjectBuilderOption) GameObject {
	p := l.Position()
	base := []GameObjectBuilderOption{WithLight(l), WithPosition(p[0], p[1], p[2])}
	return NewGameObject(append(base, options...)...)
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Position() [3]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) Rotation() [3]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) Rotate(dx, dy, dz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation[0] += dx
	g.rotation[1] += dy
	g.rotation[2] += dz
}

func (g *gameObject) Scale() [3]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) ModelMatrix() [16]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var m [16]float32
	common.BuildModelMatrix(m[:], g.position, g.rotation, g.scale)
	return m
}

func (g *gameObject) Geometry() model.Geometry {
	return g.geometry
}

func (g *gameObject) Material() material.Binding {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.materials
}

func (g *gameObject) SetMaterial(b material.Binding) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.materials = b
}

func (g *gameObject) IsMesh() bool {
	return g.geometry != nil && !g.Material().IsEmpty()
}

func (g *gameObject) CastShadow() bool {
	return g.castShadow
}

func (g *gameObject) ReceiveShadow() bool {
	return g.receiveShadow
}

func (g *gameObject) Light() light.Light {
	return g.attachedLight
}

func (g *gameObject) Uniform() GPUObjectUniform {
	u := GPUObjectUniform{Model: g.ModelMatrix()}
	if g.receiveShadow {
		u.Flags[0] = 1
	}
	return u
}
