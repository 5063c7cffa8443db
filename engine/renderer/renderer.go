package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoSurface is returned when the mount window cannot provide a drawable surface.
	ErrNoSurface = errors.New("renderer: mount window has no drawable surface")

	// ErrReleased is returned by operations on a released renderer.
	ErrReleased = errors.New("renderer: released")
)

// Binding slots of the frame bind group (group 0 of the lit pipeline).
const (
	frameBindingUniform   = 0
	frameBindingShadowMap = 1
	frameBindingSampler   = 2
)

var (
	frameUniformSize    = uint64(unsafe.Sizeof(GPUFrameUniform{}))
	shadowUniformSize   = uint64(unsafe.Sizeof(light.GPUShadowUniform{}))
	objectUniformSize   = uint64(unsafe.Sizeof(game_object.GPUObjectUniform{}))
	materialUniformSize = uint64(unsafe.Sizeof(material.GPUMaterialUniform{}))
)

// renderSurface is the drawable the renderer attaches to its mount window.
type renderSurface struct {
	label string
}

func (s *renderSurface) Label() string {
	return s.label
}

// drawItem is one mesh node prepared for the current frame.
type drawItem struct {
	mesh       bind_group_provider.BindGroupProvider
	object     bind_group_provider.BindGroupProvider
	materials  material.Binding
	groups     []model.Group
	castShadow bool
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	label   string
	surface *renderSurface
	backend RendererBackend

	pipelineCache map[string]pipeline.Pipeline

	width, height int

	// Pre-creation config collected from builder options
	presentMode          PresentMode
	msaa                 MSAASampleCount
	forceFallbackAdapter bool
	shadowsEnabled       bool

	// frameProvider holds the frame uniform, the shadow map view and the comparison sampler.
	frameProvider  bind_group_provider.BindGroupProvider
	shadowProvider bind_group_provider.BindGroupProvider
	shadowTexture  *wgpu.Texture
	shadowSize     int

	// objects holds one transform uniform per scene node, keyed by node ID.
	objects map[uint64]bind_group_provider.BindGroupProvider

	// meshes and materials track providers owned by geometries and materials that already hold GPU data.
	meshes    map[bind_group_provider.BindGroupProvider]struct{}
	materials map[bind_group_provider.BindGroupProvider]struct{}

	released bool
}

// Renderer draws one scene from one camera into a surface attached to a mount window.
//
// GPU resources for geometry and materials are uploaded lazily on first draw and stay owned
// by the geometry or material; the renderer owns its pipelines, render targets, shadow map,
// per-node transform uniforms and the device itself.
type Renderer interface {
	// Surface returns the drawable created for the mount window.
	//
	// Returns:
	//   - window.Surface: the renderer's surface
	Surface() window.Surface

	// Size returns the current drawing buffer size.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// Resize reconfigures the drawing buffer. Unchanged or non-positive sizes are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Render draws the scene once: a shadow pass if a directional light casts shadows, then the
	// main pass, then presents.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//
	// Returns:
	//   - error: an error if uploading or frame acquisition fails
	Render(s scene.Scene, cam camera.Camera) error

	// Release frees every GPU resource the renderer created, including the surface and device.
	// Safe to call more than once.
	Release()

	// Released reports whether Release has run.
	//
	// Returns:
	//   - bool: true after Release
	Released() bool
}

// Factory creates a renderer bound to a newly created surface for a mount window.
type Factory func(mount window.Window, options ...RendererBuilderOption) (Renderer, error)

var _ Renderer = &renderer{}
var _ Factory = NewRenderer

// NewRenderer creates a WebGPU renderer for the mount window's surface.
// The returned renderer's Surface is not yet attached; the caller appends it to the mount.
//
// Parameters:
//   - mount: the window to draw into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: ErrNoSurface for windows without a surface, or the GPU setup error
func NewRenderer(mount window.Window, options ...RendererBuilderOption) (Renderer, error) {
	if mount == nil {
		return nil, ErrNoSurface
	}
	r := newRenderer(options...)

	backend, err := newWGPURendererBackend(mount.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.presentMode)
	if err != nil {
		return nil, err
	}
	if err := r.init(backend, mount.Width(), mount.Height()); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

const defaultSurfaceLabel = "viewer_surface"

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:             &sync.Mutex{},
		pipelineCache:  make(map[string]pipeline.Pipeline),
		presentMode:    PresentModeVSync,
		msaa:           MSAA4x,
		shadowsEnabled: true,
		frameProvider:  bind_group_provider.NewBindGroupProvider("frame"),
		shadowProvider: bind_group_provider.NewBindGroupProvider("shadow"),
		objects:        make(map[uint64]bind_group_provider.BindGroupProvider),
		meshes:         make(map[bind_group_provider.BindGroupProvider]struct{}),
		materials:      make(map[bind_group_provider.BindGroupProvider]struct{}),
	}
	for _, opt := range options {
		opt(r)
	}
	r.label = common.Coalesce(r.label, defaultSurfaceLabel)
	r.surface = &renderSurface{label: r.label}
	return r
}

// init configures the surface, registers the lit and shadow pipelines, and creates the frame and
// shadow bind groups.
func (r *renderer) init(backend RendererBackend, width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend = backend
	r.width, r.height = max(width, 1), max(height, 1)
	if err := backend.ConfigureSurface(r.width, r.height); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}

	vs, fs, err := shader.NewLitShaders()
	if err != nil {
		return err
	}
	sh, err := shader.NewShadowShader()
	if err != nil {
		return err
	}
	for _, p := range []pipeline.Pipeline{pipeline.NewLitPipeline(vs, fs), pipeline.NewShadowPipeline(sh)} {
		if err := backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register %s pipeline: %w", p.PipelineKey(), err)
		}
		r.pipelineCache[p.PipelineKey()] = p
	}

	sampler, err := backend.CreateComparisonSampler()
	if err != nil {
		return err
	}
	r.frameProvider.SetSampler(frameBindingSampler, sampler)
	if err := r.ensureShadowMap(light.ShadowMapResolution); err != nil {
		return err
	}

	shadow := r.pipelineCache[pipeline.KeyShadow]
	return backend.InitBindGroup(r.shadowProvider, shadow.BindGroupLayout(0), groupDescriptor(shadow, 0), map[int]uint64{0: shadowUniformSize})
}

// ensureShadowMap (re)creates the shadow map at the given size and rebuilds the frame bind group
// over it. Caller holds r.mu.
func (r *renderer) ensureShadowMap(size int) error {
	if size <= 0 {
		size = light.ShadowMapResolution
	}
	if size == r.shadowSize {
		return nil
	}

	view, tex, err := r.backend.CreateShadowDepthTexture(size, size)
	if err != nil {
		return err
	}
	r.frameProvider.SetTextureView(frameBindingShadowMap, view)
	if r.shadowTexture != nil {
		r.shadowTexture.Release()
	}
	r.shadowTexture = tex
	r.shadowSize = size

	lit := r.pipelineCache[pipeline.KeyLit]
	return r.backend.InitBindGroup(r.frameProvider, lit.BindGroupLayout(0), groupDescriptor(lit, 0), map[int]uint64{frameBindingUniform: frameUniformSize})
}

func groupDescriptor(p pipeline.Pipeline, group int) wgpu.BindGroupLayoutDescriptor {
	return p.Shader(shader.ShaderTypeVertex).BindGroupLayoutDescriptors()[group]
}

func (r *renderer) Surface() window.Surface {
	return r.surface
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released || width <= 0 || height <= 0 {
		return
	}
	if width == r.width && height == r.height {
		return
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		log.Printf("renderer: resize to %dx%d failed: %v", width, height, err)
		return
	}
	r.width, r.height = width, height
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrReleased
	}
	if s == nil || cam == nil {
		return errors.New("renderer: nothing to render")
	}
	lit := r.pipelineCache[pipeline.KeyLit]
	shadow := r.pipelineCache[pipeline.KeyShadow]

	lightUniform, caster := light.BuildLightUniform(s.Lights())
	if !r.shadowsEnabled && caster != nil {
		caster = nil
		lightUniform.SunColor[3] = 0
	}
	if caster != nil {
		if err := r.ensureShadowMap(caster.ShadowMapSize()); err != nil {
			return err
		}
		su := light.GPUShadowUniform{LightVP: lightUniform.LightViewProj}
		r.backend.WriteBuffer(r.shadowProvider, 0, su.Marshal())
	}

	frame := GPUFrameUniform{
		Camera: cam.Uniform(),
		Light:  lightUniform,
		Fog:    scene.FogUniform(s),
	}
	r.backend.WriteBuffer(r.frameProvider, frameBindingUniform, frame.Marshal())
	r.backend.SetClearColor(s.Background())

	var draws []drawItem
	var prepErr error
	seen := make(map[uint64]struct{})
	s.Traverse(func(obj game_object.GameObject) {
		if prepErr != nil || !obj.Enabled() || !obj.IsMesh() {
			return
		}
		item, ok, err := r.prepare(obj, lit)
		if err != nil {
			prepErr = err
			return
		}
		if ok {
			seen[obj.ID()] = struct{}{}
			draws = append(draws, item)
		}
	})
	if prepErr != nil {
		return prepErr
	}
	r.pruneObjects(seen)

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}

	if caster != nil {
		r.backend.BeginShadowPass(r.frameProvider.TextureView(frameBindingShadowMap))
		for _, d := range draws {
			if d.castShadow {
				r.backend.ShadowDrawCall(shadow, d.mesh, []bind_group_provider.BindGroupProvider{r.shadowProvider, d.object})
			}
		}
		r.backend.EndShadowPass()
	}

	r.backend.BeginMainPass()
	for _, d := range draws {
		for _, g := range d.groups {
			m := d.materials.At(g.MaterialIndex)
			if m == nil || m.Disposed() {
				continue
			}
			p := r.colorPipeline(m)
			if p == nil {
				continue
			}
			r.backend.DrawCall(p, d.mesh, g.Start, g.Count, []bind_group_provider.BindGroupProvider{r.frameProvider, d.object, m.BindGroupProvider()})
		}
	}
	r.backend.EndMainPass()

	return r.backend.EndFrame()
}

// prepare uploads whatever a mesh node still lacks on the GPU and writes its per-frame uniforms.
// Nodes whose geometry or materials are gone are skipped. Caller holds r.mu.
func (r *renderer) prepare(obj game_object.GameObject, lit pipeline.Pipeline) (drawItem, bool, error) {
	geo := obj.Geometry()
	binding := obj.Material()
	if geo == nil || geo.Disposed() || binding.IsEmpty() {
		return drawItem{}, false, nil
	}

	mesh := geo.MeshProvider()
	if mesh.Released() {
		return drawItem{}, false, nil
	}
	if _, ok := r.meshes[mesh]; !ok {
		if err := r.backend.InitMeshBuffers(mesh, geo.VertexData(), geo.IndexData(), geo.IndexCount()); err != nil {
			return drawItem{}, false, fmt.Errorf("upload geometry %s: %w", geo.Name(), err)
		}
		r.meshes[mesh] = struct{}{}
		geo.OnDispose(func() { r.forget(mesh) })
	}

	var matErr error
	binding.Each(func(m material.Material) {
		if matErr != nil || m.Disposed() {
			return
		}
		p := r.colorPipeline(m)
		if p == nil {
			return
		}
		provider := m.BindGroupProvider()
		if _, ok := r.materials[provider]; !ok {
			if err := r.backend.InitBindGroup(provider, p.BindGroupLayout(2), groupDescriptor(p, 2), map[int]uint64{0: materialUniformSize}); err != nil {
				matErr = fmt.Errorf("upload material %s: %w", m.Name(), err)
				return
			}
			r.materials[provider] = struct{}{}
			m.OnDispose(func() { r.forget(provider) })
		}
		u := m.Uniform()
		r.backend.WriteBuffer(provider, 0, u.Marshal())
	})
	if matErr != nil {
		return drawItem{}, false, matErr
	}

	object, ok := r.objects[obj.ID()]
	if !ok {
		object = bind_group_provider.NewBindGroupProvider(fmt.Sprintf("object_%d", obj.ID()))
		if err := r.backend.InitBindGroup(object, lit.BindGroupLayout(1), groupDescriptor(lit, 1), map[int]uint64{0: objectUniformSize}); err != nil {
			object.Release()
			return drawItem{}, false, fmt.Errorf("object %s uniform: %w", obj.Name(), err)
		}
		r.objects[obj.ID()] = object
	}
	u := obj.Uniform()
	r.backend.WriteBuffer(object, 0, u.Marshal())

	return drawItem{
		mesh:       mesh,
		object:     object,
		materials:  binding,
		groups:     geo.Groups(),
		castShadow: obj.CastShadow(),
	}, true, nil
}

// colorPipeline returns the registered pipeline a material draws with, or nil if the key is unknown
// or names a depth-only pipeline.
func (r *renderer) colorPipeline(m material.Material) pipeline.Pipeline {
	p := r.pipelineCache[m.PipelineKey()]
	if p == nil || p.DepthOnly() {
		return nil
	}
	return p
}

// pruneObjects releases transform uniforms of nodes that were not drawn this frame. Caller holds r.mu.
func (r *renderer) pruneObjects(seen map[uint64]struct{}) {
	for id, p := range r.objects {
		if _, ok := seen[id]; !ok {
			p.Release()
			delete(r.objects, id)
		}
	}
}

// forget drops a disposed geometry or material provider from the upload sets.
func (r *renderer) forget(p bind_group_provider.BindGroupProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.meshes, p)
	delete(r.materials, p)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.released = true

	for id, p := range r.objects {
		p.Release()
		delete(r.objects, id)
	}
	clear(r.meshes)
	clear(r.materials)

	r.frameProvider.Release()
	r.shadowProvider.Release()
	if r.shadowTexture != nil {
		r.shadowTexture.Release()
		r.shadowTexture = nil
	}
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	if r.backend != nil {
		r.backend.Release()
	}
}

func (r *renderer) Released() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}
