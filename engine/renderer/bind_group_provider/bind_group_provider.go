package bind_group_provider

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	mu *sync.Mutex

	// label is a debug label used for GPU object names.
	label string

	// The following fields are GPU allocated resources populated by the Renderer on first use.
	// Layouts are owned by the pipeline that declared them, not by the provider.

	bindGroup    *wgpu.BindGroup
	buffers      map[int]*wgpu.Buffer
	textureViews map[int]*wgpu.TextureView
	samplers     map[int]*wgpu.Sampler

	// vertexBuffer and indexBuffer are set for mesh providers only.
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int

	released bool
}

// BindGroupProvider is a container for the GPU handles that back one scene resource
// (a geometry's vertex/index buffers, a material's uniform, a node's transform uniform).
//
// Usage pattern:
//  1. The resource owner creates an empty provider with a label
//  2. The Renderer fills it the first time the resource is drawn
//  3. The Renderer writes uniforms and binds its bind group each frame
//  4. The owner calls Release when the resource is disposed; every handle is released once
type BindGroupProvider interface {
	// Release releases every GPU handle held by the provider. Calling it again is a no-op,
	// and setters called after Release release the handle they are given immediately.
	Release()

	// Released reports whether Release has been called.
	//
	// Returns:
	//   - bool: true once released
	Released() bool

	// Initialized reports whether the Renderer has populated the provider with a bind group or mesh buffers.
	//
	// Returns:
	//   - bool: true if GPU resources exist
	Initialized() bool

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// Buffer returns the buffer at a binding index, or nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the GPU texture view for a specific binding, or nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view or nil
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the GPU sampler for a specific binding, or nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler or nil
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetBindGroup stores the bind group, releasing any previous one.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBuffer stores a buffer at a binding index, releasing any previous buffer there.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the created buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTextureView stores a GPU texture view for a specific binding, releasing any previous one.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tv: the texture view to store
	SetTextureView(binding int, tv *wgpu.TextureView)

	// SetSampler stores a GPU sampler for a specific binding, releasing any previous one.
	//
	// Parameters:
	//   - binding: the binding index
	//   - s: the sampler to store
	SetSampler(binding int, s *wgpu.Sampler)

	// SetMesh stores the vertex and index buffers of a mesh provider.
	//
	// Parameters:
	//   - vertices: the vertex buffer
	//   - indices: the index buffer
	//   - indexCount: number of indices to draw
	SetMesh(vertices, indices *wgpu.Buffer, indexCount int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty BindGroupProvider.
//
// Parameters:
//   - label: debug label for the provider and the GPU objects created for it
//
// Returns:
//   - BindGroupProvider: a new empty provider
func NewBindGroupProvider(label string) BindGroupProvider {
	return &bindGroupProvider{
		mu:           &sync.Mutex{},
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Released() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}

func (p *bindGroupProvider) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bindGroup != nil || p.vertexBuffer != nil
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bindGroup
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buffers[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.textureViews[binding]
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.samplers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		releaseBindGroup(bg)
		return
	}
	if p.bindGroup != nil && p.bindGroup != bg {
		p.bindGroup.Release()
	}
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		releaseBuffer(buf)
		return
	}
	if old := p.buffers[binding]; old != nil && old != buf {
		old.Release()
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		if tv != nil {
			tv.Release()
		}
		return
	}
	if old := p.textureViews[binding]; old != nil && old != tv {
		old.Release()
	}
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		if s != nil {
			s.Release()
		}
		return
	}
	if old := p.samplers[binding]; old != nil && old != s {
		old.Release()
	}
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetMesh(vertices, indices *wgpu.Buffer, indexCount int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		releaseBuffer(vertices)
		releaseBuffer(indices)
		return
	}
	if p.vertexBuffer != nil && p.vertexBuffer != vertices {
		p.vertexBuffer.Release()
	}
	if p.indexBuffer != nil && p.indexBuffer != indices {
		p.indexBuffer.Release()
	}
	p.vertexBuffer = vertices
	p.indexBuffer = indices
	p.indexCount = indexCount
}

func (p *bindGroupProvider) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return
	}
	p.released = true

	// the bind group references the buffers and views, so it goes first
	releaseBindGroup(p.bindGroup)
	p.bindGroup = nil

	for i, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for i, buf := range p.buffers {
		releaseBuffer(buf)
		delete(p.buffers, i)
	}

	releaseBuffer(p.vertexBuffer)
	releaseBuffer(p.indexBuffer)
	p.vertexBuffer = nil
	p.indexBuffer = nil
	p.indexCount = 0
}

func releaseBuffer(b *wgpu.Buffer) {
	if b != nil {
		b.Release()
	}
}

func releaseBindGroup(bg *wgpu.BindGroup) {
	if bg != nil {
		bg.Release()
	}
}
