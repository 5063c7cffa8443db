package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat    *wgpu.TextureFormat
	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView
	clearColor       wgpu.Color

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	// layoutCache shares one BindGroupLayout between pipelines declaring identical groups,
	// so a bind group created for one pipeline is valid in the other.
	layoutCache map[string]*wgpu.BindGroupLayout

	// Frame state. The shadow pass and the main pass are encoded on one command encoder.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	released bool
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the instance, surface, adapter and device for a window surface.
// Everything acquired before a failure is released again.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, mode PresentMode) (RendererBackend, error) {
	if surfaceDescriptor == nil {
		return nil, ErrNoSurface
	}
	runtime.LockOSThread()

	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		sampleCount: sampleCount,
		layoutCache: make(map[string]*wgpu.BindGroupLayout),
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	b.setPresentMode(mode)
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Viewer Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	return b, nil
}

func (b *wgpuRendererBackendImpl) setPresentMode(mode PresentMode) {
	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return ErrReleased
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = &capabilities.Formats[0]

	alphaMode := wgpu.CompositeAlphaModeAuto
	if len(capabilities.AlphaModes) > 0 {
		alphaMode = capabilities.AlphaModes[0]
	}
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   alphaMode,
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	if count > 1 {
		// the pass draws into the MSAA texture and resolves into the swapchain view
		tex, view, err := b.createTarget("MSAA Texture", width, height, count, *b.surfaceFormat)
		if err != nil {
			return err
		}
		b.msaaTexture, b.msaaTextureView = tex, view
	}

	// depth sample count must match the color attachment
	tex, view, err := b.createTarget("Depth Texture", width, height, count, wgpu.TextureFormatDepth24Plus)
	if err != nil {
		return err
	}
	b.depthTexture, b.depthTextureView = tex, view
	return nil
}

func (b *wgpuRendererBackendImpl) createTarget(label string, width, height int, samples uint32, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return tex, view, nil
}

// releaseTargets frees the depth and MSAA targets. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetClearColor(c common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearColor = wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: 1.0}
}

// bindGroupLayout returns the cached layout for a descriptor, creating it on first use. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) bindGroupLayout(desc wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	key := fmt.Sprintf("%+v", desc.Entries)
	if layout, ok := b.layoutCache[key]; ok {
		return layout, nil
	}
	layout, err := b.device.CreateBindGroupLayout(&desc)
	if err != nil {
		return nil, err
	}
	b.layoutCache[key] = layout
	return layout, nil
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return ErrReleased
	}
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil {
		return errors.New("a vertex shader must be set to create a render pipeline")
	}
	if b.surfaceFormat == nil && !p.DepthOnly() {
		return errors.New("surface must be configured before registering a color pipeline")
	}

	vs, err := b.device.CreateShaderModule(vertexShader.Module())
	if err != nil {
		return fmt.Errorf("%s: vertex module: %w", p.PipelineKey(), err)
	}
	defer vs.Release()

	var fragment *wgpu.FragmentState
	var fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor
	if fragmentShader != nil {
		fs, err := b.device.CreateShaderModule(fragmentShader.Module())
		if err != nil {
			return fmt.Errorf("%s: fragment module: %w", p.PipelineKey(), err)
		}
		defer fs.Release()

		target := wgpu.ColorTargetState{
			Format:    *b.surfaceFormat,
			WriteMask: p.WriteMask(),
		}
		if p.BlendEnabled() {
			target.Blend = p.BlendState()
		}
		fragment = &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		}
		fragmentLayouts = fragmentShader.BindGroupLayoutDescriptors()
	}

	merged := mergeBindGroupLayouts(vertexShader.BindGroupLayoutDescriptors(), fragmentLayouts)
	maxGroup := -1
	for g := range merged {
		if g > maxGroup {
			maxGroup = g
		}
	}
	bindGroupLayouts := make([]*wgpu.BindGroupLayout, maxGroup+1)
	for g := 0; g <= maxGroup; g++ {
		desc, ok := merged[g]
		if !ok {
			return fmt.Errorf("%s: bind group %d is not declared", p.PipelineKey(), g)
		}
		desc.Label = fmt.Sprintf("%s group %d", p.PipelineKey(), g)
		layout, err := b.bindGroupLayout(desc)
		if err != nil {
			return fmt.Errorf("%s: bind group layout %d: %w", p.PipelineKey(), g, err)
		}
		bindGroupLayouts[g] = layout
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	samples := uint32(b.sampleCount)
	if p.DepthOnly() {
		samples = 1
	}
	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayouts(),
		},
		Fragment: fragment,
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              p.DepthFormat(),
			DepthWriteEnabled:   p.DepthWriteEnabled(),
			DepthCompare:        depthCompare,
			DepthBias:           p.DepthBias(),
			DepthBiasSlopeScale: p.DepthBiasSlopeScale(),
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created, bindGroupLayouts)
	return nil
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return ErrReleased
	}
	if len(vertexData) == 0 || len(indexData) == 0 {
		return fmt.Errorf("%s: empty mesh data", provider.Label())
	}

	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return err
	}
	b.queue.WriteBuffer(vb, 0, vertexData)
	b.queue.WriteBuffer(ib, 0, indexData)

	provider.SetMesh(vb, ib, indexCount)
	return nil
}

func (b *wgpuRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizes map[int]uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return ErrReleased
	}
	if layout == nil || len(descriptor.Entries) == 0 {
		return fmt.Errorf("%s: no layout to create a bind group from", provider.Label())
	}

	entries := make([]wgpu.BindGroupEntry, len(descriptor.Entries))
	for i, entry := range descriptor.Entries {
		binding := int(entry.Binding)

		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			tv := provider.TextureView(binding)
			if tv == nil {
				return fmt.Errorf("%s: texture binding %d has no texture view", provider.Label(), binding)
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, TextureView: tv}
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			samp := provider.Sampler(binding)
			if samp == nil {
				return fmt.Errorf("%s: sampler binding %d has no sampler", provider.Label(), binding)
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, Sampler: samp}
		default:
			buf := provider.Buffer(binding)
			if buf == nil {
				size, ok := bufferSizes[binding]
				if !ok || size == 0 {
					return fmt.Errorf("%s: buffer binding %d has no size", provider.Label(), binding)
				}
				usage := wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
				if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
					usage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
				}
				var err error
				buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
					Label: fmt.Sprintf("%s Buffer %d", provider.Label(), binding),
					Size:  size,
					Usage: usage,
				})
				if err != nil {
					return err
				}
				provider.SetBuffer(binding, buf)
			}
			entries[i] = wgpu.BindGroupEntry{
				Binding: entry.Binding,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			}
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) CreateShadowDepthTexture(width, height int) (*wgpu.TextureView, *wgpu.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return nil, nil, ErrReleased
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Shadow Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create shadow depth texture: %w", err)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("failed to create shadow depth texture view: %w", err)
	}
	return view, tex, nil
}

func (b *wgpuRendererBackendImpl) CreateComparisonSampler() (*wgpu.Sampler, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return nil, ErrReleased
	}
	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comparison sampler: %w", err)
	}
	return samp, nil
}

func (b *wgpuRendererBackendImpl) WriteBuffer(provider bind_group_provider.BindGroupProvider, binding int, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return
	}
	buf := provider.Buffer(binding)
	if buf == nil {
		return
	}
	b.queue.WriteBuffer(buf, 0, data)
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return ErrReleased
	}
	// a swapchain image may only be acquired once per present
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.frameEncoder = encoder
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) BeginShadowPass(depthView *wgpu.TextureView) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil || b.framePass != nil {
		return
	}
	b.framePass = b.frameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Shadow Pass",
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
}

func (b *wgpuRendererBackendImpl) ShadowDrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) {
	b.draw(p, meshProvider, 0, meshProvider.IndexCount(), bindGroups)
}

func (b *wgpuRendererBackendImpl) EndShadowPass() {
	b.endPass()
}

func (b *wgpuRendererBackendImpl) BeginMainPass() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil || b.framePass != nil {
		return
	}

	color := wgpu.RenderPassColorAttachment{
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: b.clearColor,
	}
	if b.msaaTextureView != nil {
		color.View = b.msaaTextureView
		color.ResolveTarget = b.frameView
		color.StoreOp = wgpu.StoreOpDiscard
	} else {
		color.View = b.frameView
	}

	b.framePass = b.frameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:            "Main Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
}

func (b *wgpuRendererBackendImpl) DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, firstIndex, indexCount int, bindGroups []bind_group_provider.BindGroupProvider) {
	b.draw(p, meshProvider, firstIndex, indexCount, bindGroups)
}

func (b *wgpuRendererBackendImpl) draw(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, firstIndex, indexCount int, bindGroups []bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rp := p.RenderPipeline()
	if b.framePass == nil || rp == nil || indexCount <= 0 {
		return
	}
	vb, ib := meshProvider.VertexBuffer(), meshProvider.IndexBuffer()
	if vb == nil || ib == nil {
		return
	}

	b.framePass.SetPipeline(rp)
	for i, bg := range bindGroups {
		group := bg.BindGroup()
		if group == nil {
			return
		}
		b.framePass.SetBindGroup(uint32(i), group, nil)
	}
	b.framePass.SetVertexBuffer(0, vb, 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(ib, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(indexCount), 1, uint32(firstIndex), 0, 0)
}

func (b *wgpuRendererBackendImpl) EndMainPass() {
	b.endPass()
}

func (b *wgpuRendererBackendImpl) endPass() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return nil
	}
	if b.framePass != nil {
		b.framePass.End()
		b.framePass.Release()
		b.framePass = nil
	}

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err == nil {
		b.queue.Submit(commandBuffer)
		commandBuffer.Release()
		b.surface.Present()
	}
	b.releaseFrame()
	return err
}

// releaseFrame drops the per-frame encoder and swapchain image. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) releaseFrame() {
	if b.frameEncoder != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return
	}
	b.released = true

	if b.framePass != nil {
		b.framePass.Release()
		b.framePass = nil
	}
	b.releaseFrame()
	b.releaseTargets()
	for key, layout := range b.layoutCache {
		layout.Release()
		delete(b.layoutCache, key)
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// mergeBindGroupLayouts merges the bind group layout descriptors of a vertex and fragment shader
// into one set for a render pipeline layout.
//
// For each group index present in either shader:
//   - Entries with the same binding number have their Visibility flags ORed together
//   - Entries unique to one shader are included with their original visibility
//
// Parameters:
//   - vertexLayouts: bind group layout descriptors from the vertex shader
//   - fragmentLayouts: bind group layout descriptors from the fragment shader, nil for depth-only pipelines
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: merged descriptors keyed by group index
func mergeBindGroupLayouts(vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor) map[int]wgpu.BindGroupLayoutDescriptor {
	merged := make(map[int]wgpu.BindGroupLayoutDescriptor)
	for _, layouts := range []map[int]wgpu.BindGroupLayoutDescriptor{vertexLayouts, fragmentLayouts} {
		for g, desc := range layouts {
			existing, ok := merged[g]
			if !ok {
				entries := make([]wgpu.BindGroupLayoutEntry, len(desc.Entries))
				copy(entries, desc.Entries)
				merged[g] = wgpu.BindGroupLayoutDescriptor{Label: desc.Label, Entries: entries}
				continue
			}

			byBinding := make(map[uint32]wgpu.BindGroupLayoutEntry, len(existing.Entries)+len(desc.Entries))
			for _, e := range existing.Entries {
				byBinding[e.Binding] = e
			}
			for _, e := range desc.Entries {
				if prev, ok := byBinding[e.Binding]; ok {
					prev.Visibility |= e.Visibility
					byBinding[e.Binding] = prev
				} else {
					byBinding[e.Binding] = e
				}
			}

			entries := make([]wgpu.BindGroupLayoutEntry, 0, len(byBinding))
			for _, e := range byBinding {
				entries = append(entries, e)
			}
			sort.Slice(entries, func(i, j int) bool {
				return entries[i].Binding < entries[j].Binding
			})
			merged[g] = wgpu.BindGroupLayoutDescriptor{Label: existing.Label, Entries: entries}
		}
	}
	return merged
}
