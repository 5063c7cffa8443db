package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeBackend records the calls a renderer makes without touching a GPU.
type fakeBackend struct {
	configured   [][2]int
	pipelines    []string
	meshUploads  int
	bindGroups   map[string]int
	writes       map[string][]byte
	shadowMaps   []int
	clear        common.Color
	frames       int
	shadowPasses int
	shadowDraws  int
	mainDraws    int
	released     int
	configureErr error
}

var _ RendererBackend = &fakeBackend{}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		bindGroups: make(map[string]int),
		writes:     make(map[string][]byte),
	}
}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	if f.configureErr != nil {
		return f.configureErr
	}
	f.configured = append(f.configured, [2]int{width, height})
	return nil
}

func (f *fakeBackend) SetClearColor(c common.Color) { f.clear = c }

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	f.pipelines = append(f.pipelines, p.PipelineKey())
	p.SetRenderPipeline(nil, nil)
	return nil
}

func (f *fakeBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	f.meshUploads++
	return nil
}

func (f *fakeBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizes map[int]uint64) error {
	f.bindGroups[provider.Label()]++
	return nil
}

func (f *fakeBackend) CreateShadowDepthTexture(width, height int) (*wgpu.TextureView, *wgpu.Texture, error) {
	f.shadowMaps = append(f.shadowMaps, width)
	return nil, nil, nil
}

func (f *fakeBackend) CreateComparisonSampler() (*wgpu.Sampler, error) { return nil, nil }

func (f *fakeBackend) WriteBuffer(provider bind_group_provider.BindGroupProvider, binding int, data []byte) {
	f.writes[provider.Label()] = data
}

func (f *fakeBackend) BeginFrame() error {
	f.frames++
	return nil
}

func (f *fakeBackend) BeginShadowPass(depthView *wgpu.TextureView) { f.shadowPasses++ }

func (f *fakeBackend) ShadowDrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) {
	f.shadowDraws++
}

func (f *fakeBackend) EndShadowPass() {}

func (f *fakeBackend) BeginMainPass() {}

func (f *fakeBackend) DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, firstIndex, indexCount int, bindGroups []bind_group_provider.BindGroupProvider) {
	f.mainDraws++
}

func (f *fakeBackend) EndMainPass() {}

func (f *fakeBackend) EndFrame() error { return nil }

func (f *fakeBackend) Release() { f.released++ }

func newTestRenderer(t *testing.T, opts ...RendererBuilderOption) (*renderer, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend()
	r := newRenderer(opts...)
	if err := r.init(fb, 800, 600); err != nil {
		t.Fatalf("init: %v", err)
	}
	return r, fb
}

// testScene is a shadow-casting capsule over a shadow-receiving ground, lit by a hemisphere and a sun.
func testScene(t *testing.T, sunOpts ...light.LightBuilderOption) scene.Scene {
	t.Helper()
	ground, err := model.NewCircle(30, 16)
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}
	capsule, err := model.NewCapsule(0.35, 1, 4, 8)
	if err != nil {
		t.Fatalf("NewCapsule: %v", err)
	}
	sun := light.NewDirectionalLight(common.HexColor(0xffffff), 1,
		append([]light.LightBuilderOption{light.WithPosition(5, 10, 5), light.WithCastsShadows(true)}, sunOpts...)...)

	return scene.NewScene("test",
		scene.WithBackground(common.HexColor(0x87b5e0)),
		scene.WithObjects(
			game_object.NewMesh(ground, material.Single(material.NewStandardMaterial("ground", common.HexColor(0x3f6b3a))),
				game_object.WithReceiveShadow(true)),
			game_object.NewMesh(capsule, material.Single(material.NewStandardMaterial("capsule", common.HexColor(0xe0a96d))),
				game_object.WithCastShadow(true)),
			game_object.NewLightNode(light.NewHemisphereLight(common.HexColor(0xffffff), common.HexColor(0x444444), 0.8)),
			game_object.NewLightNode(sun),
		),
	)
}

func TestFrameUniformSize(t *testing.T) {
	var u GPUFrameUniform
	if u.Size() != 240 {
		t.Fatalf("frame uniform size = %d, want 240", u.Size())
	}
	if got := len(u.Marshal()); got != 240 {
		t.Fatalf("marshaled frame uniform = %d bytes, want 240", got)
	}
}

func TestParsePresentMode(t *testing.T) {
	tests := []struct {
		in      string
		want    PresentMode
		wantErr bool
	}{
		{"vsync", PresentModeVSync, false},
		{" Uncapped ", PresentModeUncapped, false},
		{"mailbox", PresentModeVSync, true},
	}
	for _, tt := range tests {
		got, err := ParsePresentMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("ParsePresentMode(%q) = %v, %v", tt.in, got, err)
		}
	}
	if PresentModeUncapped.String() != "uncapped" {
		t.Fatalf("String = %q", PresentModeUncapped.String())
	}
}

func TestParseMSAA(t *testing.T) {
	for _, n := range []int{1, 4, 8, 16} {
		if got, err := ParseMSAA(n); err != nil || int(got) != n {
			t.Fatalf("ParseMSAA(%d) = %v, %v", n, got, err)
		}
	}
	if _, err := ParseMSAA(2); err == nil {
		t.Fatal("expected error for 2 samples")
	}
}

func TestNewRendererWithoutSurface(t *testing.T) {
	if _, err := NewRenderer(nil); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("nil mount err = %v, want ErrNoSurface", err)
	}
	if _, err := NewRenderer(window.NewHeadlessWindow()); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("headless mount err = %v, want ErrNoSurface", err)
	}
}

func TestInitRegistersPipelines(t *testing.T) {
	r, fb := newTestRenderer(t)
	if len(fb.pipelines) != 2 || fb.pipelines[0] != pipeline.KeyLit || fb.pipelines[1] != pipeline.KeyShadow {
		t.Fatalf("pipelines = %v", fb.pipelines)
	}
	if len(fb.configured) != 1 || fb.configured[0] != [2]int{800, 600} {
		t.Fatalf("configured = %v", fb.configured)
	}
	if len(fb.shadowMaps) != 1 || fb.shadowMaps[0] != light.ShadowMapResolution {
		t.Fatalf("shadow maps = %v", fb.shadowMaps)
	}
	if fb.bindGroups["frame"] != 1 || fb.bindGroups["shadow"] != 1 {
		t.Fatalf("bind groups = %v", fb.bindGroups)
	}
	if r.Surface().Label() != "viewer_surface" {
		t.Fatalf("surface label = %q", r.Surface().Label())
	}
}

func TestRenderDrawsShadowAndMainPasses(t *testing.T) {
	r, fb := newTestRenderer(t)
	s := testScene(t)
	cam := camera.NewCamera(camera.WithPosition(0, 2.2, 6))

	for i := 0; i < 2; i++ {
		if err := r.Render(s, cam); err != nil {
			t.Fatalf("Render: %v", err)
		}
	}

	if fb.frames != 2 || fb.shadowPasses != 2 {
		t.Fatalf("frames = %d, shadow passes = %d", fb.frames, fb.shadowPasses)
	}
	if fb.shadowDraws != 2 {
		t.Fatalf("shadow draws = %d, want 2 (one caster per frame)", fb.shadowDraws)
	}
	if fb.mainDraws != 4 {
		t.Fatalf("main draws = %d, want 4", fb.mainDraws)
	}
	if fb.meshUploads != 2 {
		t.Fatalf("mesh uploads = %d, want 2 (lazy, once per geometry)", fb.meshUploads)
	}
	if len(r.objects) != 2 {
		t.Fatalf("object uniforms = %d, want 2", len(r.objects))
	}
	if got := len(fb.writes["frame"]); got != 240 {
		t.Fatalf("frame write = %d bytes", got)
	}
	if got := len(fb.writes["shadow"]); got != 64 {
		t.Fatalf("shadow write = %d bytes", got)
	}
	if fb.clear != common.HexColor(0x87b5e0) {
		t.Fatalf("clear color = %v", fb.clear)
	}
}

func TestRenderWithoutShadows(t *testing.T) {
	r, fb := newTestRenderer(t, WithShadows(false))
	if err := r.Render(testScene(t), camera.NewCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if fb.shadowPasses != 0 || fb.shadowDraws != 0 {
		t.Fatalf("shadow pass ran with shadows disabled")
	}
	if fb.mainDraws != 2 {
		t.Fatalf("main draws = %d, want 2", fb.mainDraws)
	}
}

func TestRenderResizesShadowMap(t *testing.T) {
	r, fb := newTestRenderer(t)
	if err := r.Render(testScene(t, light.WithShadowMapSize(1024)), camera.NewCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(fb.shadowMaps) != 2 || fb.shadowMaps[1] != 1024 {
		t.Fatalf("shadow maps = %v", fb.shadowMaps)
	}
	if fb.bindGroups["frame"] != 2 {
		t.Fatalf("frame bind group rebuilt %d times, want 2", fb.bindGroups["frame"])
	}
}

func TestRenderSkipsDisposedAndRemovedNodes(t *testing.T) {
	r, fb := newTestRenderer(t)
	s := testScene(t)
	cam := camera.NewCamera()
	if err := r.Render(s, cam); err != nil {
		t.Fatalf("Render: %v", err)
	}

	children := s.Children()
	children[0].Geometry().Dispose()
	s.Remove(children[1])

	fb.mainDraws = 0
	if err := r.Render(s, cam); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if fb.mainDraws != 0 {
		t.Fatalf("main draws = %d, want 0", fb.mainDraws)
	}
	if len(r.objects) != 0 || len(r.meshes) != 1 {
		t.Fatalf("objects = %d meshes = %d", len(r.objects), len(r.meshes))
	}
}

func TestResize(t *testing.T) {
	r, fb := newTestRenderer(t)

	r.Resize(1024, 768)
	r.Resize(1024, 768)
	r.Resize(0, 768)
	r.Resize(-1, -1)
	if len(fb.configured) != 2 {
		t.Fatalf("configure calls = %d, want 2", len(fb.configured))
	}
	if w, h := r.Size(); w != 1024 || h != 768 {
		t.Fatalf("size = %dx%d", w, h)
	}

	fb.configureErr = errors.New("lost")
	r.Resize(640, 480)
	if w, h := r.Size(); w != 1024 || h != 768 {
		t.Fatalf("failed resize changed size to %dx%d", w, h)
	}
}

func TestRelease(t *testing.T) {
	r, fb := newTestRenderer(t)
	if err := r.Render(testScene(t), camera.NewCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	r.Release()
	r.Release()
	if fb.released != 1 {
		t.Fatalf("backend released %d times, want 1", fb.released)
	}
	if !r.Released() || len(r.objects) != 0 || len(r.pipelineCache) != 0 {
		t.Fatal("renderer state not cleared")
	}
	if err := r.Render(testScene(t), camera.NewCamera()); !errors.Is(err, ErrReleased) {
		t.Fatalf("Render after release err = %v", err)
	}
	r.Resize(10, 10)
	if len(fb.configured) != 1 {
		t.Fatal("Resize reconfigured a released renderer")
	}
}

func TestRenderSkipsUnknownMaterialPipeline(t *testing.T) {
	r, fb := newTestRenderer(t)
	geo, err := model.NewCapsule(0.35, 1, 4, 8)
	if err != nil {
		t.Fatalf("NewCapsule: %v", err)
	}
	toon := material.NewStandardMaterial("toon", common.HexColor(0xffffff), material.WithPipelineKey("toon"))
	depth := material.NewStandardMaterial("depth", common.HexColor(0xffffff), material.WithPipelineKey(pipeline.KeyShadow))
	s := scene.NewScene("custom", scene.WithObjects(
		game_object.NewMesh(geo, material.Single(toon)),
		game_object.NewMesh(geo, material.Single(depth)),
	))

	if err := r.Render(s, camera.NewCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if fb.mainDraws != 0 {
		t.Fatalf("main draws = %d, want 0", fb.mainDraws)
	}
	if fb.bindGroups["material_toon"] != 0 || fb.bindGroups["material_depth"] != 0 {
		t.Fatalf("bind groups = %v", fb.bindGroups)
	}
	if fb.meshUploads != 1 {
		t.Fatalf("shared geometry uploaded %d times", fb.meshUploads)
	}
}

func TestSurfaceLabel(t *testing.T) {
	if got := newRenderer(WithLabel("main")).Surface().Label(); got != "main" {
		t.Fatalf("label = %q, want main", got)
	}
	if got := newRenderer(WithLabel("")).Surface().Label(); got != "viewer_surface" {
		t.Fatalf("empty label = %q, want viewer_surface", got)
	}
}
