package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestLitAndShadowPipelines(t *testing.T) {
	vs, fs, err := shader.NewLitShaders()
	if err != nil {
		t.Fatalf("NewLitShaders: %v", err)
	}
	sh, err := shader.NewShadowShader()
	if err != nil {
		t.Fatalf("NewShadowShader: %v", err)
	}

	lit := NewLitPipeline(vs, fs)
	if lit.PipelineKey() != KeyLit || lit.DepthOnly() {
		t.Fatalf("lit pipeline key %q depth-only %v", lit.PipelineKey(), lit.DepthOnly())
	}
	if lit.DepthFormat() != wgpu.TextureFormatDepth24Plus {
		t.Fatalf("lit depth format = %v", lit.DepthFormat())
	}
	if lit.Shader(shader.ShaderTypeFragment) != fs {
		t.Fatal("lit fragment shader not stored")
	}

	shadow := NewShadowPipeline(sh)
	if !shadow.DepthOnly() {
		t.Fatal("shadow pipeline should be depth-only")
	}
	if shadow.DepthFormat() != wgpu.TextureFormatDepth32Float {
		t.Fatalf("shadow depth format = %v", shadow.DepthFormat())
	}
	if shadow.DepthBias() == 0 || shadow.DepthBiasSlopeScale() == 0 {
		t.Fatal("shadow pipeline should carry a depth bias")
	}
}

func TestBuilderOptions(t *testing.T) {
	p := NewPipeline("custom",
		WithCullMode(wgpu.CullModeBack),
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
	)
	if p.CullMode() != wgpu.CullModeBack {
		t.Fatalf("cull mode = %v", p.CullMode())
	}
	if p.DepthTestEnabled() || p.DepthWriteEnabled() {
		t.Fatal("depth test and write should be disabled")
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Fatalf("default topology = %v", p.Topology())
	}
}

func TestUnregisteredPipeline(t *testing.T) {
	p := NewPipeline("empty")
	if p.RenderPipeline() != nil {
		t.Fatal("expected nil render pipeline before registration")
	}
	if p.BindGroupLayout(0) != nil || p.BindGroupLayout(-1) != nil {
		t.Fatal("expected nil layouts before registration")
	}
	p.Release()
	p.Release()
}
