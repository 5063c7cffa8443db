package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestLitShadersReflect(t *testing.T) {
	vs, fs, err := NewLitShaders()
	if err != nil {
		t.Fatalf("NewLitShaders: %v", err)
	}
	if vs.EntryPoint() != "vs_main" || fs.EntryPoint() != "fs_main" {
		t.Fatalf("entry points = %q, %q", vs.EntryPoint(), fs.EntryPoint())
	}

	layouts := vs.VertexLayouts()
	if len(layouts) != 1 {
		t.Fatalf("vertex layouts = %d, want 1", len(layouts))
	}
	if layouts[0].ArrayStride != 32 || len(layouts[0].Attributes) != 3 {
		t.Fatalf("layout stride %d attrs %d, want 32 and 3", layouts[0].ArrayStride, len(layouts[0].Attributes))
	}
	if uv := layouts[0].Attributes[2]; uv.Offset != 24 || uv.Format != wgpu.VertexFormatFloat32x2 {
		t.Fatalf("uv attribute = %+v", uv)
	}
	if fs.VertexLayouts() != nil {
		t.Fatal("fragment stage should not reflect vertex layouts")
	}

	groups := vs.BindGroupLayoutDescriptors()
	if len(groups) != 3 {
		t.Fatalf("bind groups = %d, want 3", len(groups))
	}
	frame := groups[0].Entries
	if len(frame) != 3 {
		t.Fatalf("group 0 entries = %d, want 3", len(frame))
	}
	if frame[0].Buffer.Type != wgpu.BufferBindingTypeUniform {
		t.Fatalf("frame binding type = %v", frame[0].Buffer.Type)
	}
	if frame[1].Texture.SampleType != wgpu.TextureSampleTypeDepth {
		t.Fatalf("shadow map sample type = %v", frame[1].Texture.SampleType)
	}
	if frame[2].Sampler.Type != wgpu.SamplerBindingTypeComparison {
		t.Fatalf("shadow sampler type = %v", frame[2].Sampler.Type)
	}
	if got := vs.BindGroupVarName(2, 0); got != "material_data" {
		t.Fatalf("group 2 binding 0 = %q", got)
	}
}

func TestShadowShaderSharesObjectGroup(t *testing.T) {
	sh, err := NewShadowShader()
	if err != nil {
		t.Fatalf("NewShadowShader: %v", err)
	}
	vs, _, err := NewLitShaders()
	if err != nil {
		t.Fatalf("NewLitShaders: %v", err)
	}

	a := sh.BindGroupLayoutDescriptors()[1].Entries
	b := vs.BindGroupLayoutDescriptors()[1].Entries
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("object group entries = %d and %d, want 1", len(a), len(b))
	}
	if a[0].Binding != b[0].Binding || a[0].Visibility != b[0].Visibility || a[0].Buffer.Type != b[0].Buffer.Type {
		t.Fatalf("object group differs: %+v vs %+v", a, b)
	}
}

func TestNewShaderMissingEntryPoint(t *testing.T) {
	if _, err := NewShader("bad", ShaderTypeFragment, ShadowSource()); err == nil {
		t.Fatal("expected error for a source without a fragment entry point")
	}
}

func TestStripComments(t *testing.T) {
	src := "a // line @vertex fn x\nb /* block /* nested */ @fragment */ c"
	got := stripComments(src)
	if got != "a \nb  c" {
		t.Fatalf("stripComments = %q", got)
	}
}
