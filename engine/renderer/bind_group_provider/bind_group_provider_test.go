package bind_group_provider

import "testing"

func TestNewProviderIsEmpty(t *testing.T) {
	p := NewBindGroupProvider("mesh_ground")
	if p.Label() != "mesh_ground" {
		t.Fatalf("Label = %q, want mesh_ground", p.Label())
	}
	if p.Initialized() {
		t.Fatal("new provider reports GPU resources")
	}
	if p.BindGroup() != nil || p.Buffer(0) != nil || p.VertexBuffer() != nil || p.IndexCount() != 0 {
		t.Fatal("new provider holds handles")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	p := NewBindGroupProvider("material_road")
	p.Release()
	if !p.Released() {
		t.Fatal("Released = false after Release")
	}
	p.Release()
	if !p.Released() {
		t.Fatal("second Release reset the released flag")
	}
}

func TestSettersAfterReleaseKeepProviderEmpty(t *testing.T) {
	p := NewBindGroupProvider("object_capsule")
	p.Release()
	p.SetBuffer(0, nil)
	p.SetMesh(nil, nil, 12)
	if p.IndexCount() != 0 || p.Initialized() {
		t.Fatal("released provider accepted new resources")
	}
}
