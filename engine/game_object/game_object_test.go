package game_object

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

func TestUniqueIDs(t *testing.T) {
	a, b := NewGameObject(), NewGameObject()
	if a.ID() == b.ID() {
		t.Fatalf("duplicate id %d", a.ID())
	}
	if c := NewGameObject(WithID(7)); c.ID() != 7 {
		t.Fatalf("WithID ignored, got %d", c.ID())
	}
}

func TestRotateAccumulates(t *testing.T) {
	g := NewGameObject()
	for i := 0; i < 100; i++ {
		g.Rotate(0, 0.01, 0)
	}
	if ry := g.Rotation()[1]; math.Abs(float64(ry)-1) > 1e-4 {
		t.Fatalf("yaw = %v, want 1", ry)
	}
}

func TestModelMatrixTranslation(t *testing.T) {
	g := NewGameObject(WithPosition(1, 2, 3), WithScale(2, 2, 2))
	m := g.ModelMatrix()
	if m[12] != 1 || m[13] != 2 || m[14] != 3 {
		t.Fatalf("translation = (%v, %v, %v)", m[12], m[13], m[14])
	}
	if m[0] != 2 || m[5] != 2 || m[10] != 2 {
		t.Fatalf("scale diagonal = (%v, %v, %v)", m[0], m[5], m[10])
	}
}

func TestFlatRotationMapsPlaneToGround(t *testing.T) {
	g := NewGameObject(WithRotation(-math.Pi/2, 0, 0))
	m := g.ModelMatrix()
	// +Z normal of an XY plane must end up pointing +Y
	nx, ny, nz := m[8], m[9], m[10]
	if math.Abs(float64(nx)) > 1e-5 || math.Abs(float64(ny-1)) > 1e-5 || math.Abs(float64(nz)) > 1e-5 {
		t.Fatalf("rotated normal = (%v, %v, %v), want (0, 1, 0)", nx, ny, nz)
	}
}

func TestMeshAndUniform(t *testing.T) {
	geo, err := model.NewCircle(1, 8)
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}
	mesh := NewMesh(geo, material.Single(material.NewMaterial()), WithReceiveShadow(true))
	if !mesh.IsMesh() {
		t.Fatal("mesh node not drawable")
	}
	u := mesh.Uniform()
	if u.Flags[0] != 1 {
		t.Fatal("receive shadow flag not set")
	}
	if len(u.Marshal()) != 80 {
		t.Fatalf("marshalled size = %d", len(u.Marshal()))
	}

	if NewMesh(geo, material.Binding{}).IsMesh() {
		t.Fatal("node without material reported drawable")
	}
}

func TestLightNodePlacement(t *testing.T) {
	sun := light.NewDirectionalLight(common.Color{1, 1, 1}, 1, light.WithPosition(5, 10, 5))
	n := NewLightNode(sun)
	if n.Light() != sun || n.Position() != [3]float32{5, 10, 5} {
		t.Fatalf("light node = %v at %v", n.Light(), n.Position())
	}
	if n.IsMesh() {
		t.Fatal("light node reported drawable")
	}
}
