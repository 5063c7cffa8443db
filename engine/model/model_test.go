package model

import (
	"errors"
	"math"
	"testing"
)

func TestPrimitiveCounts(t *testing.T) {
	circle, err := NewCircle(30, 64)
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}
	ring, err := NewRing(5.5, 6.5, 64)
	if err != nil {
		t.Fatalf("NewRing: %v", err)
	}
	capsule, err := NewCapsule(0.35, 1, 4, 8)
	if err != nil {
		t.Fatalf("NewCapsule: %v", err)
	}

	tests := []struct {
		name     string
		g        Geometry
		vertices int
		indices  int
	}{
		{"circle", circle, 66, 192},
		{"ring", ring, 130, 384},
		{"capsule", capsule, 90, 432},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.g.Vertices()); got != tt.vertices {
				t.Fatalf("vertices = %d, want %d", got, tt.vertices)
			}
			if got := tt.g.IndexCount(); got != tt.indices {
				t.Fatalf("indices = %d, want %d", got, tt.indices)
			}
			for _, idx := range tt.g.Indices() {
				if int(idx) >= tt.vertices {
					t.Fatalf("index %d out of range", idx)
				}
			}
			if got := len(tt.g.VertexData()); got != tt.vertices*VertexStride {
				t.Fatalf("vertex data = %d bytes", got)
			}
			if got := len(tt.g.IndexData()); got != tt.indices*4 {
				t.Fatalf("index data = %d bytes", got)
			}
		})
	}
}

func TestPrimitiveExtents(t *testing.T) {
	circle, _ := NewCircle(30, 32)
	if r := circle.BoundingRadius(); math.Abs(float64(r-30)) > 1e-4 {
		t.Fatalf("circle radius = %v, want 30", r)
	}

	ring, _ := NewRing(5.5, 6.5, 32)
	for _, v := range ring.Vertices() {
		r := math.Hypot(float64(v.Position[0]), float64(v.Position[1]))
		if r < 5.5-1e-4 || r > 6.5+1e-4 || v.Position[2] != 0 {
			t.Fatalf("ring vertex %v outside annulus", v.Position)
		}
	}

	capsule, _ := NewCapsule(0.35, 1, 4, 8)
	var minY, maxY float32
	for _, v := range capsule.Vertices() {
		minY = min(minY, v.Position[1])
		maxY = max(maxY, v.Position[1])
		n := v.Normal
		if l := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])); math.Abs(l-1) > 1e-4 {
			t.Fatalf("capsule normal %v not unit length", n)
		}
	}
	if math.Abs(float64(minY+0.85)) > 1e-4 || math.Abs(float64(maxY-0.85)) > 1e-4 {
		t.Fatalf("capsule spans [%v, %v], want [-0.85, 0.85]", minY, maxY)
	}
}

func TestPrimitiveValidation(t *testing.T) {
	if _, err := NewCircle(0, 8); err == nil {
		t.Fatal("zero radius circle accepted")
	}
	if _, err := NewRing(2, 1, 8); err == nil {
		t.Fatal("inverted ring accepted")
	}
	if _, err := NewCapsule(1, 1, 0, 8); err == nil {
		t.Fatal("capsule without cap segments accepted")
	}
}

func TestGroups(t *testing.T) {
	g := NewGeometry(make([]GPUVertex, 4), []uint32{0, 1, 2, 0, 2, 3})
	if groups := g.Groups(); len(groups) != 1 || groups[0].Count != 6 {
		t.Fatalf("default groups = %v", groups)
	}

	g = NewGeometry(make([]GPUVertex, 4), []uint32{0, 1, 2, 0, 2, 3}, WithGroup(0, 3, 0), WithGroup(3, 3, 1))
	if groups := g.Groups(); len(groups) != 2 || groups[1].MaterialIndex != 1 {
		t.Fatalf("groups = %v", groups)
	}
}

func TestDisposeRunsHooksOnce(t *testing.T) {
	g, _ := NewCircle(1, 8)
	calls := 0
	g.OnDispose(func() { calls++ })
	g.Dispose()
	g.Dispose()
	if calls != 1 || !g.Disposed() || !g.MeshProvider().Released() {
		t.Fatalf("calls = %d, disposed = %v", calls, g.Disposed())
	}
}

func TestBuildAllPreservesOrder(t *testing.T) {
	geos, err := BuildAll(nil,
		func() (Geometry, error) { return NewCircle(30, 64, WithName("ground")) },
		func() (Geometry, error) { return NewRing(5.5, 6.5, 64, WithName("road")) },
		func() (Geometry, error) { return NewCapsule(0.35, 1, 4, 8, WithName("character")) },
	)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	want := []string{"ground", "road", "character"}
	for i, g := range geos {
		if g.Name() != want[i] {
			t.Fatalf("geometry %d = %q, want %q", i, g.Name(), want[i])
		}
	}
}

func TestBuildAllDisposesOnError(t *testing.T) {
	var built Geometry
	boom := errors.New("boom")
	_, err := BuildAll(nil,
		func() (Geometry, error) {
			g, err := NewCircle(1, 8)
			built = g
			return g, err
		},
		func() (Geometry, error) { return nil, boom },
	)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if !built.Disposed() {
		t.Fatal("successful geometry leaked after a sibling failed")
	}
}
