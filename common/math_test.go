package common

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}
	Mul4(out[:], id[:], m[:])
	if out != m {
		t.Fatalf("I*M = %v, want %v", out, m)
	}
	Mul4(out[:], m[:], id[:])
	if out != m {
		t.Fatalf("M*I = %v, want %v", out, m)
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	var m, inv, prod, id [16]float32
	BuildModelMatrix(m[:], [3]float32{1, 2, 3}, [3]float32{0.3, 1.1, -0.4}, [3]float32{2, 2, 2})
	if !Invert4(inv[:], m[:]) {
		t.Fatal("expected invertible matrix")
	}
	Mul4(prod[:], m[:], inv[:])
	Identity(id[:])
	for i := range prod {
		if !approx(prod[i], id[i]) {
			t.Fatalf("M*inv(M)[%d] = %v, want %v", i, prod[i], id[i])
		}
	}
}

func TestInvert4Singular(t *testing.T) {
	var zero, out [16]float32
	out[0] = 42
	if Invert4(out[:], zero[:]) {
		t.Fatal("expected singular matrix to fail")
	}
	if out[0] != 42 {
		t.Fatal("singular inversion must leave output untouched")
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	var p [16]float32
	Perspective(p[:], float32(math.Pi/3), 1.5, 0.1, 500)

	project := func(z float32) float32 {
		clipZ := p[10]*z + p[14]
		clipW := p[11]*z + p[15]
		return clipZ / clipW
	}
	if got := project(-0.1); !approx(got, 0) {
		t.Fatalf("near plane depth = %v, want 0", got)
	}
	if got := project(-500); !approx(got, 1) {
		t.Fatalf("far plane depth = %v, want 1", got)
	}
	if !approx(p[5]/p[0], 1.5) {
		t.Fatalf("x/y focal ratio = %v, want aspect 1.5", p[5]/p[0])
	}
}

func TestOrthographicMapsBox(t *testing.T) {
	var o [16]float32
	Orthographic(o[:], -10, 10, -5, 5, 1, 50)

	apply := func(x, y, z float32) (float32, float32, float32) {
		return o[0]*x + o[12], o[5]*y + o[13], o[10]*z + o[14]
	}
	x, y, z := apply(10, 5, -1)
	if !approx(x, 1) || !approx(y, 1) || !approx(z, 0) {
		t.Fatalf("corner near = (%v, %v, %v), want (1, 1, 0)", x, y, z)
	}
	x, y, z = apply(-10, -5, -50)
	if !approx(x, -1) || !approx(y, -1) || !approx(z, 1) {
		t.Fatalf("corner far = (%v, %v, %v), want (-1, -1, 1)", x, y, z)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	var v [16]float32
	eye := [3]float32{0, 2.2, 6}
	LookAt(v[:], eye, [3]float32{0, 1, 0}, [3]float32{0, 1, 0})

	x := v[0]*eye[0] + v[4]*eye[1] + v[8]*eye[2] + v[12]
	y := v[1]*eye[0] + v[5]*eye[1] + v[9]*eye[2] + v[13]
	z := v[2]*eye[0] + v[6]*eye[1] + v[10]*eye[2] + v[14]
	if !approx(x, 0) || !approx(y, 0) || !approx(z, 0) {
		t.Fatalf("eye in view space = (%v, %v, %v), want origin", x, y, z)
	}
}

func TestLookAtStraightDown(t *testing.T) {
	var v [16]float32
	LookAt(v[:], [3]float32{0, 10, 0}, [3]float32{}, [3]float32{0, 1, 0})
	for i, f := range v {
		if math.IsNaN(float64(f)) {
			t.Fatalf("element %d is NaN", i)
		}
	}
}

func TestHexColor(t *testing.T) {
	c := HexColor(0xff8000)
	if !approx(c[0], 1) || !approx(c[1], 128.0/255) || c[2] != 0 {
		t.Fatalf("HexColor(0xff8000) = %v", c)
	}
	if rgba := c.RGBA(0.5); rgba[3] != 0.5 {
		t.Fatalf("alpha = %v, want 0.5", rgba[3])
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 3, 4); got != 3 {
		t.Fatalf("Coalesce = %d, want 3", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Fatalf("Coalesce = %q, want empty", got)
	}
}
