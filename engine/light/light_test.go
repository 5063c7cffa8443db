package light

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

func TestOnlyDirectionalLightsCastShadows(t *testing.T) {
	hemi := NewLight(LightTypeHemisphere, WithCastsShadows(true))
	if hemi.CastsShadows() {
		t.Fatal("hemisphere light must not cast shadows")
	}
	sun := NewDirectionalLight(common.HexColor(0xffffff), 1, WithCastsShadows(true))
	if !sun.CastsShadows() {
		t.Fatal("directional light with shadows enabled reports none")
	}
}

func TestDirection(t *testing.T) {
	sun := NewDirectionalLight(common.Color{1, 1, 1}, 1, WithPosition(5, 10, 5))
	d := sun.Direction()
	l := float32(math.Sqrt(150))
	want := [3]float32{-5 / l, -10 / l, -5 / l}
	for i := range d {
		if math.Abs(float64(d[i]-want[i])) > 1e-5 {
			t.Fatalf("direction = %v, want %v", d, want)
		}
	}
}

func TestShadowViewProjectionMapsTargetInside(t *testing.T) {
	sun := NewDirectionalLight(common.Color{1, 1, 1}, 1, WithPosition(5, 10, 5), WithCastsShadows(true))
	vp := ShadowViewProjection(sun)

	// the origin is the light target and must land in the middle of the map, inside the depth range
	x, y, z, w := vp[12], vp[13], vp[14], vp[15]
	if math.Abs(float64(x/w)) > 1e-4 || math.Abs(float64(y/w)) > 1e-4 {
		t.Fatalf("target maps to (%v, %v), want center", x/w, y/w)
	}
	if z/w <= 0 || z/w >= 1 {
		t.Fatalf("target depth = %v, want within (0, 1)", z/w)
	}
}

func TestBuildLightUniform(t *testing.T) {
	hemi := NewHemisphereLight(common.HexColor(0xffffff), common.HexColor(0x444444), 0.8)
	sun := NewDirectionalLight(common.Color{1, 0.9, 0.8}, 1.2, WithPosition(0, 10, 0), WithCastsShadows(true))

	u, caster := BuildLightUniform([]Light{hemi, sun})
	if caster != sun {
		t.Fatal("expected the directional light as shadow caster")
	}
	if u.Sky[3] != 0.8 || u.SunDirection[3] != 1.2 {
		t.Fatalf("intensities = (%v, %v)", u.Sky[3], u.SunDirection[3])
	}
	if u.SunDirection[1] <= 0.99 {
		t.Fatalf("sun direction should point up toward the light, got %v", u.SunDirection)
	}
	if !u.ShadowsEnabled() {
		t.Fatal("shadows not enabled")
	}
	if got := len(u.Marshal()); got != 128 {
		t.Fatalf("marshalled size = %d, want 128", got)
	}

	u, caster = BuildLightUniform([]Light{hemi})
	if caster != nil || u.ShadowsEnabled() {
		t.Fatal("no directional light must leave shadows disabled")
	}
}

func TestShadowOptions(t *testing.T) {
	sun := NewDirectionalLight(common.Color{1, 1, 1}, 1,
		WithPosition(4, 1, 0),
		WithTarget(0, 1, 0),
		WithShadowCamera(10, 1, 30),
		WithShadowBias(0.002),
	)
	if d := sun.Direction(); d != [3]float32{-1, 0, 0} {
		t.Fatalf("direction = %v, want (-1, 0, 0)", d)
	}
	if h, n, f := sun.ShadowCamera(); h != 10 || n != 1 || f != 30 {
		t.Fatalf("shadow camera = (%v, %v, %v)", h, n, f)
	}
	if sun.ShadowBias() != 0.002 {
		t.Fatalf("shadow bias = %v", sun.ShadowBias())
	}

	def := NewDirectionalLight(common.Color{1, 1, 1}, 1)
	if def.ShadowBias() != DefaultShadowBias {
		t.Fatalf("default bias = %v", def.ShadowBias())
	}
}
