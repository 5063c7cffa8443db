package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
)

func TestAddRemoveClear(t *testing.T) {
	a, b := game_object.NewGameObject(), game_object.NewGameObject()
	s := NewScene("test", WithObjects(a))
	s.Add(b, a, nil)
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if children := s.Children(); children[0] != a || children[1] != b {
		t.Fatal("children not in insertion order")
	}
	if !s.Remove(a) || s.Remove(a) {
		t.Fatal("Remove should succeed once")
	}
	s.Clear()
	if s.Len() != 0 || len(s.Children()) != 0 {
		t.Fatalf("Len after Clear = %d", s.Len())
	}
}

func TestTraverseSnapshot(t *testing.T) {
	s := NewScene("test")
	s.Add(game_object.NewGameObject(), game_object.NewGameObject())
	visited := 0
	s.Traverse(func(obj game_object.GameObject) {
		visited++
		s.Remove(obj)
	})
	if visited != 2 || s.Len() != 0 {
		t.Fatalf("visited %d, remaining %d", visited, s.Len())
	}
}

func TestLights(t *testing.T) {
	hemi := light.NewHemisphereLight(common.Color{1, 1, 1}, common.Color{0.2, 0.2, 0.2}, 0.8)
	sun := light.NewDirectionalLight(common.Color{1, 1, 1}, 1)
	off := game_object.NewLightNode(sun, game_object.WithEnabled(false))

	s := NewScene("test")
	s.Add(game_object.NewLightNode(hemi), game_object.NewGameObject(), off)
	lights := s.Lights()
	if len(lights) != 1 || lights[0] != hemi {
		t.Fatalf("lights = %v, want only the enabled hemisphere light", lights)
	}
}

func TestFog(t *testing.T) {
	s := NewScene("test", WithFog(common.HexColor(0x87b5e0), 40, 220))
	u := FogUniform(s)
	if u.Params != [4]float32{40, 220, 1, 0} {
		t.Fatalf("fog params = %v", u.Params)
	}
	f := s.Fog()
	f.Near = 1
	if s.Fog().Near != 40 {
		t.Fatal("Fog returned shared state")
	}
	s.SetFog(nil)
	if FogUniform(s).Params[2] != 0 {
		t.Fatal("disabled fog still enabled in uniform")
	}
}
