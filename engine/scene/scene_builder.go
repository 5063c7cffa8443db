package scene

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithBackground sets the clear color.
//
// Parameters:
//   - c: the background color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}

// WithFog enables linear fog.
//
// Parameters:
//   - c: fog color
//   - near: distance where fog starts
//   - far: distance where fog is opaque
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFog(c common.Color, near, far float32) SceneBuilderOption {
	return func(s *scene) {
		s.fog = &Fog{Color: c, Near: near, Far: far}
	}
}

// WithObjects adds initial objects to the scene.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj == nil {
				continue
			}
			if _, ok := s.registry[obj.ID()]; ok {
				continue
			}
			s.registry[obj.ID()] = obj
			s.order = append(s.order, obj.ID())
		}
	}
}
