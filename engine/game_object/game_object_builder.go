package game_object

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the debug name of the GameObject.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// WithRotation sets the initial Euler rotation in radians.
//
// Parameters:
//   - rx, ry, rz: rotation about each axis
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = [3]float32{rx, ry, rz}
	}
}

// WithScale sets the initial scale.
//
// Parameters:
//   - sx, sy, sz: scale components
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = [3]float32{sx, sy, sz}
	}
}

// WithGeometry sets the mesh geometry.
//
// Parameters:
//   - geo: the geometry
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the geometry
func WithGeometry(geo model.Geometry) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.geometry = geo
	}
}

// WithMaterial sets the material binding.
//
// Parameters:
//   - b: material.Single or material.Multiple
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the material binding
func WithMaterial(b material.Binding) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.materials = b
	}
}

// WithCastShadow sets whether the object renders into shadow maps.
//
// Parameters:
//   - cast: true to cast shadows
//
// Returns:
//   - GameObjectBuilderOption: functional option to set shadow casting
func WithCastShadow(cast bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.castShadow = cast
	}
}

// WithReceiveShadow sets whether the object samples shadow maps.
//
// Parameters:
//   - receive: true to receive shadows
//
// Returns:
//   - GameObjectBuilderOption: functional option to set shadow receiving
func WithReceiveShadow(receive bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.receiveShadow = receive
	}
}

// WithLight attaches a light to the GameObject.
//
// Parameters:
//   - l: the light to attach
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the attached light
func WithLight(l light.Light) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.attachedLight = l
	}
}
