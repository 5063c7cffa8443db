package material

// Binding is the material attachment of a scene node: either exactly one Material applied to
// the whole geometry, or an ordered list indexed by the geometry's draw groups.
// The zero value binds nothing.
type Binding struct {
	single   Material
	multiple []Material
	isMulti  bool
}

// Single binds one material to the whole geometry.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - Binding: the binding
func Single(m Material) Binding {
	return Binding{single: m}
}

// Multiple binds an ordered list of materials, one per geometry draw group.
//
// Parameters:
//   - ms: the materials in group order
//
// Returns:
//   - Binding: the binding
func Multiple(ms ...Material) Binding {
	cp := make([]Material, len(ms))
	copy(cp, ms)
	return Binding{multiple: cp, isMulti: true}
}

// IsMultiple reports whether the binding is the list variant.
//
// Returns:
//   - bool: true for Multiple bindings
func (b Binding) IsMultiple() bool {
	return b.isMulti
}

// IsEmpty reports whether the binding holds no material.
//
// Returns:
//   - bool: true if nothing is bound
func (b Binding) IsEmpty() bool {
	if b.isMulti {
		return len(b.multiple) == 0
	}
	return b.single == nil
}

// Len returns the number of bound materials.
//
// Returns:
//   - int: 0 or 1 for Single bindings, the list length for Multiple
func (b Binding) Len() int {
	if b.isMulti {
		return len(b.multiple)
	}
	if b.single == nil {
		return 0
	}
	return 1
}

// At returns the material for a draw group. Single bindings return their material for every group;
// Multiple bindings return nil for out of range groups.
//
// Parameters:
//   - group: the draw group's material index
//
// Returns:
//   - Material: the material, or nil
func (b Binding) At(group int) Material {
	if !b.isMulti {
		return b.single
	}
	if group < 0 || group >= len(b.multiple) {
		return nil
	}
	return b.multiple[group]
}

// Each calls fn for every bound material in order. Nil entries are skipped.
//
// Parameters:
//   - fn: the visitor
func (b Binding) Each(fn func(Material)) {
	if !b.isMulti {
		if b.single != nil {
			fn(b.single)
		}
		return
	}
	for _, m := range b.multiple {
		if m != nil {
			fn(m)
		}
	}
}
