package model

// GeometryBuilderOption is a functional option for configuring a Geometry via NewGeometry.
type GeometryBuilderOption func(*geometry)

// WithName is an option builder that sets the name of the Geometry.
//
// Parameters:
//   - name: the geometry identifier
//
// Returns:
//   - GeometryBuilderOption: a function that applies the name option to a geometry
func WithName(name string) GeometryBuilderOption {
	return func(g *geometry) {
		g.name = name
	}
}

// WithGroup is an option builder that appends a draw group.
// Ranges outside the index data are clipped when the geometry is drawn.
//
// Parameters:
//   - start: first index of the range
//   - count: number of indices
//   - materialIndex: material slot in the node's binding
//
// Returns:
//   - GeometryBuilderOption: a function that applies the group option to a geometry
func WithGroup(start, count, materialIndex int) GeometryBuilderOption {
	return func(g *geometry) {
		g.groups = append(g.groups, Group{Start: start, Count: count, MaterialIndex: materialIndex})
	}
}

