package model

import (
	"fmt"
	"math"
)

// NewCircle builds a flat disc in the XY plane facing +Z, centered on the origin.
//
// Parameters:
//   - radius: disc radius
//   - segments: number of rim segments, at least 3
//
// Returns:
//   - Geometry: segments+2 vertices, 3*segments indices
//   - error: error if the parameters cannot form a disc
func NewCircle(radius float32, segments int, options ...GeometryBuilderOption) (Geometry, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("circle radius must be positive, got %v", radius)
	}
	if segments < 3 {
		return nil, fmt.Errorf("circle needs at least 3 segments, got %d", segments)
	}

	normal := [3]float32{0, 0, 1}
	vertices := make([]GPUVertex, 0, segments+2)
	vertices = append(vertices, GPUVertex{Normal: normal, TexCoord: [2]float32{0.5, 0.5}})
	for i := 0; i <= segments; i++ {
		cos, sin := unitCircle(i, segments)
		vertices = append(vertices, GPUVertex{
			Position: [3]float32{radius * cos, radius * sin, 0},
			Normal:   normal,
			TexCoord: [2]float32{(cos + 1) / 2, (sin + 1) / 2},
		})
	}

	indices := make([]uint32, 0, segments*3)
	for i := 1; i <= segments; i++ {
		indices = append(indices, uint32(i), uint32(i+1), 0)
	}

	return NewGeometry(vertices, indices, append([]GeometryBuilderOption{WithName("circle")}, options...)...), nil
}

// NewRing builds a flat annulus in the XY plane facing +Z, centered on the origin.
//
// Parameters:
//   - inner: inner radius
//   - outer: outer radius, greater than inner
//   - segments: number of angular segments, at least 3
//
// Returns:
//   - Geometry: 2*(segments+1) vertices, 6*segments indices
//   - error: error if the parameters cannot form a ring
func NewRing(inner, outer float32, segments int, options ...GeometryBuilderOption) (Geometry, error) {
	if inner < 0 || outer <= inner {
		return nil, fmt.Errorf("ring radii must satisfy 0 <= inner < outer, got %v and %v", inner, outer)
	}
	if segments < 3 {
		return nil, fmt.Errorf("ring needs at least 3 segments, got %d", segments)
	}

	normal := [3]float32{0, 0, 1}
	row := segments + 1
	vertices := make([]GPUVertex, 0, 2*row)
	for _, r := range [2]float32{inner, outer} {
		for i := 0; i <= segments; i++ {
			cos, sin := unitCircle(i, segments)
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{r * cos, r * sin, 0},
				Normal:   normal,
				TexCoord: [2]float32{(r*cos/outer + 1) / 2, (r*sin/outer + 1) / 2},
			})
		}
	}

	indices := make([]uint32, 0, segments*6)
	for i := 0; i < segments; i++ {
		a := uint32(i)
		b := a + uint32(row)
		c := b + 1
		d := a + 1
		indices = append(indices, a, b, d, b, c, d)
	}

	return NewGeometry(vertices, indices, append([]GeometryBuilderOption{WithName("ring")}, options...)...), nil
}

// NewCapsule builds a capsule centered on the origin with its axis along +Y: a cylinder of the
// given length capped by two hemispheres, so the total height is length + 2*radius.
//
// Parameters:
//   - radius: cap and body radius
//   - length: length of the cylindrical middle section
//   - capSegments: latitude steps per hemisphere, at least 1
//   - radialSegments: steps around the axis, at least 3
//
// Returns:
//   - Geometry: 2*(capSegments+1)*(radialSegments+1) vertices, 6*radialSegments*(2*capSegments+1) indices
//   - error: error if the parameters cannot form a capsule
func NewCapsule(radius, length float32, capSegments, radialSegments int, options ...GeometryBuilderOption) (Geometry, error) {
	if radius <= 0 || length < 0 {
		return nil, fmt.Errorf("capsule needs positive radius and non-negative length, got %v and %v", radius, length)
	}
	if capSegments < 1 || radialSegments < 3 {
		return nil, fmt.Errorf("capsule needs capSegments >= 1 and radialSegments >= 3, got %d and %d", capSegments, radialSegments)
	}

	// profile runs from the bottom pole to the top pole; each point is swept around Y
	type profilePoint struct{ r, y, nr, ny float32 }
	half := length / 2
	profile := make([]profilePoint, 0, 2*(capSegments+1))
	for k := 0; k <= capSegments; k++ {
		phi := -math.Pi/2 + float64(k)/float64(capSegments)*math.Pi/2
		c, s := float32(math.Cos(phi)), float32(math.Sin(phi))
		profile = append(profile, profilePoint{radius * c, -half + radius*s, c, s})
	}
	for k := 0; k <= capSegments; k++ {
		phi := float64(k) / float64(capSegments) * math.Pi / 2
		c, s := float32(math.Cos(phi)), float32(math.Sin(phi))
		profile = append(profile, profilePoint{radius * c, half + radius*s, c, s})
	}

	row := radialSegments + 1
	vertices := make([]GPUVertex, 0, len(profile)*row)
	for p, pt := range profile {
		v := float32(p) / float32(len(profile)-1)
		for j := 0; j <= radialSegments; j++ {
			theta := float64(j) / float64(radialSegments) * 2 * math.Pi
			sin, cos := float32(math.Sin(theta)), float32(math.Cos(theta))
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{pt.r * sin, pt.y, pt.r * cos},
				Normal:   [3]float32{pt.nr * sin, pt.ny, pt.nr * cos},
				TexCoord: [2]float32{float32(j) / float32(radialSegments), v},
			})
		}
	}

	indices := make([]uint32, 0, (len(profile)-1)*radialSegments*6)
	for p := 0; p < len(profile)-1; p++ {
		for j := 0; j < radialSegments; j++ {
			a := uint32(p*row + j)
			b := a + uint32(row)
			c := b + 1
			d := a + 1
			indices = append(indices, a, d, b, d, c, b)
		}
	}

	return NewGeometry(vertices, indices, append([]GeometryBuilderOption{WithName("capsule")}, options...)...), nil
}

// unitCircle returns the cosine and sine of step i of n around a full turn.
// The last step lands exactly on the first so seams close without gaps.
func unitCircle(i, n int) (float32, float32) {
	if i == n {
		i = 0
	}
	a := float64(i) / float64(n) * 2 * math.Pi
	return float32(math.Cos(a)), float32(math.Sin(a))
}
