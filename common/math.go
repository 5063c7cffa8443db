package common

import "math"

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 column-major matrices: out = a * b.
// out may alias a or b.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			buf[col*4+row] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective writes a perspective projection matrix mapping view-space depth
// [near, far] onto the WebGPU clip range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Orthographic writes an orthographic projection matrix mapping the given box
// onto the WebGPU clip volume (x, y in [-1, 1], z in [0, 1]).
// Used for directional light shadow cameras.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - left, right, bottom, top: view-space extents of the box
//   - near, far: view-space depth range of the box
func Orthographic(out []float32, left, right, bottom, top, near, far float32) {
	Identity(out)

	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = 1 / (near - far)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = near / (near - far)
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll). All matrices are column-major.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: translation in world space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
func BuildModelMatrix(out []float32, pos, rot, scale [3]float32) {
	cx, sx := cosSin(rot[0])
	cy, sy := cosSin(rot[1])
	cz, sz := cosSin(rot[2])

	out[0] = (cy*cz + sy*sx*sz) * scale[0]
	out[1] = (cx * sz) * scale[0]
	out[2] = (-sy*cz + cy*sx*sz) * scale[0]
	out[3] = 0

	out[4] = (-cy*sz + sy*sx*cz) * scale[1]
	out[5] = (cx * cz) * scale[1]
	out[6] = (sy*sz + cy*sx*cz) * scale[1]
	out[7] = 0

	out[8] = (sy * cx) * scale[2]
	out[9] = (-sx) * scale[2]
	out[10] = (cy * cx) * scale[2]
	out[11] = 0

	out[12] = pos[0]
	out[13] = pos[1]
	out[14] = pos[2]
	out[15] = 1
}

// Invert4 computes the inverse of a 4x4 column-major matrix by cofactor expansion.
// If the matrix is singular the output is left unchanged and false is returned.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was inverted, false if singular
func Invert4(out, m []float32) bool {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}
	inv := 1.0 / det

	var r [16]float32
	r[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * inv
	r[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * inv
	r[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * inv
	r[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * inv

	r[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * inv
	r[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * inv
	r[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * inv
	r[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * inv

	r[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * inv
	r[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * inv
	r[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * inv
	r[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * inv

	r[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * inv
	r[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * inv
	r[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * inv
	r[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * inv

	copy(out, r[:])
	return true
}

// LookAt writes a view matrix for a camera at eye looking toward center.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: point the camera looks at
//   - up: up vector, typically (0, 1, 0)
func LookAt(out []float32, eye, center, up [3]float32) {
	z := Normalize3(Sub3(eye, center))
	if z == [3]float32{} {
		z = [3]float32{0, 0, 1}
	}
	x := Normalize3(Cross3(up, z))
	if x == [3]float32{} {
		// up is parallel to the view direction; nudge it so the basis stays valid.
		x = Normalize3(Cross3([3]float32{up[0], up[1], up[2] + 1e-4}, z))
	}
	y := Cross3(z, x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -Dot3(x, eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -Dot3(y, eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -Dot3(z, eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// Sub3 returns a - b.
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 returns v * s.
func Scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a x b.
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 returns the Euclidean length of v.
func Length3(v [3]float32) float32 {
	return float32(math.Sqrt(float64(Dot3(v, v))))
}

// Normalize3 returns v scaled to unit length, or the zero vector if v has no length.
func Normalize3(v [3]float32) [3]float32 {
	l := Length3(v)
	if l < 1e-8 {
		return [3]float32{}
	}
	return Scale3(v, 1/l)
}

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cosSin(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(c), float32(s)
}
