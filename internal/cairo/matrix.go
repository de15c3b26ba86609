package cairo

import "math"

// Matrix represents a 2D affine transformation matrix.
// The matrix is represented as:
//
//	| xx  xy |   | x |   | x0 |
//	| yx  yy | * | y | + | y0 |
//
// This matches Cairo's cairo_matrix_t structure.
type Matrix struct {
	XX, XY float64
	YX, YY float64
	X0, Y0 float64
}

// IdentityMatrix returns the identity matrix.
// This is equivalent to cairo_matrix_init_identity.
func IdentityMatrix() Matrix {
	return Matrix{XX: 1, YY: 1}
}

// TranslateMatrix returns a matrix that translates by (tx, ty).
func TranslateMatrix(tx, ty float64) Matrix {
	return Matrix{XX: 1, YY: 1, X0: tx, Y0: ty}
}

// RotateMatrix returns a matrix that rotates by angle radians.
func RotateMatrix(angle float64) Matrix {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return Matrix{XX: c, XY: -s, YX: s, YY: c}
}

// Translate applies a translation to the matrix.
// This is equivalent to cairo_matrix_translate.
func (m *Matrix) Translate(tx, ty float64) {
	m.X0 += m.XX*tx + m.XY*ty
	m.Y0 += m.YX*tx + m.YY*ty
}

// Scale applies a scale to the matrix.
func (m *Matrix) Scale(sx, sy float64) {
	m.XX *= sx
	m.XY *= sy
	m.YX *= sx
	m.YY *= sy
}

// Rotate applies a rotation of angle radians to the matrix.
func (m *Matrix) Rotate(angle float64) {
	r := RotateMatrix(angle)
	r.Multiply(*m)
	*m = r
}

// Multiply sets m to the product of m and other: the effect is to first
// apply m, then other.
func (m *Matrix) Multiply(other Matrix) {
	*m = Matrix{
		XX: other.XX*m.XX + other.XY*m.YX,
		XY: other.XX*m.XY + other.XY*m.YY,
		YX: other.YX*m.XX + other.YY*m.YX,
		YY: other.YX*m.XY + other.YY*m.YY,
		X0: other.XX*m.X0 + other.XY*m.Y0 + other.X0,
		Y0: other.YX*m.X0 + other.YY*m.Y0 + other.Y0,
	}
}

// TransformPoint transforms a point using the matrix.
// This is equivalent to cairo_matrix_transform_point.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.XX*x + m.XY*y + m.X0, m.YX*x + m.YY*y + m.Y0
}

// TransformDistance transforms a distance vector, ignoring translation.
func (m Matrix) TransformDistance(dx, dy float64) (float64, float64) {
	return m.XX*dx + m.XY*dy, m.YX*dx + m.YY*dy
}

// Invert inverts the matrix in place.
// Returns false, leaving m untouched, if the matrix is singular.
func (m *Matrix) Invert() bool {
	det := m.XX*m.YY - m.XY*m.YX
	if det == 0 || math.IsInf(det, 0) || math.IsNaN(det) {
		return false
	}
	inv := 1.0 / det
	*m = Matrix{
		XX: m.YY * inv,
		XY: -m.XY * inv,
		YX: -m.YX * inv,
		YY: m.XX * inv,
		X0: (m.XY*m.Y0 - m.YY*m.X0) * inv,
		Y0: (m.YX*m.X0 - m.XX*m.Y0) * inv,
	}
	return true
}

// IsIdentity reports whether m is the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == IdentityMatrix()
}
