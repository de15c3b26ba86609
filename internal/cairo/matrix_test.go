package cairo

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		x, y   float64
		wx, wy float64
	}{
		{"identity", IdentityMatrix(), 3, 4, 3, 4},
		{"translate", TranslateMatrix(10, -5), 3, 4, 13, -1},
		{"rotate quarter", RotateMatrix(math.Pi / 2), 1, 0, 0, 1},
		{"flip", Matrix{XX: 1, YY: -1, Y0: 100}, 10, 20, 10, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.m.TransformPoint(tt.x, tt.y)
			if !almostEqual(x, tt.wx) || !almostEqual(y, tt.wy) {
				t.Errorf("TransformPoint(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestMatrixTranslateThenScale(t *testing.T) {
	m := IdentityMatrix()
	m.Translate(10, 20)
	m.Scale(2, 3)

	x, y := m.TransformPoint(1, 1)
	if !almostEqual(x, 12) || !almostEqual(y, 23) {
		t.Errorf("got (%v, %v), want (12, 23)", x, y)
	}

	dx, dy := m.TransformDistance(1, 1)
	if !almostEqual(dx, 2) || !almostEqual(dy, 3) {
		t.Errorf("TransformDistance got (%v, %v), want (2, 3)", dx, dy)
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	m := TranslateMatrix(5, 0)
	m.Multiply(Matrix{XX: 2, YY: 2})

	// translate first, then scale
	x, _ := m.TransformPoint(1, 0)
	if !almostEqual(x, 12) {
		t.Errorf("x = %v, want 12", x)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Matrix{XX: 0.7071, XY: -0.7071, YX: 0.7071, YY: 0.7071, X0: 3, Y0: -2}
	inv := m
	if !inv.Invert() {
		t.Fatal("Invert returned false for a rotation")
	}
	x, y := m.TransformPoint(4, 7)
	bx, by := inv.TransformPoint(x, y)
	if math.Abs(bx-4) > 1e-6 || math.Abs(by-7) > 1e-6 {
		t.Errorf("round trip got (%v, %v), want (4, 7)", bx, by)
	}

	singular := Matrix{XX: 1, XY: 2, YX: 2, YY: 4}
	before := singular
	if singular.Invert() {
		t.Error("Invert returned true for a singular matrix")
	}
	if singular != before {
		t.Error("singular matrix was modified")
	}
}

func TestMatrixIsIdentity(t *testing.T) {
	if !IdentityMatrix().IsIdentity() {
		t.Error("IdentityMatrix is not identity")
	}
	if TranslateMatrix(1, 0).IsIdentity() {
		t.Error("translation reported as identity")
	}
}
