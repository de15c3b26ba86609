package gks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-gkscairo/internal/cairo"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"", Portrait, false},
		{"portrait", Portrait, false},
		{"P", Portrait, false},
		{"landscape", Landscape, false},
		{" l ", Landscape, false},
		{"sideways", Portrait, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrientation(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapperMap(t *testing.T) {
	portrait := Mapper{Orientation: Portrait, Width: 400, Height: 800}
	landscape := Mapper{Orientation: Landscape, Width: 800, Height: 400}
	id := cairo.IdentityMatrix()

	tests := []struct {
		name   string
		m      Mapper
		ctm    cairo.Matrix
		x, y   float64
		wx, wy float64
	}{
		{"portrait origin", portrait, id, 0, 0, 0, 800},
		{"portrait top", portrait, id, 0, 1, 0, 0},
		{"portrait right edge", portrait, id, 0.5, 0.25, 400, 600},
		{"landscape origin", landscape, id, 0, 0, 0, 400},
		{"landscape top right", landscape, id, 1, 0.5, 800, 0},
		{"landscape unit square corner", landscape, id, 1, 1, 800, -400},
		{"truncates", portrait, id, 0.0013, 0, 1, 800},
		{"truncates toward zero", portrait, id, -0.0013, 0, -1, 800},
		{"applies ctm", portrait, cairo.TranslateMatrix(10, 5), 0, 0, 10, 805},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.m.Map(tt.ctm, tt.x, tt.y)
			assert.Equal(t, tt.wx, x)
			assert.Equal(t, tt.wy, y)

			// same input, same output
			x2, y2 := tt.m.Map(tt.ctm, tt.x, tt.y)
			assert.Equal(t, x, x2)
			assert.Equal(t, y, y2)
		})
	}
}

func TestMapperRatios(t *testing.T) {
	xr, yr := Mapper{Orientation: Landscape, Width: 792, Height: 612}.Ratios()
	assert.Equal(t, 1.0, xr)
	assert.InDelta(t, 792.0/612.0, yr, 1e-12)

	xr, yr = Mapper{Orientation: Portrait, Width: 612, Height: 792}.Ratios()
	assert.InDelta(t, 792.0/612.0, xr, 1e-12)
	assert.Equal(t, 1.0, yr)

	xr, yr = Mapper{}.Ratios()
	assert.Equal(t, []float64{1, 1}, []float64{xr, yr})
}

func TestMapperLength(t *testing.T) {
	m := Mapper{Orientation: Landscape, Width: 800, Height: 400}
	assert.InDelta(t, 80.0, m.Length(0.1), 1e-9)
}
