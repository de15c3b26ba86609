package hatch

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-gkscairo/internal/cairo"
)

func newContext(t *testing.T) *cairo.Context {
	t.Helper()
	cr, err := cairo.NewContext(cairo.NewImageSurface(32, 32))
	require.NoError(t, err)
	return cr
}

func TestBuildAllIndices(t *testing.T) {
	cr := newContext(t)
	for index := 1; index <= Count; index++ {
		require.True(t, Defined(index), "index %d", index)
		for _, colored := range []bool{false, true} {
			p := Build(cr, index, colored)
			require.NotNil(t, p)
			assert.Equal(t, cairo.PatternTypeSurface, p.Type())
			assert.Equal(t, cairo.ExtendRepeat, p.Extend())

			tile := p.Surface()
			require.NotNil(t, tile)
			w, h := Size(index)
			assert.Greater(t, tile.Width(), 0.0, "index %d", index)
			assert.Greater(t, tile.Height(), 0.0, "index %d", index)
			assert.Equal(t, float64(w), tile.Width())
			assert.Equal(t, float64(h), tile.Height())
			assert.NotEmpty(t, tile.Ops(), "index %d drew nothing", index)
		}
	}
}

func TestBuildFallback(t *testing.T) {
	cr := newContext(t)
	for _, index := range []int{0, -1, 21, 1000} {
		assert.False(t, Defined(index))
		p := Build(cr, index, false)
		require.NotNil(t, p)
		tile := p.Surface()
		assert.Equal(t, 1.0, tile.Width())
		assert.Equal(t, 1.0, tile.Height())
		ops := tile.Ops()
		require.Len(t, ops, 1)
		assert.Equal(t, cairo.DrawFill, ops[0].Kind)
		x0, y0, x1, y1 := ops[0].Path.Bounds()
		assert.Equal(t, []float64{0, 0, 1, 1}, []float64{x0, y0, x1, y1})
	}
}

func TestBuildRotatedMotifs(t *testing.T) {
	cr := newContext(t)
	for index := 1; index <= Count; index++ {
		m := Build(cr, index, false).Matrix()
		if index == 14 || index == 18 {
			assert.InDelta(t, 0.7071, m.XX, 1e-4)
			assert.InDelta(t, -0.7071, m.XY, 1e-4)
			assert.InDelta(t, 0.7071, m.YX, 1e-4)
			assert.InDelta(t, 0.7071, m.YY, 1e-4)
		} else {
			assert.True(t, m.IsIdentity(), "index %d has matrix %+v", index, m)
		}
	}
}

func TestBuildColored(t *testing.T) {
	cr := newContext(t)
	cr.SetSourceRGB(1, 0, 0)

	colored := Build(cr, 2, true).Surface().Ops()
	require.NotEmpty(t, colored)
	r, g, b, _ := colored[0].Source.RGBA()
	assert.Equal(t, []float64{1, 0, 0}, []float64{r, g, b})

	plain := Build(cr, 2, false).Surface().Ops()
	require.NotEmpty(t, plain)
	r, g, b, a := plain[0].Source.RGBA()
	assert.Equal(t, []float64{0, 0, 0, 1}, []float64{r, g, b, a})
}

func TestBasketTranslates(t *testing.T) {
	cr := newContext(t)
	ops := Build(cr, 18, false).Surface().Ops()
	// nine placements of a two-rectangle motif
	require.Len(t, ops, 18)

	x0, y0, _, _ := ops[2].Path.Bounds()
	assert.Equal(t, 8.0, x0)
	assert.Equal(t, 1.0, y0)

	x0, _, _, _ = ops[4].Path.Bounds()
	assert.Equal(t, -8.0, x0)
}

func TestBuildOnVectorTarget(t *testing.T) {
	var buf bytes.Buffer
	cr, err := cairo.NewContext(cairo.NewSVGSurface(&buf, 100, 100))
	require.NoError(t, err)
	p := Build(cr, 9, false)
	ops := p.Surface().Ops()
	require.Len(t, ops, 3)
	for _, o := range ops {
		assert.Equal(t, cairo.DrawStroke, o.Kind)
		assert.Equal(t, 1.0, o.LineWidth)
	}
}
