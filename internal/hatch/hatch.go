// Package hatch builds the repeating tiles used for pattern and hatch
// fill areas. Each fill index maps to a small motif described as a list
// of drawing operations, replayed onto a scratch surface by one builder.
package hatch

import (
	"github.com/opd-ai/go-gkscairo/internal/cairo"
)

type opKind int

const (
	opRect      opKind = iota // x, y, w, h
	opPoly                    // x0, y0, x1, y1, ...
	opLine                    // x0, y0, x1, y1, stroked
	opFill                    // fill the accumulated path
	opTranslate               // tx, ty
)

type op struct {
	kind opKind
	v    []float64
}

// motif is one tile: its size in device units, the stroke width used by
// line ops and the operations that draw it.
type motif struct {
	w, h      int
	lineWidth float64
	rotate    bool
	ops       []op
}

// diagonal is the 45 degree matrix applied to rotated motifs.
var diagonal = cairo.Matrix{XX: 0.707106781187, XY: -0.707106781187, YX: 0.707106781187, YY: 0.707106781187}

func rect(x, y, w, h float64) op { return op{kind: opRect, v: []float64{x, y, w, h}} }

func poly(pts ...float64) op { return op{kind: opPoly, v: pts} }

func line(x0, y0, x1, y1 float64) op { return op{kind: opLine, v: []float64{x0, y0, x1, y1}} }

func translate(tx, ty float64) op { return op{kind: opTranslate, v: []float64{tx, ty}} }

func fill() op { return op{kind: opFill} }

func filledRects(r ...[4]float64) []op {
	ops := make([]op, 0, 2*len(r))
	for _, v := range r {
		ops = append(ops, rect(v[0], v[1], v[2], v[3]), fill())
	}
	return ops
}

var (
	backslash = []op{line(4, 0, 0, 4), line(4, -4, -4, 4), line(8, 0, 0, 8)}
	slash     = []op{line(0, 0, 4, 4), line(-4, 0, 4, 8), line(0, -4, 8, 4)}
)

// basket repeats the pattern 18 motif at the translate offsets that cover
// the 8x5 tile and its neighbours.
func basket() []op {
	unit := filledRects([4]float64{0, 1, 4, 1.5}, [4]float64{5, 0, 2, 4})
	steps := [][2]float64{{8, 0}, {-16, 0}, {0, 5}, {8, 0}, {8, 0}, {0, -10}, {-8, 0}, {-8, 0}}
	ops := append([]op(nil), unit...)
	for _, s := range steps {
		ops = append(ops, translate(s[0], s[1]))
		ops = append(ops, unit...)
	}
	return ops
}

var motifs = map[int]motif{
	1:  {w: 4, h: 4, ops: []op{poly(0, 0, 0, 3, 3, 3), fill()}},
	2:  {w: 4, h: 4, ops: filledRects([4]float64{0, 2, 2, 2})},
	3:  {w: 4, h: 4, ops: []op{poly(0, 0, 2, 0, 2, 2, 4, 2, 4, 4, 0, 4), fill()}},
	4:  {w: 4, h: 4, ops: []op{rect(0, 0, 2, 2), rect(2, 2, 2, 2), fill()}},
	5:  {w: 1, h: 4, ops: filledRects([4]float64{0, 0.5, 1, 2.5})},
	6:  {w: 4, h: 1, ops: filledRects([4]float64{0, 0, 3, 1})},
	7:  {w: 1, h: 4, ops: filledRects([4]float64{0, 0, 1, 1})},
	8:  {w: 4, h: 1, ops: filledRects([4]float64{0, 0, 1, 1})},
	9:  {w: 4, h: 4, lineWidth: 1, ops: backslash},
	10: {w: 4, h: 4, lineWidth: 2, ops: backslash},
	11: {w: 4, h: 4, lineWidth: 1, ops: slash},
	12: {w: 4, h: 4, lineWidth: 2, ops: slash},
	13: {w: 7, h: 7, ops: filledRects([4]float64{0, 0, 6, 6})},
	14: {w: 7, h: 7, rotate: true, ops: filledRects([4]float64{0, 0, 6, 6})},
	15: {w: 8, h: 1, ops: filledRects([4]float64{0, 0, 2, 1}, [4]float64{3, 0, 4, 1})},
	16: {w: 1, h: 8, ops: filledRects([4]float64{0, 0, 1, 2}, [4]float64{0, 3, 1, 4})},
	17: {w: 8, h: 8, ops: filledRects(
		[4]float64{0, 0, 1, 1}, [4]float64{4, 0, 1, 1}, [4]float64{0, 4, 1, 1}, [4]float64{4, 4, 1, 1},
		[4]float64{1, 1, 3, 3}, [4]float64{5, 5, 3, 3}, [4]float64{1, 5, 2, 1}, [4]float64{5, 1, 2, 1},
	)},
	18: {w: 8, h: 5, rotate: true, ops: basket()},
	19: {w: 8, h: 8, ops: filledRects(
		[4]float64{1, 0, 7, 2}, [4]float64{0, 2, 1, 1}, [4]float64{2, 2, 5, 1}, [4]float64{0, 3, 2, 1},
		[4]float64{7, 3, 1, 4}, [4]float64{0, 4, 4, 2}, [4]float64{5, 4, 2, 2}, [4]float64{0, 6, 3, 1},
		[4]float64{4, 6, 1, 1}, [4]float64{6, 6, 2, 1}, [4]float64{3, 7, 3, 1},
	)},
	20: {w: 9, h: 10, ops: filledRects([4]float64{0, 0, 8, 4}, [4]float64{-4, 5, 8, 4}, [4]float64{5, 5, 8, 4})},
}

// fallback is used for any index without a motif: a single filled pixel.
var fallback = motif{w: 1, h: 1, ops: filledRects([4]float64{0, 0, 1, 1})}

// Count is the number of defined fill pattern indices, numbered from 1.
const Count = 20

// Defined reports whether index has its own motif.
func Defined(index int) bool {
	_, ok := motifs[index]
	return ok
}

// Size returns the tile size for index.
func Size(index int) (w, h int) {
	m, ok := motifs[index]
	if !ok {
		m = fallback
	}
	return m.w, m.h
}

// Builder creates the paint source for a fill index.
// Build is the default; tests substitute their own to observe calls.
type Builder func(cr *cairo.Context, index int, colored bool) *cairo.Pattern

// Build draws the tile for index on a surface similar to cr's target and
// returns it as a repeating pattern. When colored is true the tile is
// drawn with cr's current source, otherwise in opaque black.
// Unknown indices produce a 1x1 solid tile.
func Build(cr *cairo.Context, index int, colored bool) *cairo.Pattern {
	m, ok := motifs[index]
	if !ok {
		m = fallback
	}

	tile := cr.Target().CreateSimilar(m.w, m.h)
	tcr, err := cairo.NewContext(tile)
	if err != nil {
		return cairo.NewSolidPattern(0, 0, 0, 1)
	}
	if colored {
		tcr.SetSource(cr.Source())
	}
	if m.lineWidth > 0 {
		tcr.SetLineWidth(m.lineWidth)
	}
	for _, o := range m.ops {
		apply(tcr, o)
	}
	tcr.Destroy()

	pattern := cairo.NewSurfacePattern(tile)
	pattern.SetExtend(cairo.ExtendRepeat)
	if m.rotate {
		pattern.SetMatrix(diagonal)
	}
	return pattern
}

func apply(cr *cairo.Context, o op) {
	switch o.kind {
	case opRect:
		cr.Rectangle(o.v[0], o.v[1], o.v[2], o.v[3])
	case opPoly:
		cr.MoveTo(o.v[0], o.v[1])
		for i := 2; i+1 < len(o.v); i += 2 {
			cr.LineTo(o.v[i], o.v[i+1])
		}
	case opLine:
		cr.MoveTo(o.v[0], o.v[1])
		cr.LineTo(o.v[2], o.v[3])
		cr.Stroke()
	case opFill:
		cr.Fill()
	case opTranslate:
		cr.Translate(o.v[0], o.v[1])
	}
}
