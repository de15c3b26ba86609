package cairo

import (
	"image"
	"image/color"
	"math"
	"sync"
)

// PatternType represents the type of a Pattern.
type PatternType int

const (
	// PatternTypeSolid is a single colour.
	PatternTypeSolid PatternType = iota
	// PatternTypeSurface paints from the pixels of a surface.
	PatternTypeSurface
)

// Extend controls how a surface pattern is painted outside the surface.
type Extend int

const (
	// ExtendNone pads with transparent pixels.
	ExtendNone Extend = iota
	// ExtendRepeat tiles the surface.
	ExtendRepeat
	// ExtendReflect tiles the surface, mirroring at every edge.
	ExtendReflect
	// ExtendPad repeats the edge pixels.
	ExtendPad
)

// Pattern is a paint source: a solid colour or a surface.
// Colour components are straight (not premultiplied) in the range 0..1.
type Pattern struct {
	kind       PatternType
	r, g, b, a float64
	surface    *Surface
	extend     Extend
	matrix     Matrix

	once   sync.Once
	pixels *image.NRGBA
}

// NewSolidPattern creates a solid colour pattern.
// This is equivalent to cairo_pattern_create_rgba.
func NewSolidPattern(r, g, b, a float64) *Pattern {
	return &Pattern{
		kind:   PatternTypeSolid,
		r:      clamp01(r),
		g:      clamp01(g),
		b:      clamp01(b),
		a:      clamp01(a),
		matrix: IdentityMatrix(),
	}
}

// NewSurfacePattern creates a pattern that paints from surface.
// This is equivalent to cairo_pattern_create_for_surface.
func NewSurfacePattern(surface *Surface) *Pattern {
	return &Pattern{
		kind:    PatternTypeSurface,
		surface: surface,
		extend:  ExtendNone,
		matrix:  IdentityMatrix(),
	}
}

// Type returns the pattern type.
func (p *Pattern) Type() PatternType {
	return p.kind
}

// RGBA returns the colour of a solid pattern.
// Surface patterns report opaque black.
func (p *Pattern) RGBA() (r, g, b, a float64) {
	if p.kind != PatternTypeSolid {
		return 0, 0, 0, 1
	}
	return p.r, p.g, p.b, p.a
}

// Surface returns the surface of a surface pattern, or nil.
func (p *Pattern) Surface() *Surface {
	return p.surface
}

// SetExtend sets the extend mode.
// This is equivalent to cairo_pattern_set_extend.
func (p *Pattern) SetExtend(extend Extend) {
	p.extend = extend
}

// Extend returns the extend mode.
func (p *Pattern) Extend() Extend {
	return p.extend
}

// SetMatrix sets the user-space to pattern-space transform.
// This is equivalent to cairo_pattern_set_matrix.
func (p *Pattern) SetMatrix(m Matrix) {
	p.matrix = m
}

// Matrix returns the user-space to pattern-space transform.
func (p *Pattern) Matrix() Matrix {
	return p.matrix
}

// ColorAt returns the colour the pattern paints at device point (x, y).
func (p *Pattern) ColorAt(x, y float64) (r, g, b, a float64) {
	if p.kind == PatternTypeSolid {
		return p.r, p.g, p.b, p.a
	}
	pix := p.snapshot()
	if pix == nil {
		return 0, 0, 0, 0
	}
	w, h := pix.Rect.Dx(), pix.Rect.Dy()
	px, py := p.matrix.TransformPoint(x, y)
	ix, ok := wrapCoord(int(math.Floor(px)), w, p.extend)
	if !ok {
		return 0, 0, 0, 0
	}
	iy, ok := wrapCoord(int(math.Floor(py)), h, p.extend)
	if !ok {
		return 0, 0, 0, 0
	}
	c := pix.NRGBAAt(ix, iy)
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// snapshot captures the surface pixels on first use.
func (p *Pattern) snapshot() *image.NRGBA {
	p.once.Do(func() {
		if p.surface == nil {
			return
		}
		img := p.surface.Image()
		if img == nil {
			return
		}
		b := img.Bounds()
		out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				out.Set(x, y, color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)))
			}
		}
		p.pixels = out
	})
	return p.pixels
}

func wrapCoord(v, size int, extend Extend) (int, bool) {
	if size <= 0 {
		return 0, false
	}
	switch extend {
	case ExtendRepeat:
		v %= size
		if v < 0 {
			v += size
		}
		return v, true
	case ExtendReflect:
		period := 2 * size
		v %= period
		if v < 0 {
			v += period
		}
		if v >= size {
			v = period - 1 - v
		}
		return v, true
	case ExtendPad:
		if v < 0 {
			return 0, true
		}
		if v >= size {
			return size - 1, true
		}
		return v, true
	default:
		if v < 0 || v >= size {
			return 0, false
		}
		return v, true
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
