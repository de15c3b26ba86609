package gks

import (
	"fmt"
	"math"
	"strings"

	"github.com/opd-ai/go-gkscairo/internal/cairo"
)

// Orientation is the page orientation.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// ParseOrientation accepts "portrait" and "landscape" (or "p" and "l").
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "p", "portrait":
		return Portrait, nil
	case "l", "landscape":
		return Landscape, nil
	default:
		return Portrait, fmt.Errorf("unknown orientation %q", s)
	}
}

// Mapper converts normalized coordinates to device coordinates for a
// page of Width x Height device units.
//
// The longer page side spans the unit interval: in landscape x runs over
// [0,1] and y over [0, Height/Width]; in portrait y runs over [0,1] and x
// over [0, Width/Height]. The y axis is flipped so that y grows upwards.
type Mapper struct {
	Orientation Orientation
	Width       float64
	Height      float64
}

// Ratios returns the x and y aspect factors.
func (m Mapper) Ratios() (xr, yr float64) {
	if m.Width <= 0 || m.Height <= 0 {
		return 1, 1
	}
	if m.Orientation == Landscape {
		return 1, m.Width / m.Height
	}
	return m.Height / m.Width, 1
}

// Map converts (x, y) to device coordinates. The result is passed through
// ctm and truncated toward zero.
func (m Mapper) Map(ctm cairo.Matrix, x, y float64) (float64, float64) {
	xr, yr := m.Ratios()
	dx := x * xr * m.Width
	dy := m.Height - y*yr*m.Height
	dx, dy = ctm.TransformPoint(dx, dy)
	return math.Trunc(dx), math.Trunc(dy)
}

// Length converts a normalized vertical distance to device units.
func (m Mapper) Length(d float64) float64 {
	_, yr := m.Ratios()
	return d * yr * m.Height
}
