// Package cairo provides a Cairo-style 2D drawing layer for gkscairo.
// A Context records path and paint state in the manner of cairo_t and
// hands finished paths to the backend of its target Surface: a gg raster
// for images, or a PostScript, PDF or SVG document writer.
package cairo

import (
	"fmt"
	"strings"
)

// SurfaceType identifies the backend of a Surface.
// This is the equivalent of cairo_surface_type_t, limited to the
// surface kinds the driver can open.
type SurfaceType int

const (
	// SurfaceTypeImage is an in-memory raster, encoded to PNG on request.
	SurfaceTypeImage SurfaceType = iota
	// SurfaceTypePS is a PostScript document.
	SurfaceTypePS
	// SurfaceTypePDF is a PDF document.
	SurfaceTypePDF
	// SurfaceTypeSVG is an SVG document.
	SurfaceTypeSVG
)

// String returns the device token for the surface type.
func (t SurfaceType) String() string {
	switch t {
	case SurfaceTypeImage:
		return "png"
	case SurfaceTypePS:
		return "ps"
	case SurfaceTypePDF:
		return "pdf"
	case SurfaceTypeSVG:
		return "svg"
	default:
		return "unknown"
	}
}

// IsVector reports whether the surface writes a vector document.
func (t SurfaceType) IsVector() bool {
	return t == SurfaceTypePS || t == SurfaceTypePDF || t == SurfaceTypeSVG
}

// ParseSurfaceType resolves a device token ("png", "ps", "pdf", "svg").
// Matching is case-insensitive; "image" and "eps" are accepted as aliases.
func ParseSurfaceType(token string) (SurfaceType, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "png", "image":
		return SurfaceTypeImage, nil
	case "ps", "eps":
		return SurfaceTypePS, nil
	case "pdf":
		return SurfaceTypePDF, nil
	case "svg":
		return SurfaceTypeSVG, nil
	default:
		return SurfaceTypeImage, fmt.Errorf("%w: %q", ErrUnknownSurfaceType, token)
	}
}

// Op names a Context operation. A tracer installed with SetTracer
// receives one Op per call.
type Op int

const (
	OpSave Op = iota
	OpRestore
	OpMoveTo
	OpLineTo
	OpClosePath
	OpRectangle
	OpClip
	OpStroke
	OpStrokePreserve
	OpFill
	OpFillPreserve
	OpSetSource
	OpSetLineWidth
	OpSetDash
	OpShowText
	OpShowPage
)

var opNames = [...]string{
	OpSave:           "save",
	OpRestore:        "restore",
	OpMoveTo:         "move_to",
	OpLineTo:         "line_to",
	OpClosePath:      "close_path",
	OpRectangle:      "rectangle",
	OpClip:           "clip",
	OpStroke:         "stroke",
	OpStrokePreserve: "stroke_preserve",
	OpFill:           "fill",
	OpFillPreserve:   "fill_preserve",
	OpSetSource:      "set_source",
	OpSetLineWidth:   "set_line_width",
	OpSetDash:        "set_dash",
	OpShowText:       "show_text",
	OpShowPage:       "show_page",
}

// String returns the cairo function suffix for the operation.
func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// DrawKind says how a recorded path was painted.
type DrawKind int

const (
	// DrawFill paints the interior of the path.
	DrawFill DrawKind = iota
	// DrawStroke paints the outline of the path.
	DrawStroke
)

// DrawOp is one painted path on a recording surface. Tiles created with
// CreateSimilar keep their DrawOps so vector backends can replay them.
type DrawOp struct {
	Kind      DrawKind
	Path      *Path
	Source    *Pattern
	LineWidth float64
}

// paint carries the graphics state a backend needs for one paint call.
type paint struct {
	source     *Pattern
	lineWidth  float64
	dash       []float64
	dashOffset float64
	clips      []*Path
}

// textRun describes one show_text call in device space.
type textRun struct {
	at    Point
	text  string
	font  FontStyle
	size  float64
	angle float64 // radians, clockwise in device space
}

// backend is implemented by each surface kind.
type backend interface {
	fill(path *Path, p *paint) error
	stroke(path *Path, p *paint) error
	showText(run *textRun, p *paint) error
	showPage() error
	finish() error
}
