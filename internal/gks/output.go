package gks

import (
	"math"

	"github.com/opd-ai/go-gkscairo/internal/cairo"
)

func (ws *Workstation) moveTo(p Point) {
	x, y := ws.mapper.Map(ws.cr.Matrix(), p.X, p.Y)
	ws.cr.MoveTo(x, y)
}

func (ws *Workstation) lineTo(p Point) {
	x, y := ws.mapper.Map(ws.cr.Matrix(), p.X, p.Y)
	ws.cr.LineTo(x, y)
}

// preStroke reports whether filled areas get a one unit outline before
// the fill. PostScript and PDF output need it to avoid seams between
// adjacent polygons.
func (ws *Workstation) preStroke() bool {
	return ws.device == cairo.SurfaceTypePS || ws.device == cairo.SurfaceTypePDF
}

// OutputGraphic draws a polyline, polymarker or fill area.
func (ws *Workstation) OutputGraphic(code int, pts []Point) error {
	cr := ws.cr
	if cr == nil {
		return nil
	}
	style := ws.state.FillStyle

	var restore *cairo.Pattern
	switch code {
	case FillArea:
		if len(pts) == 0 {
			return nil
		}
		if style == FillPattern || style == FillHatch {
			pattern := ws.buildPattern(cr, ws.state.PatternIndex, style == FillHatch)
			restore = cr.Source()
			cr.SetSource(pattern)
		}
		ws.moveTo(pts[0])
	case Polyline:
		if len(pts) == 0 {
			return nil
		}
		ws.moveTo(pts[0])
	case Polymarker:
		// marker glyphs are not drawn
	default:
		ws.log.err("CAIROoutputGraphics: Unknown code %d", code)
		return nil
	}

	if code != Polymarker {
		for _, p := range pts[1:] {
			ws.lineTo(p)
		}
	}

	switch code {
	case FillArea:
		if style == FillHollow {
			ws.lineTo(pts[0])
			cr.ClosePath()
			cr.Stroke()
			break
		}
		cr.ClosePath()
		if ws.preStroke() {
			width := cr.LineWidth()
			cr.SetLineWidth(1)
			cr.StrokePreserve()
			cr.SetLineWidth(width)
		}
		cr.Fill()
		if restore != nil {
			cr.SetSource(restore)
		}
	case Polymarker:
		cr.Fill()
	case Polyline:
		cr.Stroke()
	}
	return nil
}

// defaultTextHeight is used when the character height is zero.
const defaultTextHeight = 0.01

// Text draws s at the anchor repeat times, using the text colour, font,
// height, angle, path and alignment of the graphics state.
func (ws *Workstation) Text(at Point, s string, repeat int) error {
	if ws.cr == nil {
		return nil
	}
	ws.moveTo(at)
	for i := 0; i < repeat; i++ {
		ws.drawString(at, s)
	}
	ws.cr.NewPath()
	return nil
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// alignOffset returns the baseline origin relative to the anchor for a
// run of the given extents, in text space (y down).
func alignOffset(ext cairo.TextExtents, h HAlign, v VAlign) (dx, dy float64) {
	switch h {
	case AlignCenter:
		dx = -ext.Width / 2
	case AlignRight:
		dx = -ext.Width
	}
	switch v {
	case AlignTop:
		dy = ext.Ascent
	case AlignCap:
		dy = ext.CapHeight
	case AlignHalf:
		dy = ext.CapHeight / 2
	case AlignBottom:
		dy = -math.Abs(ext.Descent)
	}
	return dx, dy
}

func (ws *Workstation) drawString(at Point, s string) {
	cr := ws.cr
	st := ws.state
	height := st.TextHeight
	if height <= 0 {
		height = defaultTextHeight
	}
	size := ws.mapper.Length(height)
	style := fontStyle(st.TextFont)
	x, y := ws.mapper.Map(cr.Matrix(), at.X, at.Y)

	cr.Save()
	cr.Translate(x, y)
	cr.Rotate(-st.TextAngle * math.Pi / 180)
	cr.SelectFontFace(style)
	cr.SetFontSize(size)
	cr.SetSourceRGBA(ws.palette.RGBA(st.TextColour))

	switch st.TextPath {
	case PathUp, PathDown:
		runes := []rune(s)
		step := cairo.MeasureText(style, size, "M").Height
		if st.TextPath == PathUp {
			step = -step
		}
		for i, r := range runes {
			ext := cairo.MeasureText(style, size, string(r))
			dx, dy := alignOffset(ext, st.TextHAlign, st.TextVAlign)
			cr.MoveTo(dx, dy+float64(i)*step)
			cr.ShowText(string(r))
		}
	default:
		if st.TextPath == PathLeft {
			s = reverse(s)
		}
		ext := cairo.MeasureText(style, size, s)
		dx, dy := alignOffset(ext, st.TextHAlign, st.TextVAlign)
		cr.MoveTo(dx, dy)
		cr.ShowText(s)
	}
	cr.NewPath()
	cr.Restore()
}

// CellArray is accepted but not drawn.
func (ws *Workstation) CellArray(ll, ur, lr Point, row int, colours []int, dimX, dimY int) error {
	ws.log.unsupported("cellArray")
	return nil
}
