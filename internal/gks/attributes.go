package gks

import (
	"math"

	"github.com/opd-ai/go-gkscairo/internal/cairo"
)

// referenceHeight is the page height, in points, that line widths and dash
// lengths are designed for. Both scale with the device height.
const referenceHeight = 792

func (ws *Workstation) deviceScale() float64 {
	if ws.mapper.Height <= 0 {
		return 1
	}
	return ws.mapper.Height / referenceHeight
}

func (ws *Workstation) bundle(attr int) LineBundle {
	if b, ok := ws.bundles[attr]; ok {
		return b
	}
	ws.log.warn("polyline bundle %d is not defined, using bundle 1", attr)
	if b, ok := ws.bundles[1]; ok {
		return b
	}
	return LineBundle{Type: LineSolid, Width: 1, Colour: 1}
}

// DashPattern returns the dash lengths for a line type at unit scale.
// A nil result means a solid line.
func DashPattern(lineType int) []float64 {
	switch lineType {
	case LineSolid:
		return nil
	case LineDash:
		return []float64{8, 8}
	case LineDot:
		return []float64{4, 4}
	case LineDashDot:
		return []float64{8, 4, 4, 4}
	case LineLongDash:
		return []float64{16, 16}
	default:
		return []float64{1}
	}
}

// SetLineStyle sets the line type. The record applies only when asf
// matches the workstation's line type flag; a bundled record takes the
// type from bundle attr, an individual one uses attr itself.
func (ws *Workstation) SetLineStyle(attr int, asf ASF) {
	if asf != ws.asf.LineType {
		return
	}
	lineType := attr
	if asf == Bundled {
		lineType = ws.bundle(attr).Type
	}
	ws.state.LineType = lineType
	ws.log.info("set_lineStyle: setting style to %d", lineType)
	if ws.cr == nil {
		return
	}
	dashes := DashPattern(lineType)
	scale := ws.deviceScale()
	for i := range dashes {
		dashes[i] *= scale
	}
	ws.cr.SetDash(dashes, 0)
}

// LineWidth converts a GKS line width scale factor to device units.
// The factor is truncated to an integer first.
func LineWidth(size, deviceHeight float64) float64 {
	return math.Trunc(size) * deviceHeight / referenceHeight * 0.5
}

// SetLineWidth sets the line width scale factor, gated like SetLineStyle.
// A bundled record takes the width from bundle attr.
func (ws *Workstation) SetLineWidth(size float64, attr int, asf ASF) {
	if asf != ws.asf.LineWidth {
		return
	}
	if asf == Bundled {
		size = ws.bundle(attr).Width
	}
	ws.state.LineWidthScale = size
	if ws.cr == nil {
		return
	}
	ws.cr.SetLineWidth(LineWidth(size, ws.mapper.Height))
}

// SetLineColour sets the polyline colour, gated like SetLineStyle. The
// colour becomes the current source.
func (ws *Workstation) SetLineColour(attr int, asf ASF) {
	if asf != ws.asf.LineColour {
		return
	}
	colour := attr
	if asf == Bundled {
		colour = ws.bundle(attr).Colour
	}
	ws.state.LineColour = colour
	ws.setColour(colour)
}

func (ws *Workstation) setColour(index int) {
	if ws.cr == nil {
		return
	}
	ws.cr.SetSourceRGBA(ws.palette.RGBA(index))
}

// SetGraphAttr applies an index valued attribute record.
func (ws *Workstation) SetGraphAttr(code, attr int) error {
	switch code {
	case PolylineIndex:
		ws.SetLineStyle(attr, Bundled)
		ws.SetLineColour(attr, Bundled)
		ws.SetLineWidth(1, attr, Bundled)
	case Linetype:
		ws.SetLineStyle(attr, Individual)
	case PolylineColourIndex:
		ws.SetLineColour(attr, Individual)
	case PolymarkerColourIndex:
		ws.state.MarkerColour = attr
	case TextColourIndex:
		ws.state.TextColour = attr
	case FillAreaColourIndex:
		ws.state.FillColour = attr
		ws.setColour(attr)
	case FillAreaStyleIndex:
		ws.state.PatternIndex = attr
	case MarkerType, PolymarkerIndex, FillAreaIndex:
	case PickIdentifier, TextIndex:
		ws.log.warn("CAIROsetGraphAttr: Don't support code %d", code)
	default:
		ws.log.warn("CAIROsetGraphAttr: Unknown code %d", code)
	}
	return nil
}

// SetGraphSize applies a size valued attribute record.
func (ws *Workstation) SetGraphSize(code int, size float64) error {
	switch code {
	case LinewidthScaleFactor:
		ws.SetLineWidth(size, 0, Individual)
	case CharacterExpansion, MarkerSizeScaleFactor, CharacterSpacing:
		ws.log.warn("CAIROsetGraphSize: Don't support code %d", code)
	default:
		ws.log.warn("CAIROsetGraphSize: Unknown code %d", code)
	}
	return nil
}

// SetFillStyle sets the fill area interior style.
func (ws *Workstation) SetFillStyle(style FillStyle) error {
	ws.state.FillStyle = style
	ws.log.info("CAIROsetFillStyle: %s", style)
	return nil
}

func fontStyle(font int) cairo.FontStyle {
	switch {
	case font <= 1:
		return cairo.FontStyleRegular
	case font == 2:
		return cairo.FontStyleBold
	case font == 3:
		return cairo.FontStyleItalic
	case font == 4:
		return cairo.FontStyleBoldItalic
	default:
		return cairo.FontStyleMono
	}
}

// SetTextFP sets the text font and precision. Fonts 1 to 4 are the
// regular, bold, italic and bold italic Go fonts; higher numbers use Go Mono.
func (ws *Workstation) SetTextFP(font, prec int) error {
	ws.state.TextFont = font
	ws.state.TextPrecision = prec
	if ws.cr != nil {
		ws.cr.SelectFontFace(fontStyle(font))
	}
	ws.log.info("CAIROsetTextFp: font %d (%s) precision %d", font, fontStyle(font), prec)
	return nil
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// SetCharUp sets the character height and angle from the up vector.
func (ws *Workstation) SetCharUp(up, base Point) error {
	var angle float64
	if math.Abs(up.Y) < 1e-7 {
		angle = 90 * sign(up.X) * sign(up.Y)
	} else {
		angle = math.Atan(up.X/up.Y) * 180 / math.Pi
	}
	ws.state.TextHeight = math.Hypot(up.X, up.Y)
	if sign(up.Y) == 1 {
		ws.state.TextAngle = -angle
	} else {
		ws.state.TextAngle = 180 - angle
	}
	ws.log.warn("CAIROsetCharUp: Don't support this feature")
	return nil
}

// SetTextPath sets the direction of successive characters.
func (ws *Workstation) SetTextPath(p TextPath) error {
	ws.state.TextPath = p
	return nil
}

// SetTextAlign sets the text alignment.
func (ws *Workstation) SetTextAlign(h HAlign, v VAlign) error {
	ws.state.TextHAlign = h
	ws.state.TextVAlign = v
	return nil
}
