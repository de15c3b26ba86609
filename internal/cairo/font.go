package cairo

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// FontStyle selects one of the embedded Go fonts.
type FontStyle int

const (
	// FontStyleRegular is Go Regular.
	FontStyleRegular FontStyle = iota
	// FontStyleBold is Go Bold.
	FontStyleBold
	// FontStyleItalic is Go Italic.
	FontStyleItalic
	// FontStyleBoldItalic is Go Bold Italic.
	FontStyleBoldItalic
	// FontStyleMono is Go Mono.
	FontStyleMono
)

// String returns the string representation of a FontStyle.
func (fs FontStyle) String() string {
	switch fs {
	case FontStyleRegular:
		return "regular"
	case FontStyleBold:
		return "bold"
	case FontStyleItalic:
		return "italic"
	case FontStyleBoldItalic:
		return "bold-italic"
	case FontStyleMono:
		return "mono"
	default:
		return "unknown"
	}
}

// postScriptName is the base-14 font substituted for the style in PS output.
func (fs FontStyle) postScriptName() string {
	switch fs {
	case FontStyleBold:
		return "Helvetica-Bold"
	case FontStyleItalic:
		return "Helvetica-Oblique"
	case FontStyleBoldItalic:
		return "Helvetica-BoldOblique"
	case FontStyleMono:
		return "Courier"
	default:
		return "Helvetica"
	}
}

// pdfFont returns the fpdf core family and style string for the style.
func (fs FontStyle) pdfFont() (family, style string) {
	switch fs {
	case FontStyleBold:
		return "Helvetica", "B"
	case FontStyleItalic:
		return "Helvetica", "I"
	case FontStyleBoldItalic:
		return "Helvetica", "BI"
	case FontStyleMono:
		return "Courier", ""
	default:
		return "Helvetica", ""
	}
}

// svgAttrs returns the SVG font attributes for the style.
func (fs FontStyle) svgAttrs() []string {
	switch fs {
	case FontStyleBold:
		return []string{`font-family="Go, Helvetica, sans-serif"`, `font-weight="bold"`}
	case FontStyleItalic:
		return []string{`font-family="Go, Helvetica, sans-serif"`, `font-style="italic"`}
	case FontStyleBoldItalic:
		return []string{`font-family="Go, Helvetica, sans-serif"`, `font-weight="bold"`, `font-style="italic"`}
	case FontStyleMono:
		return []string{`font-family="Go Mono, Courier, monospace"`}
	default:
		return []string{`font-family="Go, Helvetica, sans-serif"`}
	}
}

var fontData = map[FontStyle][]byte{
	FontStyleRegular:    goregular.TTF,
	FontStyleBold:       gobold.TTF,
	FontStyleItalic:     goitalic.TTF,
	FontStyleBoldItalic: gobolditalic.TTF,
	FontStyleMono:       gomono.TTF,
}

var (
	fontMu      sync.Mutex
	fontSources = make(map[FontStyle]*text.FontSource)
)

// fontSource returns the parsed font for a style, loading it on first use.
func fontSource(style FontStyle) (*text.FontSource, error) {
	fontMu.Lock()
	defer fontMu.Unlock()

	if src, ok := fontSources[style]; ok {
		return src, nil
	}
	data, ok := fontData[style]
	if !ok {
		data = goregular.TTF
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("load %s font: %w", style, err)
	}
	fontSources[style] = src
	return src, nil
}

// fontFace returns a face for style at size, or nil if the font failed to load.
func fontFace(style FontStyle, size float64) text.Face {
	src, err := fontSource(style)
	if err != nil {
		return nil
	}
	return src.Face(size)
}

// TextExtents holds text measurements in device units.
type TextExtents struct {
	Width     float64
	Height    float64
	Ascent    float64
	Descent   float64
	CapHeight float64
}

// MeasureText measures s in the given style and size using the embedded
// Go fonts. The same metrics are used for every backend so alignment is
// consistent between raster and vector output.
func MeasureText(style FontStyle, size float64, s string) TextExtents {
	face := fontFace(style, size)
	if face == nil {
		return TextExtents{}
	}
	w, h := text.Measure(s, face)
	m := face.Metrics()
	capHeight := m.CapHeight
	if capHeight <= 0 {
		capHeight = m.Ascent * 0.7
	}
	return TextExtents{
		Width:     w,
		Height:    h,
		Ascent:    m.Ascent,
		Descent:   m.Descent,
		CapHeight: capHeight,
	}
}
