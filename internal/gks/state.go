package gks

// Point is a position in normalized device coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis aligned rectangle in normalized device coordinates.
type Rect struct {
	XMin, YMin, XMax, YMax float64
}

// FillStyle is the fill area interior style.
type FillStyle int

const (
	FillHollow FillStyle = iota
	FillSolid
	FillPattern
	FillHatch
)

func (s FillStyle) String() string {
	switch s {
	case FillHollow:
		return "hollow"
	case FillSolid:
		return "solid"
	case FillPattern:
		return "pattern"
	case FillHatch:
		return "hatch"
	default:
		return "unknown"
	}
}

// TextPath is the direction in which successive characters are placed.
type TextPath int

const (
	PathRight TextPath = iota
	PathLeft
	PathUp
	PathDown
)

// ParseTextPath maps the one letter path codes r, l, u and d.
// Anything else is PathRight.
func ParseTextPath(s string) TextPath {
	switch s {
	case "l":
		return PathLeft
	case "u":
		return PathUp
	case "d":
		return PathDown
	default:
		return PathRight
	}
}

// HAlign is the horizontal text alignment.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// ParseHAlign maps l and c; every other code aligns right.
func ParseHAlign(s string) HAlign {
	switch s {
	case "l":
		return AlignLeft
	case "c":
		return AlignCenter
	default:
		return AlignRight
	}
}

// VAlign is the vertical text alignment.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignCap
	AlignHalf
	AlignBase
	AlignBottom
)

// ParseVAlign maps t, c, h, b and s. Unknown codes give AlignHalf.
func ParseVAlign(s string) VAlign {
	switch s {
	case "t":
		return AlignTop
	case "c":
		return AlignCap
	case "b":
		return AlignBase
	case "s":
		return AlignBottom
	default:
		return AlignHalf
	}
}

// ASF is an aspect source flag: whether an attribute comes from a bundle
// table or is set individually.
type ASF int

const (
	Bundled ASF = iota
	Individual
)

func (a ASF) String() string {
	if a == Bundled {
		return "bundled"
	}
	return "individual"
}

// ParseASF accepts "bundled" and "individual".
func ParseASF(s string) (ASF, bool) {
	switch s {
	case "bundled":
		return Bundled, true
	case "individual":
		return Individual, true
	default:
		return Individual, false
	}
}

// ASFs holds the aspect source flags of the polyline attributes.
type ASFs struct {
	LineType   ASF
	LineWidth  ASF
	LineColour ASF
}

// DefaultASFs sets every polyline attribute to individual.
func DefaultASFs() ASFs {
	return ASFs{LineType: Individual, LineWidth: Individual, LineColour: Individual}
}

// LineBundle is one entry of the polyline bundle table.
type LineBundle struct {
	Type   int
	Width  float64
	Colour int
}

// DefaultLineBundles returns the predefined polyline bundles 1 to 5,
// one per line type, all width 1 and colour 1.
func DefaultLineBundles() map[int]LineBundle {
	return map[int]LineBundle{
		1: {Type: LineSolid, Width: 1, Colour: 1},
		2: {Type: LineDash, Width: 1, Colour: 1},
		3: {Type: LineDot, Width: 1, Colour: 1},
		4: {Type: LineDashDot, Width: 1, Colour: 1},
		5: {Type: LineLongDash, Width: 1, Colour: 1},
	}
}

// GraphicsState is the attribute state read by every drawing call.
// Attribute setters are its only writers.
type GraphicsState struct {
	LineType       int
	LineWidthScale float64
	LineColour     int
	MarkerColour   int
	FillStyle      FillStyle
	FillColour     int
	PatternIndex   int
	TextColour     int
	TextFont       int
	TextPrecision  int
	TextPath       TextPath
	TextHAlign     HAlign
	TextVAlign     VAlign
	TextHeight     float64
	TextAngle      float64
	Clip           *Rect
}

// DefaultGraphicsState returns the state a workstation starts with.
func DefaultGraphicsState() GraphicsState {
	return GraphicsState{
		LineType:       LineSolid,
		LineWidthScale: 1,
		LineColour:     1,
		MarkerColour:   1,
		FillStyle:      FillHollow,
		FillColour:     1,
		PatternIndex:   1,
		TextColour:     1,
		TextFont:       1,
		TextPath:       PathRight,
		TextHAlign:     AlignLeft,
		TextVAlign:     AlignBase,
		TextHeight:     0.01,
	}
}
