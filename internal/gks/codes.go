package gks

// Metafile item codes, as numbered by the GKS metafile format.
const (
	Clear         = 1
	RedrawAllSeg  = 2
	Update        = 3
	DeferralState = 4
	MessageItem   = 5

	Polyline   = 11
	Polymarker = 12
	TextItem   = 13
	FillArea   = 14
	CellArray  = 15

	PolylineIndex          = 21
	Linetype               = 22
	LinewidthScaleFactor   = 23
	PolylineColourIndex    = 24
	PolymarkerIndex        = 25
	MarkerType             = 26
	MarkerSizeScaleFactor  = 27
	PolymarkerColourIndex  = 28
	TextIndex              = 29
	TextFontAndPrecision   = 30
	CharacterExpansion     = 31
	CharacterSpacing       = 32
	TextColourIndex        = 33
	CharacterVectors       = 34
	TextPathItem           = 35
	TextAlignment          = 36
	FillAreaIndex          = 37
	FillAreaInteriorStyle  = 38
	FillAreaStyleIndex     = 39
	FillAreaColourIndex    = 40
	PatternSize            = 41
	PatternReferencePoint  = 42
	AspectSourceFlags      = 43
	PickIdentifier         = 44
	PolylineRepresentation = 51
	ClippingRectangle      = 61
)

// Line types. LineLongDash is the driver specific long dash.
const (
	LineSolid    = 1
	LineDash     = 2
	LineDot      = 3
	LineDashDot  = 4
	LineLongDash = -3
)

// CodeName returns a printable name for a metafile item code.
func CodeName(code int) string {
	if n, ok := codeNames[code]; ok {
		return n
	}
	return "UNKNOWN"
}

var codeNames = map[int]string{
	Clear:                  "CLEAR",
	RedrawAllSeg:           "REDRAW_ALL_SEG",
	Update:                 "UPDATE",
	DeferralState:          "DEFER",
	MessageItem:            "MESSAGE",
	Polyline:               "POLYLINE",
	Polymarker:             "POLYMARKER",
	TextItem:               "TEXT",
	FillArea:               "FILL_AREA",
	CellArray:              "CELL_ARRAY",
	PolylineIndex:          "POLYLINE_INDEX",
	Linetype:               "LINETYPE",
	LinewidthScaleFactor:   "LINEWIDTH_SCALE_FACTOR",
	PolylineColourIndex:    "POLYLINE_COLOUR_INDEX",
	PolymarkerIndex:        "POLYMARKER_INDEX",
	MarkerType:             "MARKER_TYPE",
	MarkerSizeScaleFactor:  "MARKER_SIZE_SCALE_FACTOR",
	PolymarkerColourIndex:  "POLYMARKER_COLOUR_INDEX",
	TextIndex:              "TEXT_INDEX",
	TextFontAndPrecision:   "TEXT_FONT_AND_PRECISION",
	CharacterExpansion:     "CHARACTER_EXPANSION_FACTOR",
	CharacterSpacing:       "CHARACTER_SPACING",
	TextColourIndex:        "TEXT_COLOUR_INDEX",
	CharacterVectors:       "CHARACTER_VECTORS",
	TextPathItem:           "TEXT_PATH",
	TextAlignment:          "TEXT_ALIGNMENT",
	FillAreaIndex:          "FILL_AREA_INDEX",
	FillAreaInteriorStyle:  "FILL_AREA_INTERIOR_STYLE",
	FillAreaStyleIndex:     "FILL_AREA_STYLE_INDEX",
	FillAreaColourIndex:    "FILL_AREA_COLOUR_INDEX",
	PatternSize:            "PATTERN_SIZE",
	PatternReferencePoint:  "PATTERN_REFERENCE_POINT",
	AspectSourceFlags:      "ASPECT_SOURCE_FLAGS",
	PickIdentifier:         "PICK_IDENTIFIER",
	PolylineRepresentation: "POLYLINE_REPRESENTATION",
	ClippingRectangle:      "CLIPPING_RECTANGLE",
}
