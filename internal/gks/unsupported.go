package gks

// The entry points below are accepted so that a metafile replays without
// errors, but the driver has no output for them.

// RedrawAllSeg redraws all segments.
func (ws *Workstation) RedrawAllSeg() error {
	ws.log.unsupported("redrawAllSeg")
	return nil
}

// Update updates the workstation.
func (ws *Workstation) Update(regen int) error {
	ws.log.unsupported("update")
	return nil
}

// Defer sets the deferral state.
func (ws *Workstation) Defer(deferral, regen int) error {
	ws.log.unsupported("defer")
	return nil
}

// CloseSeg closes the open segment.
func (ws *Workstation) CloseSeg() error {
	ws.log.unsupported("closeSeg")
	return nil
}

// SetPatSize sets the pattern size.
func (ws *Workstation) SetPatSize(size Point) error {
	ws.log.unsupported("setPatSize")
	return nil
}

// SetPatRefpt sets the pattern reference point.
func (ws *Workstation) SetPatRefpt(ref Point) error {
	ws.log.unsupported("setPatRefpt")
	return nil
}

// SetAsf is the metafile aspect source flag record. The flags that gate
// attribute records are set with SetASFs.
func (ws *Workstation) SetAsf(flags []int) error {
	ws.log.unsupported("setAsf")
	return nil
}

// SetLineMarkRep sets a polyline or polymarker representation.
func (ws *Workstation) SetLineMarkRep(code, index, lineType int, size float64, colour int) error {
	ws.log.unsupported("setLineMarkRep")
	return nil
}

// SetTextRep sets a text representation.
func (ws *Workstation) SetTextRep(index, font, prec int, expansion, spacing float64, colour int) error {
	ws.log.unsupported("setTextRep")
	return nil
}

// SetFillRep sets a fill area representation.
func (ws *Workstation) SetFillRep(index, style, styleIndex, colour int) error {
	ws.log.unsupported("setFillRep")
	return nil
}

// SetPatRep sets a pattern representation.
func (ws *Workstation) SetPatRep(index, dimX, dimY int, colours []int) error {
	ws.log.unsupported("setPatRep")
	return nil
}

// SetColRep is ignored; colours come from the palette given at construction.
func (ws *Workstation) SetColRep(index int, r, g, b float64) error {
	ws.log.unsupported("setColRep")
	return nil
}

// SetLimit sets a window or viewport limit.
func (ws *Workstation) SetLimit(code int, r Rect) error {
	ws.log.unsupported("setLimit")
	return nil
}

// RenameSeg renames a segment.
func (ws *Workstation) RenameSeg(old, name int) error {
	ws.log.unsupported("renameSeg")
	return nil
}

// SetSegTran sets a segment transformation.
func (ws *Workstation) SetSegTran(name int, m [2][3]float64) error {
	ws.log.unsupported("setSegTran")
	return nil
}

// SetSegAttr sets a segment attribute.
func (ws *Workstation) SetSegAttr(name, code, attr int) error {
	ws.log.unsupported("setSegAttr")
	return nil
}

// SetSegVis sets segment visibility.
func (ws *Workstation) SetSegVis(name int, visible bool) error {
	ws.log.unsupported("setSegVis")
	return nil
}

// SetSegHilight sets segment highlighting.
func (ws *Workstation) SetSegHilight(name int, highlight bool) error {
	ws.log.unsupported("setSegHilight")
	return nil
}

// SetSegPri sets segment priority.
func (ws *Workstation) SetSegPri(name int, priority float64) error {
	ws.log.unsupported("setSegPri")
	return nil
}

// SetSegDetect sets segment detectability.
func (ws *Workstation) SetSegDetect(name int, detectable bool) error {
	ws.log.unsupported("setSegDetect")
	return nil
}
