package cairo

import "math"

// Point is a device-space coordinate.
type Point struct {
	X, Y float64
}

// Subpath is a run of connected points started by a move_to.
type Subpath struct {
	Points []Point
	Closed bool
}

// Path is the current path of a Context, held in device space.
// Backends consume it when painting.
type Path struct {
	Subpaths []Subpath
}

func (p *Path) moveTo(pt Point) {
	p.Subpaths = append(p.Subpaths, Subpath{Points: []Point{pt}})
}

func (p *Path) lineTo(pt Point) {
	if len(p.Subpaths) == 0 {
		// cairo_line_to without a current point behaves as cairo_move_to
		p.moveTo(pt)
		return
	}
	last := &p.Subpaths[len(p.Subpaths)-1]
	if last.Closed {
		// drawing after close_path starts a new subpath at the closed point
		start := last.Points[0]
		p.Subpaths = append(p.Subpaths, Subpath{Points: []Point{start, pt}})
		return
	}
	last.Points = append(last.Points, pt)
}

func (p *Path) closePath() {
	if len(p.Subpaths) == 0 {
		return
	}
	p.Subpaths[len(p.Subpaths)-1].Closed = true
}

// Empty reports whether the path holds no drawable segment.
func (p *Path) Empty() bool {
	for _, sp := range p.Subpaths {
		if len(sp.Points) > 1 {
			return false
		}
	}
	return true
}

// CurrentPoint returns the last point of the path.
func (p *Path) CurrentPoint() (Point, bool) {
	if len(p.Subpaths) == 0 {
		return Point{}, false
	}
	last := p.Subpaths[len(p.Subpaths)-1]
	if last.Closed {
		return last.Points[0], true
	}
	return last.Points[len(last.Points)-1], true
}

// Bounds returns the bounding box of every point in the path.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, sp := range p.Subpaths {
		for _, pt := range sp.Points {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX, maxY
}

// clone returns a deep copy, used when a path is kept past the paint call.
func (p *Path) clone() *Path {
	out := &Path{Subpaths: make([]Subpath, len(p.Subpaths))}
	for i, sp := range p.Subpaths {
		out.Subpaths[i] = Subpath{
			Points: append([]Point(nil), sp.Points...),
			Closed: sp.Closed,
		}
	}
	return out
}
