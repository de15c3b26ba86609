package cairo

import (
	"math"
	"sync"
)

// gstate is the part of a Context that Save and Restore push and pop.
type gstate struct {
	source     *Pattern
	lineWidth  float64
	dash       []float64
	dashOffset float64
	matrix     Matrix
	clips      []*Path
	font       FontStyle
	fontSize   float64
}

func defaultGState() gstate {
	return gstate{
		source:    NewSolidPattern(0, 0, 0, 1),
		lineWidth: 2,
		matrix:    IdentityMatrix(),
		font:      FontStyleRegular,
		fontSize:  10,
	}
}

func (g gstate) copy() gstate {
	out := g
	out.dash = append([]float64(nil), g.dash...)
	out.clips = append([]*Path(nil), g.clips...)
	return out
}

// Context is a drawing context bound to a Surface.
// This is the equivalent of cairo_t. Errors are sticky: the first failure
// is kept and reported by Status, and later drawing calls become no-ops.
type Context struct {
	mu        sync.Mutex
	target    *Surface
	state     gstate
	stack     []gstate
	path      *Path
	destroyed bool
	status    error
	tracer    func(Op)
}

// NewContext creates a drawing context for target.
// This is equivalent to cairo_create.
func NewContext(target *Surface) (*Context, error) {
	if target == nil {
		return nil, ErrSurfaceFinished
	}
	if target.isFinished() {
		return nil, ErrSurfaceFinished
	}
	return &Context{
		target: target,
		state:  defaultGState(),
		path:   &Path{},
	}, nil
}

// SetTracer installs fn to be called with every operation issued on the
// context. Passing nil removes the tracer.
func (c *Context) SetTracer(fn func(Op)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracer = fn
}

// Target returns the surface the context draws on.
func (c *Context) Target() *Surface {
	return c.target
}

// Status returns the first error recorded on the context, if any.
// This is equivalent to cairo_status.
func (c *Context) Status() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Destroy releases the context. The target surface is left untouched.
// This is equivalent to cairo_destroy.
func (c *Context) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyed = true
	c.stack = nil
	c.path = &Path{}
}

// IsDestroyed reports whether Destroy has been called.
func (c *Context) IsDestroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// SaveDepth returns the number of unmatched Save calls.
func (c *Context) SaveDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stack)
}

// begin is called by every operation with the lock held. It reports
// whether the operation should run.
func (c *Context) begin(op Op) bool {
	if c.destroyed {
		c.setError(ErrContextDestroyed)
		return false
	}
	if c.tracer != nil {
		c.tracer(op)
	}
	return c.status == nil
}

func (c *Context) setError(err error) {
	if c.status == nil {
		c.status = err
	}
}

// Save pushes a copy of the graphics state.
// This is equivalent to cairo_save.
func (c *Context) Save() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(OpSave) {
		return
	}
	c.stack = append(c.stack, c.state.copy())
}

// Restore pops the graphics state pushed by the matching Save.
// This is equivalent to cairo_restore.
func (c *Context) Restore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(OpRestore) {
		return
	}
	if len(c.stack) == 0 {
		c.setError(ErrInvalidRestore)
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// UserToDevice transforms a user-space point to device space.
// This is equivalent to cairo_user_to_device.
func (c *Context) UserToDevice(x, y float64) (float64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.matrix.TransformPoint(x, y)
}

// Translate modifies the current transformation matrix.
func (c *Context) Translate(tx, ty float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.matrix.Translate(tx, ty)
}

// Scale modifies the current transformation matrix.
func (c *Context) Scale(sx, sy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.matrix.Scale(sx, sy)
}

// Rotate modifies the current transformation matrix.
func (c *Context) Rotate(angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.matrix.Rotate(angle)
}

// Matrix returns the current transformation matrix.
func (c *Context) Matrix() Matrix {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.matrix
}

// MoveTo begins a new subpath.
// This is equivalent to cairo_move_to.
func (c *Context) MoveTo(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(OpMoveTo) {
		return
	}
	dx, dy := c.state.matrix.TransformPoint(x, y)
	c.path.moveTo(Point{X: dx, Y: dy})
}

// LineTo adds a line to the current subpath.
// This is equivalent to cairo_line_to.
func (c *Context) LineTo(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(OpLineTo) {
		return
	}
	dx, dy := c.state.matrix.TransformPoint(x, y)
	c.path.lineTo(Point{X: dx, Y: dy})
}

// ClosePath closes the current subpath.
// This is equivalent to cairo_close_path.
func (c *Context) ClosePath() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(OpClosePath) {
		return
	}
	c.path.closePath()
}

// Rectangle adds a closed rectangle subpath.
// This is equivalent to cairo_rectangle.
func (c *Context) Rectangle(x, y, width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(OpRectangle) {
		return
	}
	m := c.state.matrix
	for i, p := range [4][2]float64{{x, y}, {x + width, y}, {x + width, y + height}, {x, y + height}} {
		dx, dy := m.TransformPoint(p[0], p[1])
		if i == 0 {
			c.path.moveTo(Point{X: dx, Y: dy})
		} else {
			c.path.lineTo(Point{X: dx, Y: dy})
		}
	}
	c.path.closePath()
}

// NewPath clears the current path.
func (c *Context) NewPath() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = &Path{}
}

// CurrentPath returns a copy of the current path.
func (c *Context) CurrentPath() *Path {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path.clone()
}

// Clip intersects the clip region with the current path and clears the path.
// This is equivalent to cairo_clip.
func (c *Context) Clip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(OpClip) {
		return
	}
	c.state.clips = append(c.state.clips, c.path.clone())
	c.path = &Path{}
}

// Stroke strokes the current path and clears it.
// This is equivalent to cairo_stroke.
func (c *Context) Stroke() {
	c.paintPath(OpStroke, false)
}

// StrokePreserve strokes the current path and keeps it.
// This is equivalent to cairo_stroke_preserve.
func (c *Context) StrokePreserve() {
	c.paintPath(OpStrokePreserve, true)
}

// Fill fills the current path and clears it.
// This is equivalent to cairo_fill.
func (c *Context) Fill() {
	c.paintPath(OpFill, false)
}

// FillPreserve fills the current path and keeps it.
// This is equivalent to cairo_fill_preserve.
func (c *Context) FillPreserve() {
	c.paintPath(OpFillPreserve, true)
}

func (c *Context) paintPath(op Op, preserve bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(op) {
		return
	}
	path := c.path
	if !preserve {
		c.path = &Path{}
	} else {
		path = path.clone()
	}
	if path.Empty() {
		return
	}
	p := c.paint()
	var err error
	switch op {
	case OpStroke, OpStrokePreserve:
		err = c.target.stroke(path, p)
	default:
		err = c.target.fill(path, p)
	}
	if err != nil {
		c.setError(err)
	}
}

// paint snapshots the state for a backend call, in device units.
func (c *Context) paint() *paint {
	scale := math.Sqrt(math.Abs(c.state.matrix.XX*c.state.matrix.YY - c.state.matrix.XY*c.state.matrix.YX))
	dash := make([]float64, len(c.state.dash))
	for i, d := range c.state.dash {
		dash[i] = d * scale
	}
	return &paint{
		source:     c.state.source,
		lineWidth:  c.state.lineWidth * scale,
		dash:       dash,
		dashOffset: c.state.dashOffset * scale,
		clips:      c.state.clips,
	}
}

// SetLineWidth sets the stroke width in user units.
// This is equivalent to cairo_set_line_width.
func (c *Context) SetLineWidth(width float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(OpSetLineWidth) {
		return
	}
	c.state.lineWidth = width
}

// LineWidth returns the stroke width in user units.
func (c *Context) LineWidth() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.lineWidth
}

// SetDash sets the dash pattern. An empty dashes slice disables dashing.
// This is equivalent to cairo_set_dash.
func (c *Context) SetDash(dashes []float64, offset float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(OpSetDash) {
		return
	}
	c.state.dash = append([]float64(nil), dashes...)
	c.state.dashOffset = offset
}

// Dash returns the dash pattern and offset.
func (c *Context) Dash() ([]float64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]float64(nil), c.state.dash...), c.state.dashOffset
}

// SetSource sets the paint source.
// This is equivalent to cairo_set_source.
func (c *Context) SetSource(p *Pattern) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(OpSetSource) {
		return
	}
	if p == nil {
		p = NewSolidPattern(0, 0, 0, 1)
	}
	c.state.source = p
}

// SetSourceRGB sets an opaque colour source.
// This is equivalent to cairo_set_source_rgb.
func (c *Context) SetSourceRGB(r, g, b float64) {
	c.SetSource(NewSolidPattern(r, g, b, 1))
}

// SetSourceRGBA sets a translucent colour source.
func (c *Context) SetSourceRGBA(r, g, b, a float64) {
	c.SetSource(NewSolidPattern(r, g, b, a))
}

// Source returns the paint source.
// This is equivalent to cairo_get_source.
func (c *Context) Source() *Pattern {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.source
}

// SelectFontFace selects the font used by ShowText.
func (c *Context) SelectFontFace(style FontStyle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.font = style
}

// SetFontSize sets the font size in user units.
func (c *Context) SetFontSize(size float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.fontSize = size
}

// FontSize returns the font size in user units.
func (c *Context) FontSize() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.fontSize
}

// ShowText draws s with its baseline origin at the current point.
// The text direction follows the rotation of the current transformation matrix.
// This is equivalent to cairo_show_text.
func (c *Context) ShowText(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(OpShowText) {
		return
	}
	at, ok := c.path.CurrentPoint()
	if !ok || s == "" {
		return
	}
	m := c.state.matrix
	scale := math.Sqrt(math.Abs(m.XX*m.YY - m.XY*m.YX))
	run := &textRun{
		at:    at,
		text:  s,
		font:  c.state.font,
		size:  c.state.fontSize * scale,
		angle: math.Atan2(m.YX, m.XX),
	}
	if err := c.target.showText(run, c.paint()); err != nil {
		c.setError(err)
	}
}

// ShowPage emits the current page.
// This is equivalent to cairo_show_page.
func (c *Context) ShowPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.begin(OpShowPage) {
		return
	}
	if err := c.target.showPage(); err != nil {
		c.setError(err)
	}
}
