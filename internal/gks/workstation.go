// Package gks replays GKS metafile items onto Cairo-style surfaces.
//
// A Workstation owns one output surface between Open and Close. Attribute
// setters update its GraphicsState and drawing calls read that state to
// build and paint device space paths. Every drawing entry point is a no-op
// while the workstation is closed.
package gks

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/opd-ai/go-gkscairo/internal/cairo"
	"github.com/opd-ai/go-gkscairo/internal/hatch"
)

// Default page sizes in device units.
const (
	PageShort  = 612
	PageLong   = 792
	ImageShort = 600
	ImageLong  = 800

	// maxMessage bounds the length of a PostScript DSC comment.
	maxMessage = 255
)

// Workstation is one output workstation. It is not safe for concurrent
// use; callers that share it coordinate through Lock and Unlock.
type Workstation struct {
	mu sync.Mutex

	log          msgLog
	palette      *Palette
	orientation  Orientation
	width        float64
	height       float64
	logo         Logo
	textHeight   float64
	asf          ASFs
	bundles      map[int]LineBundle
	buildPattern hatch.Builder
	tracer       func(cairo.Op)

	device  cairo.SurfaceType
	out     io.Writer
	surface *cairo.Surface
	cr      *cairo.Context
	mapper  Mapper
	state   GraphicsState
}

// Option configures a Workstation.
type Option func(*Workstation)

// WithLogger routes driver messages to l, filtered by mask.
func WithLogger(l Logger, mask LogMask) Option {
	return func(ws *Workstation) {
		if l != nil {
			ws.log.logger = l
		}
		ws.log.mask = mask
	}
}

// WithPalette replaces the default colour table.
func WithPalette(p *Palette) Option {
	return func(ws *Workstation) {
		if p != nil {
			ws.palette = p
		}
	}
}

// WithOrientation sets the page orientation.
func WithOrientation(o Orientation) Option {
	return func(ws *Workstation) { ws.orientation = o }
}

// WithSize overrides the device size. Zero values keep the default for
// the device type and orientation.
func WithSize(width, height float64) Option {
	return func(ws *Workstation) {
		ws.width, ws.height = width, height
	}
}

// WithLogo sets the close time mark.
func WithLogo(l Logo) Option {
	return func(ws *Workstation) { ws.logo = l }
}

// WithTextHeight sets the character height, in normalized units, that
// Open starts each page with.
func WithTextHeight(h float64) Option {
	return func(ws *Workstation) {
		if h > 0 {
			ws.textHeight = h
		}
	}
}

// WithASF sets the aspect source flags.
func WithASF(a ASFs) Option {
	return func(ws *Workstation) { ws.asf = a }
}

// WithBundles sets the polyline bundle table.
func WithBundles(b map[int]LineBundle) Option {
	return func(ws *Workstation) {
		if b != nil {
			ws.bundles = b
		}
	}
}

// WithPatternBuilder replaces the fill pattern synthesizer.
func WithPatternBuilder(b hatch.Builder) Option {
	return func(ws *Workstation) {
		if b != nil {
			ws.buildPattern = b
		}
	}
}

// WithTracer installs fn on every drawing context the workstation creates.
func WithTracer(fn func(cairo.Op)) Option {
	return func(ws *Workstation) { ws.tracer = fn }
}

// NewWorkstation creates a closed workstation.
func NewWorkstation(opts ...Option) *Workstation {
	ws := &Workstation{
		log:          msgLog{logger: defaultLogger(), mask: LogMaskFromEnv()},
		palette:      DefaultPalette(),
		logo:         DefaultLogo(),
		asf:          DefaultASFs(),
		bundles:      DefaultLineBundles(),
		buildPattern: hatch.Build,
		state:        DefaultGraphicsState(),
	}
	for _, opt := range opts {
		opt(ws)
	}
	return ws
}

// Lock acquires the workstation lock. Driver methods do not take it; it
// lets a consumer exclude whole drawing batches.
func (ws *Workstation) Lock() { ws.mu.Lock() }

// Unlock releases the workstation lock.
func (ws *Workstation) Unlock() { ws.mu.Unlock() }

// IsOpen reports whether the workstation has a live surface.
func (ws *Workstation) IsOpen() bool { return ws.cr != nil }

// Device returns the surface type of the open workstation.
func (ws *Workstation) Device() cairo.SurfaceType { return ws.device }

// State returns a copy of the graphics state.
func (ws *Workstation) State() GraphicsState {
	st := ws.state
	if st.Clip != nil {
		c := *st.Clip
		st.Clip = &c
	}
	return st
}

// Mapper returns the coordinate mapper of the open surface.
func (ws *Workstation) Mapper() Mapper { return ws.mapper }

// Context returns the live drawing context, or nil when closed.
func (ws *Workstation) Context() *cairo.Context { return ws.cr }

// Surface returns the output surface, or nil when closed.
func (ws *Workstation) Surface() *cairo.Surface { return ws.surface }

// Palette returns the colour table.
func (ws *Workstation) Palette() *Palette { return ws.palette }

// ASFs returns the aspect source flags.
func (ws *Workstation) ASFs() ASFs { return ws.asf }

// SetASFs replaces the aspect source flags.
func (ws *Workstation) SetASFs(a ASFs) { ws.asf = a }

func (ws *Workstation) pageSize(device cairo.SurfaceType) (float64, float64) {
	if ws.width > 0 && ws.height > 0 {
		return ws.width, ws.height
	}
	short, long := float64(PageShort), float64(PageLong)
	if device == cairo.SurfaceTypeImage {
		short, long = ImageShort, ImageLong
	}
	if ws.orientation == Landscape {
		return long, short
	}
	return short, long
}

// OpenDevice parses a device token (png, ps, pdf, svg) and opens it.
func (ws *Workstation) OpenDevice(token string, w io.Writer) error {
	device, err := cairo.ParseSurfaceType(token)
	if err != nil {
		ws.log.warn("CAIROmoOpen: Unknown surface type %q", token)
		return fmt.Errorf("%w: %q", ErrUnsupportedDevice, token)
	}
	return ws.Open(device, w)
}

// Open creates the output surface for device bound to w. The drawing
// context starts with a single Save so that SetClip can replace the clip
// with one Restore/Save pair. The graphics state is reset and the source
// is primed with colour 1.
func (ws *Workstation) Open(device cairo.SurfaceType, w io.Writer) error {
	if ws.surface != nil {
		return ErrAlreadyOpen
	}
	if w == nil {
		return ErrNoOutput
	}
	width, height := ws.pageSize(device)
	surface, err := cairo.NewSurface(device, w, width, height)
	if err != nil {
		ws.log.warn("CAIROmoOpen: Unknown surface type %d", int(device))
		return fmt.Errorf("%w: %v", ErrUnsupportedDevice, err)
	}
	cr, err := ws.newContext(surface)
	if err != nil {
		return err
	}

	ws.device = device
	ws.out = w
	ws.surface = surface
	ws.cr = cr
	ws.mapper = Mapper{Orientation: ws.orientation, Width: surface.Width(), Height: surface.Height()}
	ws.state = DefaultGraphicsState()
	if ws.textHeight > 0 {
		ws.state.TextHeight = ws.textHeight
	}
	ws.cr.SetSourceRGBA(ws.palette.RGBA(1))
	ws.log.info("CAIROmoOpen: %s surface %gx%g", device, ws.mapper.Width, ws.mapper.Height)
	return nil
}

func (ws *Workstation) newContext(surface *cairo.Surface) (*cairo.Context, error) {
	cr, err := cairo.NewContext(surface)
	if err != nil {
		return nil, err
	}
	cr.SetTracer(ws.tracer)
	cr.Save()
	return cr, nil
}

// paintState is the part of the context that survives SetClip and Clear.
type paintState struct {
	source *cairo.Pattern
	width  float64
	dash   []float64
	offset float64
}

func capturePaint(cr *cairo.Context) paintState {
	dash, offset := cr.Dash()
	return paintState{
		source: cr.Source(),
		width:  cr.LineWidth(),
		dash:   dash,
		offset: offset,
	}
}

func (p paintState) apply(cr *cairo.Context) {
	cr.SetSource(p.source)
	cr.SetLineWidth(p.width)
	cr.SetDash(p.dash, p.offset)
}

// Clear discards the drawing context and starts a fresh one on the same
// surface. The graphics state, paint settings and clip carry over.
func (ws *Workstation) Clear() error {
	if ws.cr == nil {
		return nil
	}
	paint := capturePaint(ws.cr)
	ws.cr.Destroy()
	cr, err := ws.newContext(ws.surface)
	if err != nil {
		ws.cr = nil
		return err
	}
	ws.cr = cr
	paint.apply(cr)
	if ws.state.Clip != nil {
		ws.applyClip(*ws.state.Clip)
	}
	return nil
}

// SetClip replaces the clip with r. Clip scopes never nest: the previous
// clip is dropped by restoring the single saved state.
func (ws *Workstation) SetClip(r Rect) error {
	ws.state.Clip = &r
	if ws.cr == nil {
		return nil
	}
	ws.applyClip(r)
	return nil
}

func (ws *Workstation) applyClip(r Rect) {
	cr := ws.cr
	paint := capturePaint(cr)
	x1, y1 := ws.mapper.Map(cr.Matrix(), r.XMin, r.YMin)
	x2, y2 := ws.mapper.Map(cr.Matrix(), r.XMax, r.YMax)
	cr.Restore()
	cr.Save()
	paint.apply(cr)
	cr.Rectangle(x1, y1, x2-x1, y2-y1)
	cr.Clip()
}

// Resize changes the page size. Only PostScript surfaces support it.
func (ws *Workstation) Resize(width, height float64) {
	if ws.surface == nil {
		return
	}
	if err := ws.surface.SetSize(width, height); err != nil {
		ws.log.warn("CAIROresize: Don't support this feature for this surface type")
		return
	}
	ws.mapper.Width, ws.mapper.Height = width, height
}

// Message writes s as a document comment on PostScript surfaces.
func (ws *Workstation) Message(s string) error {
	if ws.surface == nil {
		return nil
	}
	if ws.device != cairo.SurfaceTypePS {
		ws.log.warn("CAIROmessage: Don't support this feature for this surface type")
		return nil
	}
	comment := "%" + s
	if len(comment) > maxMessage {
		comment = comment[:maxMessage]
	}
	if err := ws.surface.DSCComment(comment); err != nil {
		ws.log.err("CAIROmessage: %v", err)
	}
	return nil
}

// Close draws the logo, emits the page and writes the document. Image
// surfaces are encoded as PNG. When the writer is an io.Closer it is
// closed. Every failure is reported wrapped in ErrClose.
func (ws *Workstation) Close() error {
	if ws.surface == nil {
		return nil
	}
	var errs []error
	cr, surface := ws.cr, ws.surface
	if cr != nil {
		ws.drawLogo()
		cr.ShowPage()
		if ws.device == cairo.SurfaceTypeImage {
			if err := surface.WriteToPNGStream(ws.out); err != nil {
				errs = append(errs, err)
			}
		}
		if err := cr.Status(); err != nil {
			errs = append(errs, err)
		}
		cr.Destroy()
	}
	surface.Flush()
	if err := surface.Finish(); err != nil {
		errs = append(errs, err)
	}
	surface.Destroy()
	if c, ok := ws.out.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	ws.cr, ws.surface, ws.out = nil, nil, nil
	if len(errs) > 0 {
		err := fmt.Errorf("%w: %w", ErrClose, errors.Join(errs...))
		ws.log.err("CAIROmoClose: %v", err)
		return err
	}
	return nil
}
