package cairo

import (
	"fmt"
	"image"
	"io"
	"sync"
)

// Surface is a drawing target.
// This is the equivalent of cairo_surface_t.
type Surface struct {
	mu        sync.Mutex
	typ       SurfaceType
	width     float64
	height    float64
	backend   backend
	raster    *imageBackend
	ps        *psBackend
	recording bool
	ops       []DrawOp
	finished  bool
	destroyed bool
}

// NewImageSurface creates a raster surface of width x height pixels.
// This is equivalent to cairo_image_surface_create with CAIRO_FORMAT_ARGB32.
func NewImageSurface(width, height int) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	ib := newImageBackend(width, height)
	return &Surface{
		typ:     SurfaceTypeImage,
		width:   float64(width),
		height:  float64(height),
		backend: ib,
		raster:  ib,
	}
}

// NewPSSurface creates a PostScript surface writing to w.
// Width and height are in points.
// This is equivalent to cairo_ps_surface_create_for_stream.
func NewPSSurface(w io.Writer, width, height float64) *Surface {
	pb := newPSBackend(w, width, height)
	return &Surface{
		typ:     SurfaceTypePS,
		width:   width,
		height:  height,
		backend: pb,
		ps:      pb,
	}
}

// NewPDFSurface creates a PDF surface writing to w.
// Width and height are in points.
// This is equivalent to cairo_pdf_surface_create_for_stream.
func NewPDFSurface(w io.Writer, width, height float64) *Surface {
	return &Surface{
		typ:     SurfaceTypePDF,
		width:   width,
		height:  height,
		backend: newPDFBackend(w, width, height),
	}
}

// NewSVGSurface creates an SVG surface writing to w.
// Width and height are in points.
// This is equivalent to cairo_svg_surface_create_for_stream.
func NewSVGSurface(w io.Writer, width, height float64) *Surface {
	return &Surface{
		typ:     SurfaceTypeSVG,
		width:   width,
		height:  height,
		backend: newSVGBackend(w, width, height),
	}
}

// NewSurface creates a surface of the given type. The image surface is
// sized in pixels and ignores w; vector surfaces are sized in points.
func NewSurface(typ SurfaceType, w io.Writer, width, height float64) (*Surface, error) {
	switch typ {
	case SurfaceTypeImage:
		return NewImageSurface(int(width), int(height)), nil
	case SurfaceTypePS:
		return NewPSSurface(w, width, height), nil
	case SurfaceTypePDF:
		return NewPDFSurface(w, width, height), nil
	case SurfaceTypeSVG:
		return NewSVGSurface(w, width, height), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSurfaceType, int(typ))
	}
}

// CreateSimilar creates a raster surface for use as a pattern tile.
// Paint operations on the new surface are recorded so vector backends
// can replay the tile as native drawing.
// This is equivalent to cairo_surface_create_similar.
func (s *Surface) CreateSimilar(width, height int) *Surface {
	tile := NewImageSurface(width, height)
	tile.recording = true
	return tile
}

// Type returns the surface type.
// This is equivalent to cairo_surface_get_type.
func (s *Surface) Type() SurfaceType {
	return s.typ
}

// Width returns the surface width in device units.
func (s *Surface) Width() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

// Height returns the surface height in device units.
func (s *Surface) Height() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

// Ops returns the paint operations recorded on a CreateSimilar surface.
func (s *Surface) Ops() []DrawOp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DrawOp(nil), s.ops...)
}

// Image returns the pixels of an image surface, or nil for vector surfaces.
func (s *Surface) Image() image.Image {
	if s.raster == nil {
		return nil
	}
	return s.raster.image()
}

func (s *Surface) isFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished || s.destroyed
}

func (s *Surface) record(kind DrawKind, path *Path, p *paint) {
	if !s.recording {
		return
	}
	s.ops = append(s.ops, DrawOp{Kind: kind, Path: path.clone(), Source: p.source, LineWidth: p.lineWidth})
}

func (s *Surface) fill(path *Path, p *paint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || s.destroyed {
		return ErrSurfaceFinished
	}
	s.record(DrawFill, path, p)
	return s.backend.fill(path, p)
}

func (s *Surface) stroke(path *Path, p *paint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || s.destroyed {
		return ErrSurfaceFinished
	}
	s.record(DrawStroke, path, p)
	return s.backend.stroke(path, p)
}

func (s *Surface) showText(run *textRun, p *paint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || s.destroyed {
		return ErrSurfaceFinished
	}
	return s.backend.showText(run, p)
}

func (s *Surface) showPage() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || s.destroyed {
		return ErrSurfaceFinished
	}
	return s.backend.showPage()
}

// Flush completes any pending drawing.
// This is equivalent to cairo_surface_flush. Drawing is applied
// immediately, so Flush has nothing to do.
func (s *Surface) Flush() {}

// Finish writes any pending document output and detaches the surface from
// its writer. Later drawing fails with ErrSurfaceFinished. Calling Finish
// more than once is allowed; only the first call writes.
// This is equivalent to cairo_surface_finish.
func (s *Surface) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return nil
	}
	s.finished = true
	return s.backend.finish()
}

// Destroy finishes the surface, discarding any error.
// This is equivalent to cairo_surface_destroy.
func (s *Surface) Destroy() {
	_ = s.Finish()
	s.mu.Lock()
	s.destroyed = true
	s.mu.Unlock()
}

// WriteToPNGStream encodes an image surface as PNG to w.
// This is equivalent to cairo_surface_write_to_png_stream.
func (s *Surface) WriteToPNGStream(w io.Writer) error {
	if s.raster == nil {
		return fmt.Errorf("%w: write_to_png on %s surface", ErrSurfaceTypeMismatch, s.typ)
	}
	return s.raster.encodePNG(w)
}

// SetSize changes the page size of a PostScript surface. The size applies
// from the current page on.
// This is equivalent to cairo_ps_surface_set_size.
func (s *Surface) SetSize(width, height float64) error {
	if s.ps == nil {
		return fmt.Errorf("%w: set_size on %s surface", ErrSurfaceTypeMismatch, s.typ)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.ps.setSize(width, height)
	return nil
}

// DSCComment emits a DSC comment into a PostScript surface.
// This is equivalent to cairo_ps_surface_dsc_comment.
func (s *Surface) DSCComment(comment string) error {
	if s.ps == nil {
		return fmt.Errorf("%w: dsc_comment on %s surface", ErrSurfaceTypeMismatch, s.typ)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ps.dscComment(comment)
	return nil
}
