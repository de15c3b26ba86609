package cairo

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"codeberg.org/go-pdf/fpdf"
	"github.com/gogpu/gg"
)

// patternRasterScale is the number of raster pixels per point used when a
// tiling pattern is baked into an image for PDF output.
const patternRasterScale = 4

// pdfBackend draws through fpdf. The document origin is top-left in
// points, which matches device space, so paths need no transform.
type pdfBackend struct {
	w             io.Writer
	pdf           *fpdf.Fpdf
	width, height float64
	pageOpen      bool
	images        int
	translate     func(string) string
}

func newPDFBackend(w io.Writer, width, height float64) *pdfBackend {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreator("gkscairo", false)
	return &pdfBackend{
		w:         w,
		pdf:       pdf,
		width:     width,
		height:    height,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (b *pdfBackend) page() {
	if !b.pageOpen {
		b.pdf.AddPage()
		b.pageOpen = true
	}
}

// clip installs each clip path and returns the number of ClipEnd calls
// needed to undo them.
func (b *pdfBackend) clip(clips []*Path) int {
	n := 0
	for _, c := range clips {
		var pts []fpdf.PointType
		if len(c.Subpaths) == 1 {
			for _, pt := range c.Subpaths[0].Points {
				pts = append(pts, fpdf.PointType{X: pt.X, Y: pt.Y})
			}
		} else {
			x0, y0, x1, y1 := c.Bounds()
			pts = []fpdf.PointType{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		}
		if len(pts) < 3 {
			pts = []fpdf.PointType{{X: 0, Y: 0}}
		}
		b.pdf.ClipPolygon(pts, false)
		n++
	}
	return n
}

func (b *pdfBackend) unclip(n int) {
	for i := 0; i < n; i++ {
		b.pdf.ClipEnd()
	}
}

func (b *pdfBackend) path(path *Path) {
	for _, sp := range path.Subpaths {
		if len(sp.Points) == 0 {
			continue
		}
		b.pdf.MoveTo(sp.Points[0].X, sp.Points[0].Y)
		for _, pt := range sp.Points[1:] {
			b.pdf.LineTo(pt.X, pt.Y)
		}
		if sp.Closed {
			b.pdf.ClosePath()
		}
	}
}

func to255(v float64) int {
	return int(math.Round(clamp01(v) * 255))
}

func (b *pdfBackend) color(src *Pattern) (alpha float64) {
	r, g, bl, a := 0.0, 0.0, 0.0, 1.0
	if src != nil {
		r, g, bl, a = src.RGBA()
	}
	b.pdf.SetDrawColor(to255(r), to255(g), to255(bl))
	b.pdf.SetFillColor(to255(r), to255(g), to255(bl))
	b.pdf.SetTextColor(to255(r), to255(g), to255(bl))
	b.pdf.SetAlpha(a, "Normal")
	return a
}

func (b *pdfBackend) fill(path *Path, p *paint) error {
	b.page()
	n := b.clip(p.clips)
	defer b.unclip(n)
	if p.source != nil && p.source.Type() == PatternTypeSurface {
		return b.fillPattern(path, p.source)
	}
	b.color(p.source)
	b.path(path)
	b.pdf.DrawPath("f")
	return b.pdf.Error()
}

// fillPattern bakes the pattern inside path into a PNG and places it over
// the path bounds. fpdf has no tiling pattern support.
func (b *pdfBackend) fillPattern(path *Path, src *Pattern) error {
	x0, y0, x1, y1 := path.Bounds()
	buf, err := patternImage(src, x0, y0, x1, y1, func(dc *gg.Context) error {
		tracePath(dc, path, x0, y0, true)
		return dc.Fill()
	})
	if err != nil || buf == nil {
		return err
	}
	return b.placeImage(buf, x0, y0, x1-x0, y1-y0)
}

// strokePattern strokes path with a surface pattern the same way
// fillPattern fills: rasterized, then placed as an image. The bounds grow
// by the line width to hold the pen.
func (b *pdfBackend) strokePattern(path *Path, p *paint) error {
	pad := math.Max(p.lineWidth, 1)
	x0, y0, x1, y1 := path.Bounds()
	x0, y0, x1, y1 = x0-pad, y0-pad, x1+pad, y1+pad
	buf, err := patternImage(p.source, x0, y0, x1, y1, func(dc *gg.Context) error {
		dc.SetLineWidth(p.lineWidth * patternRasterScale)
		if len(p.dash) > 0 {
			dash := make([]float64, len(p.dash))
			for i, d := range p.dash {
				dash[i] = d * patternRasterScale
			}
			dc.SetDash(dash...)
			dc.SetDashOffset(p.dashOffset * patternRasterScale)
		}
		tracePath(dc, path, x0, y0, false)
		return dc.Stroke()
	})
	if err != nil || buf == nil {
		return err
	}
	return b.placeImage(buf, x0, y0, x1-x0, y1-y0)
}

// patternImage paints src into a PNG covering the device rectangle
// (x0, y0)-(x1, y1) at patternRasterScale. draw builds and paints the path.
// An empty rectangle gives a nil buffer.
func patternImage(src *Pattern, x0, y0, x1, y1 float64, draw func(dc *gg.Context) error) (*bytes.Buffer, error) {
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return nil, nil
	}
	pw := int(math.Ceil(w * patternRasterScale))
	ph := int(math.Ceil(h * patternRasterScale))
	dc := gg.NewContext(pw, ph)
	defer dc.Close()
	dc.SetFillBrush(gg.NewCustomBrush(func(x, y float64) gg.RGBA {
		r, g, bl, a := src.ColorAt(x0+x/patternRasterScale, y0+y/patternRasterScale)
		return gg.RGBA{R: r, G: g, B: bl, A: a}
	}))
	if err := draw(dc); err != nil {
		return nil, fmt.Errorf("pdf pattern paint: %w", err)
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("pdf pattern paint: %w", err)
	}
	return &buf, nil
}

// tracePath replays path on dc, shifted by (x0, y0) and scaled to raster
// pixels. closeAll closes every subpath, as a fill does.
func tracePath(dc *gg.Context, path *Path, x0, y0 float64, closeAll bool) {
	for _, sp := range path.Subpaths {
		if len(sp.Points) == 0 {
			continue
		}
		dc.MoveTo((sp.Points[0].X-x0)*patternRasterScale, (sp.Points[0].Y-y0)*patternRasterScale)
		for _, pt := range sp.Points[1:] {
			dc.LineTo((pt.X-x0)*patternRasterScale, (pt.Y-y0)*patternRasterScale)
		}
		if closeAll || sp.Closed {
			dc.ClosePath()
		}
	}
}

func (b *pdfBackend) placeImage(buf *bytes.Buffer, x, y, w, h float64) error {
	b.images++
	name := fmt.Sprintf("gkspattern%d", b.images)
	opts := fpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}
	b.pdf.RegisterImageOptionsReader(name, opts, buf)
	b.pdf.SetAlpha(1, "Normal")
	b.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return b.pdf.Error()
}

func (b *pdfBackend) stroke(path *Path, p *paint) error {
	b.page()
	n := b.clip(p.clips)
	defer b.unclip(n)
	if p.source != nil && p.source.Type() == PatternTypeSurface {
		return b.strokePattern(path, p)
	}
	b.color(p.source)
	b.pdf.SetLineWidth(p.lineWidth)
	b.pdf.SetDashPattern(p.dash, p.dashOffset)
	b.path(path)
	b.pdf.DrawPath("S")
	return b.pdf.Error()
}

func (b *pdfBackend) showText(run *textRun, p *paint) error {
	b.page()
	n := b.clip(p.clips)
	defer b.unclip(n)
	b.color(p.source)
	family, style := run.font.pdfFont()
	b.pdf.SetFont(family, style, run.size)
	s := run.text
	if b.translate != nil {
		s = b.translate(s)
	}
	if run.angle != 0 {
		b.pdf.TransformBegin()
		b.pdf.TransformRotate(-run.angle*180/math.Pi, run.at.X, run.at.Y)
		b.pdf.Text(run.at.X, run.at.Y, s)
		b.pdf.TransformEnd()
	} else {
		b.pdf.Text(run.at.X, run.at.Y, s)
	}
	return b.pdf.Error()
}

func (b *pdfBackend) showPage() error {
	b.page()
	b.pageOpen = false
	return b.pdf.Error()
}

func (b *pdfBackend) finish() error {
	if b.pdf.PageCount() == 0 {
		b.page()
	}
	if b.w == nil {
		return fmt.Errorf("write pdf: %w", io.ErrClosedPipe)
	}
	if err := b.pdf.Output(b.w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
