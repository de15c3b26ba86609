package cairo

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
)

// imageBackend rasterizes onto a gg context.
type imageBackend struct {
	dc *gg.Context
}

func newImageBackend(width, height int) *imageBackend {
	dc := gg.NewContext(width, height)
	dc.SetFillRule(gg.FillRuleNonZero)
	return &imageBackend{dc: dc}
}

func (b *imageBackend) image() image.Image {
	return b.dc.Image()
}

func (b *imageBackend) encodePNG(w io.Writer) error {
	if err := b.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// brushFor samples a surface pattern for every pixel gg paints.
func brushFor(src *Pattern) gg.Brush {
	return gg.NewCustomBrush(func(x, y float64) gg.RGBA {
		r, g, bl, a := src.ColorAt(x, y)
		return gg.RGBA{R: r, G: g, B: bl, A: a}
	})
}

// begin pushes the gg state and installs the clip and paint of p.
func (b *imageBackend) begin(p *paint) {
	b.dc.Push()
	for _, clip := range p.clips {
		b.appendPath(clip)
		b.dc.Clip()
	}
	if p.source == nil || p.source.Type() == PatternTypeSolid {
		r, g, bl, a := 0.0, 0.0, 0.0, 1.0
		if p.source != nil {
			r, g, bl, a = p.source.RGBA()
		}
		b.dc.SetRGBA(r, g, bl, a)
	} else {
		b.dc.SetFillBrush(brushFor(p.source))
	}
}

func (b *imageBackend) end() {
	b.dc.ClearPath()
	b.dc.Pop()
}

func (b *imageBackend) appendPath(path *Path) {
	b.dc.ClearPath()
	for _, sp := range path.Subpaths {
		if len(sp.Points) == 0 {
			continue
		}
		b.dc.MoveTo(sp.Points[0].X, sp.Points[0].Y)
		for _, pt := range sp.Points[1:] {
			b.dc.LineTo(pt.X, pt.Y)
		}
		if sp.Closed {
			b.dc.ClosePath()
		}
	}
}

func (b *imageBackend) fill(path *Path, p *paint) error {
	b.begin(p)
	defer b.end()
	b.appendPath(path)
	if err := b.dc.Fill(); err != nil {
		return fmt.Errorf("raster fill: %w", err)
	}
	return nil
}

func (b *imageBackend) stroke(path *Path, p *paint) error {
	b.begin(p)
	defer b.end()
	b.dc.SetLineWidth(p.lineWidth)
	if len(p.dash) > 0 {
		b.dc.SetDash(p.dash...)
		b.dc.SetDashOffset(p.dashOffset)
	} else {
		b.dc.ClearDash()
	}
	b.appendPath(path)
	if err := b.dc.Stroke(); err != nil {
		return fmt.Errorf("raster stroke: %w", err)
	}
	return nil
}

// showText draws a text run. The raster path draws horizontally;
// run.angle is honoured only by the vector backends.
func (b *imageBackend) showText(run *textRun, p *paint) error {
	face := fontFace(run.font, run.size)
	if face == nil {
		return fmt.Errorf("raster text: no face for %s", run.font)
	}
	b.begin(p)
	defer b.end()
	b.dc.SetFont(face)
	b.dc.DrawString(run.text, run.at.X, run.at.Y)
	return nil
}

func (b *imageBackend) showPage() error {
	return nil
}

func (b *imageBackend) finish() error {
	return b.dc.Close()
}
