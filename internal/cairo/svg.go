package cairo

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// errWriter keeps the first write error, since svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// svgBackend collects definitions and drawing into separate buffers and
// assembles the document in finish. An SVG document has a single canvas,
// so showPage does not start a new one.
type svgBackend struct {
	w             io.Writer
	width, height float64
	defs          bytes.Buffer
	body          bytes.Buffer
	defCanvas     *svg.SVG
	canvas        *svg.SVG
	clipIDs       map[*Path]string
	patternIDs    map[*Pattern]string
	pages         int
}

func newSVGBackend(w io.Writer, width, height float64) *svgBackend {
	b := &svgBackend{
		w:          w,
		width:      width,
		height:     height,
		clipIDs:    make(map[*Path]string),
		patternIDs: make(map[*Pattern]string),
	}
	b.defCanvas = svg.New(&b.defs)
	b.canvas = svg.New(&b.body)
	return b
}

func svgNum(v float64) string {
	return psNum(v)
}

func svgPathData(path *Path) string {
	var sb strings.Builder
	for _, sp := range path.Subpaths {
		if len(sp.Points) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "M%s %s", svgNum(sp.Points[0].X), svgNum(sp.Points[0].Y))
		for _, pt := range sp.Points[1:] {
			fmt.Fprintf(&sb, " L%s %s", svgNum(pt.X), svgNum(pt.Y))
		}
		if sp.Closed {
			sb.WriteString(" Z")
		}
		sb.WriteByte(' ')
	}
	return strings.TrimSpace(sb.String())
}

func svgColor(src *Pattern) (rgb string, opacity float64) {
	r, g, bl, a := 0.0, 0.0, 0.0, 1.0
	if src != nil {
		r, g, bl, a = src.RGBA()
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", to255(r), to255(g), to255(bl)), a
}

// paintRef returns the value of a fill or stroke attribute for src,
// defining a tiling pattern on first use.
func (b *svgBackend) paintRef(src *Pattern) []string {
	if src == nil || src.Type() != PatternTypeSurface || src.Surface() == nil {
		rgb, a := svgColor(src)
		attrs := []string{rgb}
		if a < 1 {
			attrs = append(attrs, svgNum(a))
		}
		return attrs
	}
	if id, ok := b.patternIDs[src]; ok {
		return []string{"url(#" + id + ")"}
	}
	id := fmt.Sprintf("pat%d", len(b.patternIDs)+1)
	b.patternIDs[src] = id
	tile := src.Surface()
	inv := src.Matrix()
	if !inv.Invert() {
		inv = IdentityMatrix()
	}
	transform := fmt.Sprintf(`patternTransform="matrix(%s %s %s %s %s %s)"`,
		svgNum(inv.XX), svgNum(inv.YX), svgNum(inv.XY), svgNum(inv.YY), svgNum(inv.X0), svgNum(inv.Y0))
	b.defCanvas.Pattern(id, 0, 0, int(tile.Width()), int(tile.Height()), "user", transform)
	for _, op := range tile.Ops() {
		rgb, _ := svgColor(op.Source)
		d := svgPathData(op.Path)
		if op.Kind == DrawStroke {
			b.defCanvas.Path(d, `fill="none"`, fmt.Sprintf(`stroke="%s"`, rgb),
				fmt.Sprintf(`stroke-width="%s"`, svgNum(op.LineWidth)))
		} else {
			b.defCanvas.Path(d, fmt.Sprintf(`fill="%s"`, rgb))
		}
	}
	b.defCanvas.PatternEnd()
	return []string{"url(#" + id + ")"}
}

// openClips wraps following output in one group per clip path and returns
// the number of groups to close.
func (b *svgBackend) openClips(clips []*Path) int {
	for _, c := range clips {
		id, ok := b.clipIDs[c]
		if !ok {
			id = fmt.Sprintf("clip%d", len(b.clipIDs)+1)
			b.clipIDs[c] = id
			b.defCanvas.ClipPath(fmt.Sprintf(`id="%s"`, id))
			b.defCanvas.Path(svgPathData(c))
			b.defCanvas.ClipEnd()
		}
		b.canvas.Group(fmt.Sprintf(`clip-path="url(#%s)"`, id))
	}
	return len(clips)
}

func (b *svgBackend) closeClips(n int) {
	for i := 0; i < n; i++ {
		b.canvas.Gend()
	}
}

func (b *svgBackend) fill(path *Path, p *paint) error {
	n := b.openClips(p.clips)
	defer b.closeClips(n)
	ref := b.paintRef(p.source)
	attrs := []string{fmt.Sprintf(`fill="%s"`, ref[0]), `fill-rule="nonzero"`, `stroke="none"`}
	if len(ref) > 1 {
		attrs = append(attrs, fmt.Sprintf(`fill-opacity="%s"`, ref[1]))
	}
	b.canvas.Path(svgPathData(path), attrs...)
	return nil
}

func (b *svgBackend) stroke(path *Path, p *paint) error {
	n := b.openClips(p.clips)
	defer b.closeClips(n)
	ref := b.paintRef(p.source)
	attrs := []string{
		`fill="none"`,
		fmt.Sprintf(`stroke="%s"`, ref[0]),
		fmt.Sprintf(`stroke-width="%s"`, svgNum(p.lineWidth)),
	}
	if len(ref) > 1 {
		attrs = append(attrs, fmt.Sprintf(`stroke-opacity="%s"`, ref[1]))
	}
	if len(p.dash) > 0 {
		parts := make([]string, len(p.dash))
		for i, d := range p.dash {
			parts[i] = svgNum(d)
		}
		attrs = append(attrs,
			fmt.Sprintf(`stroke-dasharray="%s"`, strings.Join(parts, ",")),
			fmt.Sprintf(`stroke-dashoffset="%s"`, svgNum(p.dashOffset)))
	}
	b.canvas.Path(svgPathData(path), attrs...)
	return nil
}

func (b *svgBackend) showText(run *textRun, p *paint) error {
	n := b.openClips(p.clips)
	defer b.closeClips(n)
	rgb, a := svgColor(p.source)
	x, y := int(math.Round(run.at.X)), int(math.Round(run.at.Y))
	attrs := append([]string{
		fmt.Sprintf(`fill="%s"`, rgb),
		fmt.Sprintf(`font-size="%s"`, svgNum(run.size)),
	}, run.font.svgAttrs()...)
	if a < 1 {
		attrs = append(attrs, fmt.Sprintf(`fill-opacity="%s"`, svgNum(a)))
	}
	if run.angle != 0 {
		attrs = append(attrs, fmt.Sprintf(`transform="rotate(%s %d %d)"`, svgNum(run.angle*180/math.Pi), x, y))
	}
	b.canvas.Text(x, y, run.text, attrs...)
	return nil
}

func (b *svgBackend) showPage() error {
	b.pages++
	return nil
}

func (b *svgBackend) finish() error {
	if b.w == nil {
		return fmt.Errorf("write svg: %w", io.ErrClosedPipe)
	}
	ew := &errWriter{w: b.w}
	doc := svg.New(ew)
	doc.Start(int(math.Ceil(b.width)), int(math.Ceil(b.height)),
		fmt.Sprintf(`viewBox="0 0 %s %s"`, svgNum(b.width), svgNum(b.height)))
	doc.Title("gkscairo")
	if b.defs.Len() > 0 {
		doc.Def()
		_, _ = ew.Write(b.defs.Bytes())
		doc.DefEnd()
	}
	_, _ = ew.Write(b.body.Bytes())
	doc.End()
	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}
