package cairo

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

type psPage struct {
	width, height float64
	body          bytes.Buffer
}

// psBackend writes DSC-conforming Level 2 PostScript. Pages are buffered
// and the document is written in one piece by finish, because the header
// needs the page count and bounding box.
type psBackend struct {
	w             io.Writer
	width, height float64
	header        []string
	pages         []*psPage
	cur           *psPage
}

func newPSBackend(w io.Writer, width, height float64) *psBackend {
	return &psBackend{w: w, width: width, height: height}
}

func (b *psBackend) page() *psPage {
	if b.cur == nil {
		b.cur = &psPage{width: b.width, height: b.height}
	}
	return b.cur
}

func (b *psBackend) setSize(width, height float64) {
	b.width, b.height = width, height
	if b.cur != nil {
		b.cur.width, b.cur.height = width, height
	}
}

// dscComment adds comment to the document header until the first page is
// started, and to the current page after that.
func (b *psBackend) dscComment(comment string) {
	comment = strings.TrimRight(comment, "\r\n")
	if b.cur == nil && len(b.pages) == 0 {
		b.header = append(b.header, comment)
		return
	}
	pg := b.page()
	pg.body.WriteString(comment)
	pg.body.WriteByte('\n')
}

func psNum(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func psPath(buf *bytes.Buffer, path *Path) {
	for _, sp := range path.Subpaths {
		if len(sp.Points) == 0 {
			continue
		}
		fmt.Fprintf(buf, "%s %s m\n", psNum(sp.Points[0].X), psNum(sp.Points[0].Y))
		for _, pt := range sp.Points[1:] {
			fmt.Fprintf(buf, "%s %s l\n", psNum(pt.X), psNum(pt.Y))
		}
		if sp.Closed {
			buf.WriteString("h\n")
		}
	}
}

func psColor(buf *bytes.Buffer, src *Pattern) {
	r, g, bl, _ := src.RGBA()
	fmt.Fprintf(buf, "%s %s %s rg\n", psNum(r), psNum(g), psNum(bl))
}

// psSource sets the current colour or tiling pattern.
func psSource(buf *bytes.Buffer, src *Pattern) {
	if src == nil {
		buf.WriteString("0 0 0 rg\n")
		return
	}
	if src.Type() != PatternTypeSurface || src.Surface() == nil {
		psColor(buf, src)
		return
	}
	tile := src.Surface()
	tw, th := tile.Width(), tile.Height()
	inv := src.Matrix()
	if !inv.Invert() {
		inv = IdentityMatrix()
	}
	fmt.Fprintf(buf, "<< /PatternType 1 /PaintType 1 /TilingType 1 /BBox [0 0 %s %s] /XStep %s /YStep %s\n",
		psNum(tw), psNum(th), psNum(tw), psNum(th))
	buf.WriteString("/PaintProc { pop\n")
	for _, op := range tile.Ops() {
		buf.WriteString("gsave\n")
		if op.Source != nil {
			psColor(buf, op.Source)
		}
		psPath(buf, op.Path)
		if op.Kind == DrawStroke {
			fmt.Fprintf(buf, "%s w S\n", psNum(op.LineWidth))
		} else {
			buf.WriteString("f\n")
		}
		buf.WriteString("grestore\n")
	}
	buf.WriteString("} >>\n")
	fmt.Fprintf(buf, "[%s %s %s %s %s %s] makepattern setpattern\n",
		psNum(inv.XX), psNum(inv.YX), psNum(inv.XY), psNum(inv.YY), psNum(inv.X0), psNum(inv.Y0))
}

func psClips(buf *bytes.Buffer, clips []*Path) {
	for _, c := range clips {
		psPath(buf, c)
		buf.WriteString("W n\n")
	}
}

func (b *psBackend) fill(path *Path, p *paint) error {
	buf := &b.page().body
	buf.WriteString("q\n")
	psClips(buf, p.clips)
	psSource(buf, p.source)
	psPath(buf, path)
	buf.WriteString("f\nQ\n")
	return nil
}

func (b *psBackend) stroke(path *Path, p *paint) error {
	buf := &b.page().body
	buf.WriteString("q\n")
	psClips(buf, p.clips)
	psSource(buf, p.source)
	fmt.Fprintf(buf, "%s w\n", psNum(p.lineWidth))
	if len(p.dash) > 0 {
		parts := make([]string, len(p.dash))
		for i, d := range p.dash {
			parts[i] = psNum(d)
		}
		fmt.Fprintf(buf, "[%s] %s d\n", strings.Join(parts, " "), psNum(p.dashOffset))
	}
	psPath(buf, path)
	buf.WriteString("S\nQ\n")
	return nil
}

// psString escapes s as a PostScript string literal.
func psString(s string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, r := range s {
		switch {
		case r == '(' || r == ')' || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r >= 0x20 && r < 0x7f:
			sb.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&sb, "\\%03o", r)
		default:
			sb.WriteByte('?')
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

func (b *psBackend) showText(run *textRun, p *paint) error {
	buf := &b.page().body
	buf.WriteString("q\n")
	psClips(buf, p.clips)
	if p.source != nil {
		psColor(buf, p.source)
	}
	fmt.Fprintf(buf, "/%s findfont %s scalefont setfont\n", run.font.postScriptName(), psNum(run.size))
	fmt.Fprintf(buf, "%s %s translate %s rotate 1 -1 scale\n",
		psNum(run.at.X), psNum(run.at.Y), psNum(run.angle*180/math.Pi))
	fmt.Fprintf(buf, "0 0 m %s show\nQ\n", psString(run.text))
	return nil
}

func (b *psBackend) showPage() error {
	b.pages = append(b.pages, b.page())
	b.cur = nil
	return nil
}

const psProlog = `%%BeginProlog
/q { gsave } bind def
/Q { grestore } bind def
/m { moveto } bind def
/l { lineto } bind def
/h { closepath } bind def
/f { fill } bind def
/S { stroke } bind def
/w { setlinewidth } bind def
/d { setdash } bind def
/W { clip } bind def
/n { newpath } bind def
/rg { setrgbcolor } bind def
%%EndProlog
`

func (b *psBackend) finish() error {
	if b.cur != nil {
		b.pages = append(b.pages, b.cur)
		b.cur = nil
	}
	if len(b.pages) == 0 {
		b.pages = append(b.pages, &psPage{width: b.width, height: b.height})
	}
	var bbW, bbH float64
	for _, pg := range b.pages {
		bbW = math.Max(bbW, pg.width)
		bbH = math.Max(bbH, pg.height)
	}

	var out bytes.Buffer
	out.WriteString("%!PS-Adobe-3.0\n")
	out.WriteString("%%Creator: gkscairo\n")
	fmt.Fprintf(&out, "%%%%Pages: %d\n", len(b.pages))
	fmt.Fprintf(&out, "%%%%BoundingBox: 0 0 %d %d\n", int(math.Ceil(bbW)), int(math.Ceil(bbH)))
	out.WriteString("%%DocumentData: Clean7Bit\n")
	out.WriteString("%%LanguageLevel: 2\n")
	for _, c := range b.header {
		out.WriteString(c)
		out.WriteByte('\n')
	}
	out.WriteString("%%EndComments\n")
	out.WriteString(psProlog)
	for i, pg := range b.pages {
		fmt.Fprintf(&out, "%%%%Page: %d %d\n", i+1, i+1)
		fmt.Fprintf(&out, "%%%%PageBoundingBox: 0 0 %d %d\n", int(math.Ceil(pg.width)), int(math.Ceil(pg.height)))
		out.WriteString("%%BeginPageSetup\n")
		fmt.Fprintf(&out, "<< /PageSize [%s %s] >> setpagedevice\n", psNum(pg.width), psNum(pg.height))
		out.WriteString("%%EndPageSetup\n")
		fmt.Fprintf(&out, "q [1 0 0 -1 0 %s] concat\n", psNum(pg.height))
		out.Write(pg.body.Bytes())
		out.WriteString("Q\nshowpage\n")
	}
	out.WriteString("%%Trailer\n%%EOF\n")

	if b.w == nil {
		return fmt.Errorf("write postscript: %w", io.ErrClosedPipe)
	}
	if _, err := b.w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("write postscript: %w", err)
	}
	return nil
}
