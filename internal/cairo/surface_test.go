package cairo

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func drawSample(t *testing.T, s *Surface) {
	t.Helper()
	cr, err := NewContext(s)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	cr.SetSourceRGB(1, 0, 0)
	cr.Rectangle(2, 2, 10, 10)
	cr.Fill()
	cr.SetSourceRGB(0, 0, 1)
	cr.SetDash([]float64{4, 4}, 0)
	cr.MoveTo(0, 0)
	cr.LineTo(20, 20)
	cr.Stroke()
	cr.MoveTo(5, 15)
	cr.ShowText("a(b)")
	cr.ShowPage()
	if err := cr.Status(); err != nil {
		t.Fatalf("drawing failed: %v", err)
	}
}

func TestParseSurfaceType(t *testing.T) {
	tests := []struct {
		token   string
		want    SurfaceType
		wantErr bool
	}{
		{"png", SurfaceTypeImage, false},
		{"IMAGE", SurfaceTypeImage, false},
		{"ps", SurfaceTypePS, false},
		{"eps", SurfaceTypePS, false},
		{" pdf ", SurfaceTypePDF, false},
		{"svg", SurfaceTypeSVG, false},
		{"gif", SurfaceTypeImage, true},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseSurfaceType(tt.token)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSurfaceType) {
					t.Errorf("err = %v, want ErrUnknownSurfaceType", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseSurfaceType(%q) = %v, %v; want %v", tt.token, got, err, tt.want)
			}
		})
	}
}

func TestImageSurfaceFillAndPNG(t *testing.T) {
	s := NewImageSurface(20, 20)
	drawSample(t, s)

	c := s.Image().At(10, 4)
	r, _, b, a := c.RGBA()
	if r < 0xc000 || a < 0xc000 || b > 0x4000 {
		t.Errorf("pixel (10,4) = %v, want red", c)
	}

	var buf bytes.Buffer
	if err := s.WriteToPNGStream(&buf); err != nil {
		t.Fatalf("WriteToPNGStream: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 20 {
		t.Errorf("png size = %v, want 20x20", img.Bounds())
	}
	if err := s.Finish(); err != nil {
		t.Errorf("Finish: %v", err)
	}
}

func TestVectorSurfaceDocuments(t *testing.T) {
	tests := []struct {
		typ    SurfaceType
		prefix string
		marks  []string
	}{
		{SurfaceTypePS, "%!PS-Adobe-3.0", []string{"%%Pages: 1", "%%BoundingBox: 0 0 20 20", "rg", "[4 4] 0 d", `(a\(b\)) show`, "%%EOF"}},
		{SurfaceTypePDF, "%PDF-", []string{"%%EOF"}},
		{SurfaceTypeSVG, "<?xml", []string{"<svg", "stroke-dasharray=\"4,4\"", "a(b)", "</svg>"}},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			var buf bytes.Buffer
			s, err := NewSurface(tt.typ, &buf, 20, 20)
			if err != nil {
				t.Fatalf("NewSurface: %v", err)
			}
			drawSample(t, s)
			if err := s.Finish(); err != nil {
				t.Fatalf("Finish: %v", err)
			}
			out := buf.String()
			if !strings.HasPrefix(out, tt.prefix) {
				t.Errorf("document starts with %q, want prefix %q", out[:min(len(out), 20)], tt.prefix)
			}
			for _, m := range tt.marks {
				if !strings.Contains(out, m) {
					t.Errorf("document missing %q", m)
				}
			}
		})
	}
}

func TestEmptyDocumentsAreWellFormed(t *testing.T) {
	for _, typ := range []SurfaceType{SurfaceTypePS, SurfaceTypePDF, SurfaceTypeSVG} {
		t.Run(typ.String(), func(t *testing.T) {
			var buf bytes.Buffer
			s, err := NewSurface(typ, &buf, 100, 50)
			if err != nil {
				t.Fatalf("NewSurface: %v", err)
			}
			if err := s.Finish(); err != nil {
				t.Fatalf("Finish: %v", err)
			}
			if buf.Len() == 0 {
				t.Error("empty document")
			}
		})
	}
}

func TestFinishReportsWriteError(t *testing.T) {
	for _, typ := range []SurfaceType{SurfaceTypePS, SurfaceTypePDF, SurfaceTypeSVG} {
		t.Run(typ.String(), func(t *testing.T) {
			s, err := NewSurface(typ, failWriter{}, 10, 10)
			if err != nil {
				t.Fatalf("NewSurface: %v", err)
			}
			if err := s.Finish(); err == nil {
				t.Error("Finish succeeded on a failing writer")
			}
		})
	}
}

func TestFinishedSurfaceRejectsDrawing(t *testing.T) {
	var buf bytes.Buffer
	s := NewPSSurface(&buf, 10, 10)
	cr, err := NewContext(s)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	if err := s.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	n := buf.Len()
	if err := s.Finish(); err != nil || buf.Len() != n {
		t.Error("second Finish wrote again")
	}
	cr.Rectangle(0, 0, 1, 1)
	cr.Fill()
	if !errors.Is(cr.Status(), ErrSurfaceFinished) {
		t.Errorf("Status = %v, want ErrSurfaceFinished", cr.Status())
	}
}

func TestTypeSpecificCalls(t *testing.T) {
	img := NewImageSurface(4, 4)
	if err := img.SetSize(10, 10); !errors.Is(err, ErrSurfaceTypeMismatch) {
		t.Errorf("SetSize on image: %v", err)
	}
	if err := img.DSCComment("%x"); !errors.Is(err, ErrSurfaceTypeMismatch) {
		t.Errorf("DSCComment on image: %v", err)
	}

	var buf bytes.Buffer
	svgSurface := NewSVGSurface(&buf, 10, 10)
	if err := svgSurface.WriteToPNGStream(&buf); !errors.Is(err, ErrSurfaceTypeMismatch) {
		t.Errorf("WriteToPNGStream on svg: %v", err)
	}
}

func TestPSSetSizeAndComments(t *testing.T) {
	var buf bytes.Buffer
	s := NewPSSurface(&buf, 612, 792)
	if err := s.DSCComment("%%Title: plot"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSize(792, 612); err != nil {
		t.Fatal(err)
	}
	cr, _ := NewContext(s)
	cr.Rectangle(0, 0, 10, 10)
	cr.Fill()
	if err := s.DSCComment("%note"); err != nil {
		t.Fatal(err)
	}
	cr.ShowPage()
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	header := out[:strings.Index(out, "%%EndComments")]
	if !strings.Contains(header, "%%Title: plot") {
		t.Error("header comment not in header")
	}
	if !strings.Contains(out, "<< /PageSize [792 612] >> setpagedevice") {
		t.Error("resized page size missing")
	}
	if strings.Index(out, "%note") < strings.Index(out, "%%Page: 1 1") {
		t.Error("page comment written before the page")
	}
}

func TestPatternTiling(t *testing.T) {
	target := NewImageSurface(10, 10)
	tile := target.CreateSimilar(2, 2)
	tcr, _ := NewContext(tile)
	tcr.Rectangle(0, 0, 1, 1)
	tcr.Fill()
	if len(tile.Ops()) != 1 {
		t.Fatalf("tile recorded %d ops, want 1", len(tile.Ops()))
	}

	p := NewSurfacePattern(tile)
	p.SetExtend(ExtendRepeat)

	_, _, _, a := p.ColorAt(4.5, 4.5)
	if a < 0.75 {
		t.Errorf("alpha at (4.5,4.5) = %v, want opaque", a)
	}
	_, _, _, a = p.ColorAt(5.5, 5.5)
	if a > 0.25 {
		t.Errorf("alpha at (5.5,5.5) = %v, want transparent", a)
	}

	none := NewSurfacePattern(tile)
	if _, _, _, a := none.ColorAt(-1, -1); a != 0 {
		t.Errorf("ExtendNone outside tile alpha = %v, want 0", a)
	}
}

func TestPatternFillOnVectorSurfaces(t *testing.T) {
	for _, typ := range []SurfaceType{SurfaceTypePS, SurfaceTypePDF, SurfaceTypeSVG} {
		t.Run(typ.String(), func(t *testing.T) {
			var buf bytes.Buffer
			s, _ := NewSurface(typ, &buf, 40, 40)
			tile := s.CreateSimilar(4, 4)
			tcr, _ := NewContext(tile)
			tcr.Rectangle(0, 0, 2, 2)
			tcr.Fill()
			p := NewSurfacePattern(tile)
			p.SetExtend(ExtendRepeat)

			cr, _ := NewContext(s)
			cr.SetSource(p)
			cr.Rectangle(5, 5, 20, 20)
			cr.Fill()
			if err := cr.Status(); err != nil {
				t.Fatalf("pattern fill: %v", err)
			}
			if err := s.Finish(); err != nil {
				t.Fatalf("Finish: %v", err)
			}
			out := buf.String()
			switch typ {
			case SurfaceTypePS:
				if !strings.Contains(out, "makepattern setpattern") {
					t.Error("no PostScript pattern")
				}
			case SurfaceTypeSVG:
				if !strings.Contains(out, "<pattern") || !strings.Contains(out, "url(#pat1)") {
					t.Error("no SVG pattern")
				}
			}
		})
	}
}
