package cairo

import (
	"errors"
	"testing"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	cr, err := NewContext(NewImageSurface(20, 20))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return cr
}

func TestNewContextDefaults(t *testing.T) {
	cr := newTestContext(t)
	if cr.LineWidth() != 2 {
		t.Errorf("default line width = %v, want 2", cr.LineWidth())
	}
	r, g, b, a := cr.Source().RGBA()
	if r != 0 || g != 0 || b != 0 || a != 1 {
		t.Errorf("default source = (%v,%v,%v,%v), want opaque black", r, g, b, a)
	}
	if cr.SaveDepth() != 0 {
		t.Errorf("SaveDepth = %d, want 0", cr.SaveDepth())
	}
	if cr.Status() != nil {
		t.Errorf("Status = %v, want nil", cr.Status())
	}
}

func TestNewContextFinishedSurface(t *testing.T) {
	s := NewImageSurface(4, 4)
	s.Destroy()
	if _, err := NewContext(s); !errors.Is(err, ErrSurfaceFinished) {
		t.Errorf("NewContext on destroyed surface: err = %v, want ErrSurfaceFinished", err)
	}
}

func TestContextSaveRestore(t *testing.T) {
	cr := newTestContext(t)
	cr.SetLineWidth(5)
	cr.SetDash([]float64{4, 4}, 0)
	cr.Save()
	cr.SetLineWidth(1)
	cr.SetDash(nil, 0)
	cr.SetSourceRGB(1, 0, 0)
	cr.Restore()

	if cr.LineWidth() != 5 {
		t.Errorf("line width after restore = %v, want 5", cr.LineWidth())
	}
	dash, _ := cr.Dash()
	if len(dash) != 2 {
		t.Errorf("dash after restore = %v, want [4 4]", dash)
	}
	r, _, _, _ := cr.Source().RGBA()
	if r != 0 {
		t.Errorf("source after restore has red %v, want 0", r)
	}
}

func TestContextUnmatchedRestore(t *testing.T) {
	cr := newTestContext(t)
	cr.Restore()
	if !errors.Is(cr.Status(), ErrInvalidRestore) {
		t.Fatalf("Status = %v, want ErrInvalidRestore", cr.Status())
	}

	// errors are sticky and later drawing is skipped
	var ops []Op
	cr.SetTracer(func(op Op) { ops = append(ops, op) })
	cr.Rectangle(0, 0, 5, 5)
	cr.Fill()
	if len(ops) != 2 {
		t.Errorf("tracer saw %v, want rectangle and fill", ops)
	}
	if !cr.CurrentPath().Empty() {
		t.Error("path was built after an error")
	}
}

func TestContextDestroyed(t *testing.T) {
	cr := newTestContext(t)
	cr.Destroy()
	if !cr.IsDestroyed() {
		t.Fatal("IsDestroyed = false after Destroy")
	}
	cr.MoveTo(1, 1)
	cr.LineTo(5, 5)
	cr.Stroke()
	if !errors.Is(cr.Status(), ErrContextDestroyed) {
		t.Errorf("Status = %v, want ErrContextDestroyed", cr.Status())
	}
}

func TestContextPathInDeviceSpace(t *testing.T) {
	cr := newTestContext(t)
	cr.Translate(10, 0)
	cr.Scale(2, 2)
	cr.MoveTo(1, 1)
	cr.LineTo(2, 3)

	path := cr.CurrentPath()
	if len(path.Subpaths) != 1 {
		t.Fatalf("got %d subpaths, want 1", len(path.Subpaths))
	}
	pts := path.Subpaths[0].Points
	want := []Point{{12, 2}, {14, 6}}
	for i, p := range want {
		if pts[i] != p {
			t.Errorf("point %d = %v, want %v", i, pts[i], p)
		}
	}

	x, y := cr.UserToDevice(0, 0)
	if x != 10 || y != 0 {
		t.Errorf("UserToDevice(0,0) = (%v,%v), want (10,0)", x, y)
	}
}

func TestContextRectangle(t *testing.T) {
	cr := newTestContext(t)
	cr.Rectangle(1, 2, 3, 4)
	path := cr.CurrentPath()
	if len(path.Subpaths) != 1 || !path.Subpaths[0].Closed {
		t.Fatalf("rectangle should be one closed subpath, got %+v", path)
	}
	x0, y0, x1, y1 := path.Bounds()
	if x0 != 1 || y0 != 2 || x1 != 4 || y1 != 6 {
		t.Errorf("bounds = (%v,%v,%v,%v), want (1,2,4,6)", x0, y0, x1, y1)
	}
}

func TestContextPreserveKeepsPath(t *testing.T) {
	cr := newTestContext(t)
	cr.Rectangle(2, 2, 6, 6)
	cr.StrokePreserve()
	if cr.CurrentPath().Empty() {
		t.Fatal("StrokePreserve cleared the path")
	}
	cr.FillPreserve()
	if cr.CurrentPath().Empty() {
		t.Fatal("FillPreserve cleared the path")
	}
	cr.Fill()
	if !cr.CurrentPath().Empty() {
		t.Fatal("Fill kept the path")
	}
	if cr.Status() != nil {
		t.Errorf("Status = %v", cr.Status())
	}
}

func TestContextClipConsumesPath(t *testing.T) {
	cr := newTestContext(t)
	cr.Save()
	cr.Rectangle(0, 0, 5, 5)
	cr.Clip()
	if !cr.CurrentPath().Empty() {
		t.Error("Clip kept the path")
	}
	if got := len(cr.paint().clips); got != 1 {
		t.Errorf("clips = %d, want 1", got)
	}
	cr.Restore()
	if got := len(cr.paint().clips); got != 0 {
		t.Errorf("clips after restore = %d, want 0", got)
	}
}

func TestContextTracer(t *testing.T) {
	cr := newTestContext(t)
	var ops []Op
	cr.SetTracer(func(op Op) { ops = append(ops, op) })

	cr.MoveTo(0, 0)
	cr.LineTo(10, 10)
	cr.ClosePath()
	cr.StrokePreserve()
	cr.Fill()

	want := []Op{OpMoveTo, OpLineTo, OpClosePath, OpStrokePreserve, OpFill}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op %d = %s, want %s", i, ops[i], want[i])
		}
	}
}

func TestContextLineWidthScalesWithCTM(t *testing.T) {
	cr := newTestContext(t)
	cr.Scale(3, 3)
	cr.SetLineWidth(2)
	cr.SetDash([]float64{1, 2}, 0.5)
	p := cr.paint()
	if !almostEqual(p.lineWidth, 6) {
		t.Errorf("device line width = %v, want 6", p.lineWidth)
	}
	if !almostEqual(p.dash[1], 6) || !almostEqual(p.dashOffset, 1.5) {
		t.Errorf("device dash = %v offset %v", p.dash, p.dashOffset)
	}
}

func TestOpString(t *testing.T) {
	if OpStrokePreserve.String() != "stroke_preserve" {
		t.Errorf("OpStrokePreserve = %q", OpStrokePreserve.String())
	}
	if Op(999).String() != "unknown" {
		t.Errorf("Op(999) = %q", Op(999).String())
	}
}
