package lua

import (
	"fmt"
	"io"
	"os"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-gkscairo/internal/gks"
)

// OutputOpener returns the writer a gks.open call renders to.
type OutputOpener func(path string) (io.WriteCloser, error)

// ModuleConfig holds the defaults used by gks.open.
type ModuleConfig struct {
	// Device is used when gks.open is called without a device token.
	Device string
	// Path is used when gks.open is called without a path.
	Path string
	// Open creates the output. If nil, files are created with os.Create.
	Open OutputOpener
}

// GKSModule exposes a workstation to Lua scripts as the gks table.
type GKSModule struct {
	runtime *Runtime
	ws      *gks.Workstation
	config  ModuleConfig
	opened  int
}

// NewGKSModule registers the gks table in runtime, bound to ws. The
// table is also stored in package.loaded so require("gks") works.
func NewGKSModule(runtime *Runtime, ws *gks.Workstation, config ModuleConfig) (*GKSModule, error) {
	if runtime == nil {
		return nil, ErrNilRuntime
	}
	if ws == nil {
		return nil, ErrNilWorkstation
	}
	if config.Open == nil {
		config.Open = func(path string) (io.WriteCloser, error) { return os.Create(path) }
	}
	m := &GKSModule{runtime: runtime, ws: ws, config: config}
	m.register()
	return m, nil
}

// Workstation returns the bound workstation.
func (m *GKSModule) Workstation() *gks.Workstation {
	return m.ws
}

// Opened returns how many times the script opened the workstation.
func (m *GKSModule) Opened() int {
	return m.opened
}

func (m *GKSModule) register() {
	table := rt.NewTable()
	m.registerFunctions(table)
	registerConstants(table)
	value := rt.TableValue(table)
	m.runtime.SetGlobal("gks", value)

	pkg, ok := m.runtime.registry("package").TryTable()
	if !ok {
		return
	}
	if loaded, ok := pkg.Get(rt.StringValue("loaded")).TryTable(); ok {
		loaded.Set(rt.StringValue("gks"), value)
	}
}

func setFunction(table *rt.Table, name string, fn rt.GoFunctionFunc, nArgs int) {
	goFunc := rt.NewGoFunction(fn, name, nArgs, true)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
	table.Set(rt.StringValue(name), rt.FunctionValue(goFunc))
}

// bind adapts a Go handler over the argument list into a Lua function.
func bind(fn func(args []rt.Value) error) rt.GoFunctionFunc {
	return func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		if err := fn(allArgs(c)); err != nil {
			return nil, err
		}
		return c.Next(), nil
	}
}

func (m *GKSModule) registerFunctions(table *rt.Table) {
	// lifecycle
	setFunction(table, "open", bind(m.open), 0)
	setFunction(table, "close", bind(func([]rt.Value) error { return m.ws.Close() }), 0)
	setFunction(table, "clear", bind(func([]rt.Value) error { return m.ws.Clear() }), 0)
	setFunction(table, "resize", bind(m.resize), 2)
	setFunction(table, "message", bind(m.message), 1)
	setFunction(table, "is_open", m.isOpen, 0)

	// output primitives
	setFunction(table, "polyline", bind(m.graphic(gks.Polyline)), 1)
	setFunction(table, "polymarker", bind(m.graphic(gks.Polymarker)), 1)
	setFunction(table, "fill_area", bind(m.graphic(gks.FillArea)), 1)
	setFunction(table, "output_graphic", bind(m.outputGraphic), 2)
	setFunction(table, "text", bind(m.text), 3)
	setFunction(table, "cell_array", bind(m.cellArray), 0)

	// attributes
	setFunction(table, "set_line_style", bind(m.setLineStyle), 1)
	setFunction(table, "set_line_width", bind(m.setLineWidth), 1)
	setFunction(table, "set_line_colour", bind(m.setLineColour), 1)
	setFunction(table, "set_graph_attr", bind(m.setGraphAttr), 2)
	setFunction(table, "set_graph_size", bind(m.setGraphSize), 2)
	setFunction(table, "set_fill_style", bind(m.setFillStyle), 1)
	setFunction(table, "set_text_fp", bind(m.setTextFP), 1)
	setFunction(table, "set_char_up", bind(m.setCharUp), 2)
	setFunction(table, "set_text_path", bind(m.setTextPath), 1)
	setFunction(table, "set_text_align", bind(m.setTextAlign), 2)
	setFunction(table, "set_clip", bind(m.setClip), 4)
	setFunction(table, "set_source_flags", bind(m.setSourceFlags), 3)

	// accepted but not drawn
	noop := map[string]func() error{
		"redraw_all_seg":    m.ws.RedrawAllSeg,
		"update":            func() error { return m.ws.Update(0) },
		"defer":             func() error { return m.ws.Defer(0, 0) },
		"close_seg":         m.ws.CloseSeg,
		"set_pat_size":      func() error { return m.ws.SetPatSize(gks.Point{}) },
		"set_pat_refpt":     func() error { return m.ws.SetPatRefpt(gks.Point{}) },
		"set_asf":           func() error { return m.ws.SetAsf(nil) },
		"set_line_mark_rep": func() error { return m.ws.SetLineMarkRep(0, 0, 0, 0, 0) },
		"set_text_rep":      func() error { return m.ws.SetTextRep(0, 0, 0, 0, 0, 0) },
		"set_fill_rep":      func() error { return m.ws.SetFillRep(0, 0, 0, 0) },
		"set_pat_rep":       func() error { return m.ws.SetPatRep(0, 0, 0, nil) },
		"set_col_rep":       func() error { return m.ws.SetColRep(0, 0, 0, 0) },
		"set_limit":         func() error { return m.ws.SetLimit(0, gks.Rect{}) },
		"rename_seg":        func() error { return m.ws.RenameSeg(0, 0) },
		"set_seg_tran":      func() error { return m.ws.SetSegTran(0, [2][3]float64{}) },
		"set_seg_attr":      func() error { return m.ws.SetSegAttr(0, 0, 0) },
		"set_seg_vis":       func() error { return m.ws.SetSegVis(0, true) },
		"set_seg_hilight":   func() error { return m.ws.SetSegHilight(0, false) },
		"set_seg_pri":       func() error { return m.ws.SetSegPri(0, 0) },
		"set_seg_detect":    func() error { return m.ws.SetSegDetect(0, false) },
	}
	for name, fn := range noop {
		fn := fn
		setFunction(table, name, bind(func([]rt.Value) error { return fn() }), 0)
	}
}

var intConstants = map[string]int{
	"POLYLINE":                 gks.Polyline,
	"POLYMARKER":               gks.Polymarker,
	"TEXT":                     gks.TextItem,
	"FILL_AREA":                gks.FillArea,
	"CELL_ARRAY":               gks.CellArray,
	"POLYLINE_INDEX":           gks.PolylineIndex,
	"LINETYPE":                 gks.Linetype,
	"LINEWIDTH_SCALE_FACTOR":   gks.LinewidthScaleFactor,
	"POLYLINE_COLOUR_INDEX":    gks.PolylineColourIndex,
	"POLYMARKER_INDEX":         gks.PolymarkerIndex,
	"MARKER_TYPE":              gks.MarkerType,
	"MARKER_SIZE_SCALE_FACTOR": gks.MarkerSizeScaleFactor,
	"POLYMARKER_COLOUR_INDEX":  gks.PolymarkerColourIndex,
	"TEXT_INDEX":               gks.TextIndex,
	"CHARACTER_EXPANSION":      gks.CharacterExpansion,
	"CHARACTER_SPACING":        gks.CharacterSpacing,
	"TEXT_COLOUR_INDEX":        gks.TextColourIndex,
	"FILL_AREA_INDEX":          gks.FillAreaIndex,
	"FILL_AREA_STYLE_INDEX":    gks.FillAreaStyleIndex,
	"FILL_AREA_COLOUR_INDEX":   gks.FillAreaColourIndex,
	"PICK_IDENTIFIER":          gks.PickIdentifier,
	"HOLLOW":                   int(gks.FillHollow),
	"SOLID":                    int(gks.FillSolid),
	"PATTERN":                  int(gks.FillPattern),
	"HATCH":                    int(gks.FillHatch),
	"BUNDLED":                  int(gks.Bundled),
	"INDIVIDUAL":               int(gks.Individual),
	"LINE_SOLID":               gks.LineSolid,
	"LINE_DASH":                gks.LineDash,
	"LINE_DOT":                 gks.LineDot,
	"LINE_DASH_DOT":            gks.LineDashDot,
	"LINE_LONG_DASH":           gks.LineLongDash,
}

func registerConstants(table *rt.Table) {
	for name, v := range intConstants {
		table.Set(rt.StringValue(name), rt.IntValue(int64(v)))
	}
}

// open handles gks.open([device [, path]]).
func (m *GKSModule) open(args []rt.Value) error {
	device, err := optionalString(args, 0, m.config.Device)
	if err != nil {
		return err
	}
	path, err := optionalString(args, 1, m.config.Path)
	if err != nil {
		return err
	}
	return m.Open(device, path)
}

// Open creates path and opens the workstation on it. Empty arguments
// take the module defaults.
func (m *GKSModule) Open(device, path string) error {
	if device == "" {
		device = m.config.Device
	}
	if path == "" {
		path = m.config.Path
	}
	if path == "" {
		return fmt.Errorf("gks.open: no output path")
	}
	if m.ws.IsOpen() {
		return fmt.Errorf("gks.open: %w", gks.ErrAlreadyOpen)
	}
	w, err := m.config.Open(path)
	if err != nil {
		return fmt.Errorf("gks.open: %w", err)
	}
	if err := m.ws.OpenDevice(device, w); err != nil {
		_ = w.Close()
		return fmt.Errorf("gks.open: %w", err)
	}
	m.opened++
	return nil
}

func (m *GKSModule) isOpen(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	return c.PushingNext1(t.Runtime, rt.BoolValue(m.ws.IsOpen())), nil
}

func (m *GKSModule) resize(args []rt.Value) error {
	w, err := floatArg(args, 0)
	if err != nil {
		return err
	}
	h, err := floatArg(args, 1)
	if err != nil {
		return err
	}
	m.ws.Resize(w, h)
	return nil
}

func (m *GKSModule) message(args []rt.Value) error {
	s, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	return m.ws.Message(s)
}

func (m *GKSModule) graphic(code int) func([]rt.Value) error {
	return func(args []rt.Value) error {
		pts, err := pointsArg(args, 0)
		if err != nil {
			return err
		}
		return m.ws.OutputGraphic(code, pts)
	}
}

func (m *GKSModule) outputGraphic(args []rt.Value) error {
	code, err := intArg(args, 0)
	if err != nil {
		return err
	}
	pts, err := pointsArg(args, 1)
	if err != nil {
		return err
	}
	return m.ws.OutputGraphic(code, pts)
}

// text handles gks.text(x, y, s [, repeat]).
func (m *GKSModule) text(args []rt.Value) error {
	x, err := floatArg(args, 0)
	if err != nil {
		return err
	}
	y, err := floatArg(args, 1)
	if err != nil {
		return err
	}
	s, err := stringArg(args, 2)
	if err != nil {
		return err
	}
	repeat, err := optionalInt(args, 3, 1)
	if err != nil {
		return err
	}
	return m.ws.Text(gks.Point{X: x, Y: y}, s, repeat)
}

func (m *GKSModule) cellArray([]rt.Value) error {
	return m.ws.CellArray(gks.Point{}, gks.Point{}, gks.Point{}, 0, nil, 0, 0)
}

func (m *GKSModule) setLineStyle(args []rt.Value) error {
	attr, err := intArg(args, 0)
	if err != nil {
		return err
	}
	asf, err := asfArg(args, 1)
	if err != nil {
		return err
	}
	m.ws.SetLineStyle(attr, asf)
	return nil
}

// setLineWidth handles gks.set_line_width(size [, attr [, asf]]).
func (m *GKSModule) setLineWidth(args []rt.Value) error {
	size, err := floatArg(args, 0)
	if err != nil {
		return err
	}
	attr, err := optionalInt(args, 1, 0)
	if err != nil {
		return err
	}
	asf, err := asfArg(args, 2)
	if err != nil {
		return err
	}
	m.ws.SetLineWidth(size, attr, asf)
	return nil
}

func (m *GKSModule) setLineColour(args []rt.Value) error {
	attr, err := intArg(args, 0)
	if err != nil {
		return err
	}
	asf, err := asfArg(args, 1)
	if err != nil {
		return err
	}
	m.ws.SetLineColour(attr, asf)
	return nil
}

func (m *GKSModule) setGraphAttr(args []rt.Value) error {
	code, err := intArg(args, 0)
	if err != nil {
		return err
	}
	attr, err := intArg(args, 1)
	if err != nil {
		return err
	}
	return m.ws.SetGraphAttr(code, attr)
}

func (m *GKSModule) setGraphSize(args []rt.Value) error {
	code, err := intArg(args, 0)
	if err != nil {
		return err
	}
	size, err := floatArg(args, 1)
	if err != nil {
		return err
	}
	return m.ws.SetGraphSize(code, size)
}

func (m *GKSModule) setFillStyle(args []rt.Value) error {
	style, err := intArg(args, 0)
	if err != nil {
		return err
	}
	if style < int(gks.FillHollow) || style > int(gks.FillHatch) {
		return fmt.Errorf("gks.set_fill_style: unknown style %d", style)
	}
	return m.ws.SetFillStyle(gks.FillStyle(style))
}

func (m *GKSModule) setTextFP(args []rt.Value) error {
	font, err := intArg(args, 0)
	if err != nil {
		return err
	}
	prec, err := optionalInt(args, 1, 0)
	if err != nil {
		return err
	}
	return m.ws.SetTextFP(font, prec)
}

// setCharUp handles gks.set_char_up(ux, uy [, bx, by]).
func (m *GKSModule) setCharUp(args []rt.Value) error {
	var v [4]float64
	v[2] = 1
	for i := range v {
		if i >= 2 && (i >= len(args) || args[i].IsNil()) {
			break
		}
		f, err := floatArg(args, i)
		if err != nil {
			return err
		}
		v[i] = f
	}
	return m.ws.SetCharUp(gks.Point{X: v[0], Y: v[1]}, gks.Point{X: v[2], Y: v[3]})
}

func (m *GKSModule) setTextPath(args []rt.Value) error {
	s, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	return m.ws.SetTextPath(gks.ParseTextPath(s))
}

func (m *GKSModule) setTextAlign(args []rt.Value) error {
	h, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	v, err := optionalString(args, 1, "h")
	if err != nil {
		return err
	}
	return m.ws.SetTextAlign(gks.ParseHAlign(h), gks.ParseVAlign(v))
}

func (m *GKSModule) setClip(args []rt.Value) error {
	var v [4]float64
	for i := range v {
		f, err := floatArg(args, i)
		if err != nil {
			return err
		}
		v[i] = f
	}
	return m.ws.SetClip(gks.Rect{XMin: v[0], YMin: v[1], XMax: v[2], YMax: v[3]})
}

// setSourceFlags handles gks.set_source_flags(line_type, line_width, line_colour).
func (m *GKSModule) setSourceFlags(args []rt.Value) error {
	var flags [3]gks.ASF
	for i := range flags {
		a, err := asfArg(args, i)
		if err != nil {
			return err
		}
		flags[i] = a
	}
	m.ws.SetASFs(gks.ASFs{LineType: flags[0], LineWidth: flags[1], LineColour: flags[2]})
	return nil
}
