package gkscairo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/opd-ai/go-gkscairo/internal/config"
	"github.com/opd-ai/go-gkscairo/internal/gks"
	"github.com/opd-ai/go-gkscairo/internal/lua"
)

// ErrNoScript is returned when Render is called without a script path.
var ErrNoScript = errors.New("no metafile script given")

// Render runs the metafile script at scriptPath and writes the document
// it draws. A workstation the script leaves open is closed.
func Render(scriptPath string, opts Options) error {
	start := time.Now()
	r, err := prepare(scriptPath, opts)
	if err == nil {
		err = r.execute()
		r.runtime.Close()
	}
	var written int64
	if r != nil {
		written = r.written()
	}
	opts.Metrics.RecordRender(time.Since(start), written, err)
	return err
}

// Watch renders scriptPath, then renders it again whenever the script or
// the configuration file changes, until ctx is done. onRender, if not
// nil, receives the outcome of every render.
func Watch(ctx context.Context, scriptPath string, opts Options, onRender func(error)) error {
	if scriptPath == "" {
		return categorize(ErrNoScript, ErrorCategoryConfig, scriptPath)
	}
	if onRender == nil {
		onRender = func(error) {}
	}
	log := opts.Logger
	if log == nil {
		log = DefaultLogger()
	}

	var mu sync.Mutex
	render := func() {
		mu.Lock()
		defer mu.Unlock()
		onRender(Render(scriptPath, opts))
	}

	w, err := newFileWatcher([]string{scriptPath, opts.ConfigPath}, opts.WatchDebounce,
		func() error {
			opts.Metrics.IncrementReloads()
			log.Info("re-rendering after change", "script", scriptPath)
			render()
			return nil
		},
		func(err error) {
			log.Error("watch error", "script", scriptPath, "error", err)
		})
	if err != nil {
		return categorize(fmt.Errorf("watching %s: %w", scriptPath, err), ErrorCategoryIO, scriptPath)
	}
	w.Start()
	defer w.Stop()

	render()
	<-ctx.Done()
	return nil
}

// run holds everything one render needs.
type run struct {
	script  string
	cfg     *config.Config
	log     Logger
	ws      *gks.Workstation
	runtime *lua.Runtime
	module  *lua.GKSModule
	hooks   *lua.HookManager
	outputs []*countingFile
}

func prepare(scriptPath string, opts Options) (*run, error) {
	if scriptPath == "" {
		return nil, categorize(ErrNoScript, ErrorCategoryConfig, scriptPath)
	}
	cfg, warnings, err := settings(opts)
	if err != nil {
		return nil, categorize(err, ErrorCategoryConfig, scriptPath)
	}

	r := &run{script: scriptPath, cfg: cfg, log: opts.Logger}
	if r.log == nil {
		r.log = FormatLogger(cfg.Logging.Format, os.Stderr)
	}
	for _, w := range warnings {
		r.log.Warn("configuration warning", "field", w.Field, "message", w.Message)
	}

	wsOpts, err := workstationOptions(cfg, r.log)
	if err != nil {
		return nil, categorize(err, ErrorCategoryConfig, scriptPath)
	}
	r.ws = gks.NewWorkstation(wsOpts...)

	r.runtime, err = lua.New(lua.RuntimeConfig{
		CPULimit:    cfg.Lua.CPULimit,
		MemoryLimit: cfg.Lua.MemoryLimit,
		Stdout:      os.Stdout,
	})
	if err != nil {
		return nil, categorize(err, ErrorCategoryLua, scriptPath)
	}
	r.module, err = lua.NewGKSModule(r.runtime, r.ws, lua.ModuleConfig{
		Device: cfg.Output.Type,
		Path:   outputPath(cfg, scriptPath),
		Open:   r.create,
	})
	if err == nil {
		r.hooks, err = lua.NewHookManager(r.runtime)
	}
	if err != nil {
		r.runtime.Close()
		return nil, categorize(err, ErrorCategoryLua, scriptPath)
	}
	return r, nil
}

// settings loads the configuration file and applies the overrides in opts.
func settings(opts Options) (*config.Config, []config.ValidationError, error) {
	cfg := config.DefaultConfig()
	if opts.ConfigPath != "" {
		parsed, err := config.NewParser().ParseFile(opts.ConfigPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = *parsed
	}

	if opts.Device != "" {
		cfg.Output.Type = opts.Device
	}
	if opts.OutputPath != "" {
		cfg.Output.Path = opts.OutputPath
	}
	if opts.Orientation != "" {
		cfg.Output.Orientation = opts.Orientation
	}
	if opts.Width > 0 && opts.Height > 0 {
		cfg.Output.Width, cfg.Output.Height = opts.Width, opts.Height
	}
	if opts.LuaCPULimit > 0 {
		cfg.Lua.CPULimit = opts.LuaCPULimit
	}
	if opts.LuaMemoryLimit > 0 {
		cfg.Lua.MemoryLimit = opts.LuaMemoryLimit
	}

	result := config.NewValidator().Validate(&cfg)
	if err := result.Error(); err != nil {
		return nil, nil, err
	}
	return &cfg, result.Warnings, nil
}

func workstationOptions(cfg *config.Config, log Logger) ([]gks.Option, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	asf, err := cfg.ASF.ASFs()
	if err != nil {
		return nil, err
	}
	orientation, err := cfg.Output.ParseOrientation()
	if err != nil {
		return nil, err
	}
	return []gks.Option{
		gks.WithLogger(log, cfg.Logging.LogMask()),
		gks.WithPalette(palette),
		gks.WithOrientation(orientation),
		gks.WithSize(cfg.Output.Width, cfg.Output.Height),
		gks.WithLogo(cfg.Logo.Logo()),
		gks.WithASF(asf),
		gks.WithBundles(cfg.Bundles()),
		gks.WithTextHeight(cfg.Text.TextHeight()),
	}, nil
}

// outputPath returns the configured path, or the script path with the
// extension of the output type.
func outputPath(cfg *config.Config, script string) string {
	if cfg.Output.Path != "" {
		return cfg.Output.Path
	}
	ext := strings.ToLower(strings.TrimSpace(cfg.Output.Type))
	if ext == "image" {
		ext = "png"
	}
	return strings.TrimSuffix(script, filepath.Ext(script)) + "." + ext
}

func (r *run) execute() error {
	r.ws.Lock()
	defer r.ws.Unlock()

	if _, err := r.runtime.ExecuteFile(r.script); err != nil {
		r.abandon()
		return categorize(err, ErrorCategoryLua, r.script)
	}
	if _, err := r.hooks.Call(lua.HookStartup); err != nil {
		r.abandon()
		return categorize(err, ErrorCategoryLua, r.script)
	}

	if r.hooks.Defined(lua.HookDraw) {
		if !r.ws.IsOpen() {
			if err := r.module.Open("", ""); err != nil {
				return categorize(err, ErrorCategoryIO, r.script)
			}
		}
		m := r.ws.Mapper()
		if err := r.hooks.CallDraw(m.Width, m.Height); err != nil {
			r.abandon()
			return categorize(err, ErrorCategoryLua, r.script)
		}
	}

	if r.ws.IsOpen() {
		r.log.Debug("closing the workstation left open", "script", r.script)
		if err := r.ws.Close(); err != nil {
			return categorize(err, ErrorCategoryRender, r.script)
		}
	}
	if r.module.Opened() == 0 {
		r.log.Warn("script opened no workstation", "script", r.script)
	}

	if _, err := r.hooks.Call(lua.HookShutdown); err != nil {
		return categorize(err, ErrorCategoryLua, r.script)
	}
	return nil
}

// abandon closes a workstation after a failed script so that its output
// file is released.
func (r *run) abandon() {
	if r.ws.IsOpen() {
		_ = r.ws.Close()
	}
}

func (r *run) create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	c := &countingFile{f: f}
	r.outputs = append(r.outputs, c)
	return c, nil
}

func (r *run) written() int64 {
	var n int64
	for _, c := range r.outputs {
		n += c.n
	}
	return n
}

// countingFile is an output file that counts the bytes written to it.
type countingFile struct {
	f *os.File
	n int64
}

func (c *countingFile) Write(p []byte) (int, error) {
	n, err := c.f.Write(p)
	c.n += int64(n)
	return n, err
}

func (c *countingFile) Close() error {
	return c.f.Close()
}
