// Package lua runs GKS metafile scripts. A script drives a workstation
// through the gks table registered by GKSModule.
package lua

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// RuntimeConfig contains configuration options for the Lua runtime.
type RuntimeConfig struct {
	// CPULimit is the CPU instruction limit for one script run.
	// 0 means unlimited.
	CPULimit uint64
	// MemoryLimit is the maximum memory in bytes a run may allocate.
	// 0 means unlimited.
	MemoryLimit uint64
	// Stdout receives Lua print output. If nil, output is only captured.
	Stdout io.Writer
}

// DefaultConfig returns a RuntimeConfig with sensible default values.
// CPU limit: 50,000,000 instructions
// Memory limit: 64 MB
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		CPULimit:    50_000_000,
		MemoryLimit: 64 * 1024 * 1024,
		Stdout:      os.Stdout,
	}
}

// Runtime wraps a Golua runtime with resource limits.
type Runtime struct {
	config  RuntimeConfig
	runtime *rt.Runtime
	output  *bytes.Buffer
	cleanup func()
	mu      sync.RWMutex
}

// New creates a Runtime with the Lua standard libraries loaded.
func New(config RuntimeConfig) (*Runtime, error) {
	output := &bytes.Buffer{}
	var stdout io.Writer = output
	if config.Stdout != nil {
		stdout = io.MultiWriter(config.Stdout, output)
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &Runtime{
		config:  config,
		runtime: runtime,
		output:  output,
		cleanup: cleanup,
	}, nil
}

func (r *Runtime) load(name string, code []byte) (*rt.Closure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runtime.CompileAndLoadLuaChunk(name, code, rt.TableValue(r.runtime.GlobalEnv()))
}

// LoadString compiles a Lua chunk.
func (r *Runtime) LoadString(name, code string) (*rt.Closure, error) {
	closure, err := r.load(name, []byte(code))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}
	return closure, nil
}

// LoadFile reads and compiles a Lua script from disk.
func (r *Runtime) LoadFile(path string) (*rt.Closure, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Lua file %s: %w", path, err)
	}
	closure, err := r.load(path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCompile, path, err)
	}
	return closure, nil
}

func (r *Runtime) limits() rt.RuntimeContextDef {
	return rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    r.config.CPULimit,
			Memory: r.config.MemoryLimit,
		},
	}
}

// call runs fn within the resource limits. golua panics when a hard
// limit is reached; that panic is returned as ErrResourceLimit.
func (r *Runtime) call(fn rt.Value, args ...rt.Value) (result rt.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runtime.PushContext(r.limits())
	defer r.runtime.PopContext()
	defer func() {
		if p := recover(); p != nil {
			result, err = rt.NilValue, fmt.Errorf("%w: %v", ErrResourceLimit, p)
		}
	}()

	result, err = rt.Call1(r.runtime.MainThread(), fn, args...)
	if err != nil {
		return rt.NilValue, fmt.Errorf("%w: %v", ErrExecution, err)
	}
	return result, nil
}

// Execute runs a compiled closure.
func (r *Runtime) Execute(closure *rt.Closure) (rt.Value, error) {
	return r.call(rt.FunctionValue(closure))
}

// CallFunction calls the global function name with args.
func (r *Runtime) CallFunction(name string, args ...rt.Value) (rt.Value, error) {
	fn := r.GetGlobal(name)
	if fn.IsNil() {
		return rt.NilValue, fmt.Errorf("%w: function %s not found", ErrExecution, name)
	}
	result, err := r.call(fn, args...)
	if err != nil {
		return rt.NilValue, fmt.Errorf("calling %s: %w", name, err)
	}
	return result, nil
}

// ExecuteString compiles and runs a Lua chunk.
func (r *Runtime) ExecuteString(name, code string) (rt.Value, error) {
	closure, err := r.LoadString(name, code)
	if err != nil {
		return rt.NilValue, err
	}
	return r.Execute(closure)
}

// ExecuteFile loads and runs a Lua script.
func (r *Runtime) ExecuteFile(path string) (rt.Value, error) {
	closure, err := r.LoadFile(path)
	if err != nil {
		return rt.NilValue, err
	}
	return r.Execute(closure)
}

// GetGlobal retrieves a global variable.
func (r *Runtime) GetGlobal(name string) rt.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runtime.GlobalEnv().Get(rt.StringValue(name))
}

// SetGlobal sets a global variable.
func (r *Runtime) SetGlobal(name string, value rt.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runtime.GlobalEnv().Set(rt.StringValue(name), value)
}

// registry returns a value from the Lua registry, such as the package table.
func (r *Runtime) registry(key string) rt.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runtime.Registry(rt.StringValue(key))
}

// Output returns the captured print output.
func (r *Runtime) Output() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.output.String()
}

// Config returns the runtime configuration.
func (r *Runtime) Config() RuntimeConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.config
}

// Close releases resources associated with the runtime.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
	return nil
}
