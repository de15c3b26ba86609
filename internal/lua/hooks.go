package lua

import (
	"fmt"

	rt "github.com/arnodel/golua/runtime"
)

// HookType identifies an optional lifecycle function a script may define.
type HookType int

const (
	// HookInvalid is returned by ParseHookType when parsing fails.
	HookInvalid HookType = iota

	// HookStartup runs once after the script body, before any output is opened.
	HookStartup

	// HookDraw runs with the workstation open. It receives the device
	// width and height. A script that defines it leaves opening and
	// closing to the host.
	HookDraw

	// HookShutdown runs once after the document has been closed.
	HookShutdown
)

func (h HookType) String() string {
	switch h {
	case HookStartup:
		return "startup"
	case HookDraw:
		return "draw"
	case HookShutdown:
		return "shutdown"
	case HookInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// LuaFunctionName returns the global function name for a hook type.
func (h HookType) LuaFunctionName() string {
	return "gks_" + h.String()
}

// ParseHookType parses a hook name without its gks_ prefix.
func ParseHookType(s string) (HookType, error) {
	switch s {
	case "startup":
		return HookStartup, nil
	case "draw":
		return HookDraw, nil
	case "shutdown":
		return HookShutdown, nil
	default:
		return HookInvalid, fmt.Errorf("unknown hook type: %s", s)
	}
}

// HookManager looks up and calls the lifecycle functions of a script.
type HookManager struct {
	runtime *Runtime
}

// NewHookManager creates a HookManager for the given runtime.
func NewHookManager(runtime *Runtime) (*HookManager, error) {
	if runtime == nil {
		return nil, ErrNilRuntime
	}
	return &HookManager{runtime: runtime}, nil
}

// Defined reports whether the script defines a function for hookType.
func (hm *HookManager) Defined(hookType HookType) bool {
	return hm.runtime.GetGlobal(hookType.LuaFunctionName()).Type() == rt.FunctionType
}

// Call invokes the hook if the script defines it. A global with the
// hook's name that is not a function is an error.
func (hm *HookManager) Call(hookType HookType, args ...rt.Value) (rt.Value, error) {
	name := hookType.LuaFunctionName()
	fn := hm.runtime.GetGlobal(name)
	if fn.IsNil() {
		return rt.NilValue, nil
	}
	if fn.Type() != rt.FunctionType {
		return rt.NilValue, fmt.Errorf("%s is not a function (type: %v)", name, fn.Type())
	}
	result, err := hm.runtime.CallFunction(name, args...)
	if err != nil {
		return rt.NilValue, fmt.Errorf("hook %s execution failed: %w", hookType, err)
	}
	return result, nil
}

// CallDraw invokes HookDraw with the device size.
func (hm *HookManager) CallDraw(width, height float64) error {
	_, err := hm.Call(HookDraw, rt.FloatValue(width), rt.FloatValue(height))
	return err
}
