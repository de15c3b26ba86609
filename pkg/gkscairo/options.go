package gkscairo

import (
	"time"
)

// Options configures a render. Zero values defer to the configuration
// file, and then to the built-in defaults.
type Options struct {
	// Logger receives driver messages. If nil, a slog logger is built
	// from the configured logging format.
	Logger Logger

	// ConfigPath is a TOML configuration file. Empty means defaults.
	ConfigPath string

	// OutputPath overrides the output file. When neither this nor the
	// configuration names one, the script name with the device's
	// extension is used.
	OutputPath string

	// Device overrides the output type: png, ps, eps, pdf or svg.
	Device string

	// Orientation overrides the page orientation: portrait or landscape.
	Orientation string

	// Width and Height override the device size when both are positive.
	Width  float64
	Height float64

	// LuaCPULimit overrides the Lua CPU instruction limit.
	LuaCPULimit uint64

	// LuaMemoryLimit overrides the Lua memory limit in bytes.
	LuaMemoryLimit uint64

	// WatchDebounce sets the debounce interval for file change events.
	// Zero means DefaultWatchDebounce.
	WatchDebounce time.Duration

	// Metrics collects render counters. If nil, nothing is recorded.
	Metrics *Metrics
}

// DefaultOptions returns Options that defer everything to the
// configuration file.
func DefaultOptions() Options {
	return Options{}
}

// Logger interface for custom logging.
// It follows the slog-style signature for compatibility with Go's structured logging.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}
