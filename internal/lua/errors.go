package lua

import "errors"

var (
	// ErrNilRuntime is returned when a nil runtime is passed to a function that requires one.
	ErrNilRuntime = errors.New("runtime cannot be nil")

	// ErrNilWorkstation is returned when the gks module is created without a workstation.
	ErrNilWorkstation = errors.New("workstation cannot be nil")

	// ErrCompile wraps Lua syntax errors.
	ErrCompile = errors.New("failed to load Lua code")

	// ErrExecution wraps runtime errors raised while a script runs.
	ErrExecution = errors.New("lua execution error")

	// ErrResourceLimit is returned when a script exceeds its CPU or memory limit.
	ErrResourceLimit = errors.New("lua resource limit exceeded")

	// ErrInvalidPoints is returned when a point list is malformed.
	ErrInvalidPoints = errors.New("invalid point list")

	// ErrInvalidFlag is returned for an aspect source flag that is neither bundled nor individual.
	ErrInvalidFlag = errors.New("invalid aspect source flag")
)
