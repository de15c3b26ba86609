package gks

import "errors"

var (
	// ErrClose is wrapped around every failure reported by Workstation.Close.
	ErrClose = errors.New("closing workstation output failed")

	// ErrUnsupportedDevice is returned by Open for a device token that does
	// not name a known surface type.
	ErrUnsupportedDevice = errors.New("unsupported output device")

	// ErrAlreadyOpen is returned by Open when the workstation already has a surface.
	ErrAlreadyOpen = errors.New("workstation already open")

	// ErrNoOutput is returned by Open when no writer is given.
	ErrNoOutput = errors.New("no output writer")

	// ErrInvalidColor is returned when a colour string or index cannot be used.
	ErrInvalidColor = errors.New("invalid colour")
)
