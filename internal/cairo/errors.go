package cairo

import "errors"

var (
	// ErrSurfaceFinished is returned when drawing on a surface after Finish or Destroy.
	ErrSurfaceFinished = errors.New("surface is finished")

	// ErrSurfaceTypeMismatch is returned when a type-specific surface call
	// (WriteToPNGStream, SetSize, DSCComment) is made on the wrong surface type.
	ErrSurfaceTypeMismatch = errors.New("surface type mismatch")

	// ErrInvalidRestore is recorded when Restore is called without a matching Save.
	ErrInvalidRestore = errors.New("cairo_restore without matching cairo_save")

	// ErrContextDestroyed is recorded when a destroyed context is used.
	ErrContextDestroyed = errors.New("context is destroyed")

	// ErrUnknownSurfaceType is returned by ParseSurfaceType for unknown tokens.
	ErrUnknownSurfaceType = errors.New("unknown surface type")
)
