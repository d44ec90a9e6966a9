package raster

import "errors"

// Contract violations. Draw returns them before any pixel is written.
var (
	ErrUnknownBuffer        = errors.New("unknown buffer handle")
	ErrUnsupportedPrimitive = errors.New("unsupported primitive")
	ErrIndexOutOfRange      = errors.New("vertex index out of range")
)
