package logger

import "errors"

var (
	// ErrInvalidArgument indicates an invalid argument was provided, such as
	// a level sequence that is not a usable list of strings.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMissingRenderSurface indicates a page-based viewer was constructed
	// without a surface to draw on.
	ErrMissingRenderSurface = errors.New("missing render surface")
	// ErrUnknownViewerType indicates a viewer type name with no registered
	// [Factory].
	ErrUnknownViewerType = errors.New("unknown viewer type")
)
