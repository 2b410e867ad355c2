package dithergo

import "errors"

var (
	// ErrInvalidDimensions is returned when a raster has zero width or height.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrInvalidThreshold is returned when a threshold lies outside [0, 255].
	ErrInvalidThreshold = errors.New("invalid threshold")

	// ErrUnreadableInput is returned when an input image cannot be opened or decoded.
	ErrUnreadableInput = errors.New("unreadable input")

	// ErrWriteFailure is returned when an output image cannot be encoded or written.
	ErrWriteFailure = errors.New("write failure")

	// ErrUnknownMethod is returned when no ditherer is registered for a method.
	ErrUnknownMethod = errors.New("unknown dithering method")
)
