// Package dithergo converts greyscale images to 1-bit black/white images by
// error diffusion.
package dithergo

import (
	"context"
	"fmt"

	"github.com/ericlevine/dithergo/bitutil"
)

// DefaultThreshold is the luminance a sample must exceed to become white.
const DefaultThreshold = 128

// Method identifies a dithering algorithm.
type Method int

const (
	// MethodFloydSteinberg is sequential Floyd-Steinberg error diffusion.
	MethodFloydSteinberg Method = iota
	// MethodWavefront is Floyd-Steinberg error diffusion computed by several
	// goroutines along anti-diagonals. Its output is identical to
	// MethodFloydSteinberg.
	MethodWavefront
	// MethodThreshold compares every sample with the threshold and diffuses
	// nothing.
	MethodThreshold
)

// String returns the name of the method.
func (m Method) String() string {
	switch m {
	case MethodFloydSteinberg:
		return "FLOYD_STEINBERG"
	case MethodWavefront:
		return "WAVEFRONT"
	case MethodThreshold:
		return "THRESHOLD"
	default:
		return "UNKNOWN"
	}
}

// Options configures dithering behavior.
type Options struct {
	// Threshold is the luminance a sample must exceed to become white.
	// If nil, DefaultThreshold is used.
	Threshold *int

	// Workers is the number of goroutines used by MethodWavefront. Zero or
	// less selects runtime.GOMAXPROCS(0).
	Workers int

	// RowDone, if non-nil, is called after each row has been quantized.
	// MethodWavefront calls it from several goroutines at once.
	RowDone func(y int)
}

// ThresholdValue returns the threshold selected by opts. A nil receiver
// selects DefaultThreshold.
func (o *Options) ThresholdValue() (int, error) {
	if o == nil || o.Threshold == nil {
		return DefaultThreshold, nil
	}
	t := *o.Threshold
	if err := ValidateThreshold(t); err != nil {
		return 0, err
	}
	return t, nil
}

// ValidateThreshold reports whether t is a usable threshold.
// Out-of-range values are rejected, never clamped.
func ValidateThreshold(t int) error {
	if t < 0 || t > 255 {
		return fmt.Errorf("threshold %d not in [0, 255]: %w", t, ErrInvalidThreshold)
	}
	return nil
}

// dithererFactory is a function that creates a Ditherer.
type dithererFactory func() Ditherer

var dithererFactories = map[Method]dithererFactory{}

// RegisterDitherer registers a ditherer factory for the given method.
func RegisterDitherer(method Method, factory func() Ditherer) {
	dithererFactories[method] = factory
}

// NewDitherer returns a Ditherer for the given method.
func NewDitherer(method Method) (Ditherer, error) {
	factory, ok := dithererFactories[method]
	if !ok {
		return nil, fmt.Errorf("no ditherer registered for method %s: %w", method, ErrUnknownMethod)
	}
	return factory(), nil
}

// Dither is a top-level convenience function that dithers source with the
// given method.
func Dither(ctx context.Context, source LuminanceSource, method Method, opts *Options) (*bitutil.BitMatrix, error) {
	d, err := NewDitherer(method)
	if err != nil {
		return nil, err
	}
	return d.Dither(ctx, source, opts)
}
