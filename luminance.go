package dithergo

import (
	"context"

	"github.com/ericlevine/dithergo/bitutil"
)

// LuminanceSource provides access to greyscale luminance values for an image.
type LuminanceSource interface {
	// Row returns a row of luminance data. If row is non-nil and large enough,
	// it should be reused.
	Row(y int, row []byte) []byte

	// Matrix returns the entire luminance matrix in row-major order.
	Matrix() []byte

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int
}

// Ditherer converts luminance data to 1-bit black/white data.
//
// In the returned matrix a set bit is a white (255) pixel and an unset bit
// is a black (0) pixel.
type Ditherer interface {
	Dither(ctx context.Context, source LuminanceSource, opts *Options) (*bitutil.BitMatrix, error)
}
