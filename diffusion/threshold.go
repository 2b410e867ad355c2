package diffusion

import (
	"context"
	"fmt"

	dithergo "github.com/ericlevine/dithergo"
	"github.com/ericlevine/dithergo/bitutil"
)

// Threshold binarizes without diffusing any error: a pixel is white exactly
// when its luminance exceeds the threshold.
type Threshold struct{}

// NewThreshold creates a new Threshold ditherer.
func NewThreshold() *Threshold {
	return &Threshold{}
}

// Dither implements dithergo.Ditherer.
func (t *Threshold) Dither(ctx context.Context, source dithergo.LuminanceSource, opts *dithergo.Options) (*bitutil.BitMatrix, error) {
	threshold, err := opts.ThresholdValue()
	if err != nil {
		return nil, err
	}
	width, height := source.Width(), source.Height()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("source %dx%d: %w", width, height, dithergo.ErrInvalidDimensions)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := bitutil.NewBitMatrix(width, height)
	row := make([]byte, width)
	bits := bitutil.NewBitArray(width)
	for y := 0; y < height; y++ {
		row = source.Row(y, row)
		bits.Clear()
		for x := 0; x < width; x++ {
			if int(row[x]) > threshold {
				bits.Set(x)
			}
		}
		out.SetRow(y, bits)
		if opts != nil && opts.RowDone != nil {
			opts.RowDone(y)
		}
	}
	return out, nil
}
