package diffusion

import (
	"context"

	dithergo "github.com/ericlevine/dithergo"
	"github.com/ericlevine/dithergo/bitutil"
)

// Diffuse dithers work in place. Every cell of work is quantized against
// threshold in raster order and the result is written to out, which must
// have the same size as work.
//
// After Diffuse returns, each cell of work holds the exact value it was
// quantized from: a cell only receives error before it is visited.
// The only error is an out-of-range threshold, detected before any cell is
// touched.
func Diffuse(work *Grid, threshold int, out *bitutil.BitMatrix) error {
	if err := dithergo.ValidateThreshold(threshold); err != nil {
		return err
	}
	return diffuseRows(context.Background(), work, threshold, out, nil)
}

// diffuseRows checks ctx before every row.
func diffuseRows(ctx context.Context, work *Grid, threshold int, out *bitutil.BitMatrix, rowDone func(int)) error {
	mustMatch(work, out)
	t := int32(threshold)
	for y := 0; y < work.height; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := 0; x < work.width; x++ {
			step(work.samples, work.width, work.height, x, y, t, out)
		}
		if rowDone != nil {
			rowDone(y)
		}
	}
	return nil
}

func mustMatch(work *Grid, out *bitutil.BitMatrix) {
	if out.Width() != work.width || out.Height() != work.height {
		panic("diffusion: output size does not match grid")
	}
}

// Sequential is the reference Floyd-Steinberg ditherer. It visits one cell
// at a time on the calling goroutine.
type Sequential struct{}

// NewSequential creates a new Sequential ditherer.
func NewSequential() *Sequential {
	return &Sequential{}
}

// Dither implements dithergo.Ditherer. The context is checked before each
// row.
func (s *Sequential) Dither(ctx context.Context, source dithergo.LuminanceSource, opts *dithergo.Options) (*bitutil.BitMatrix, error) {
	threshold, err := opts.ThresholdValue()
	if err != nil {
		return nil, err
	}
	work, err := GridFromLuminance(source)
	if err != nil {
		return nil, err
	}
	out := bitutil.NewBitMatrix(work.width, work.height)
	var rowDone func(int)
	if opts != nil {
		rowDone = opts.RowDone
	}
	if err := diffuseRows(ctx, work, threshold, out, rowDone); err != nil {
		return nil, err
	}
	return out, nil
}
