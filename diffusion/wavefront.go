package diffusion

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	dithergo "github.com/ericlevine/dithergo"
	"github.com/ericlevine/dithergo/bitutil"
)

// lag is how many cells of the row above must be finished, beyond the
// current column, before a cell may be quantized. Two are required because
// cell (x, y) receives error from (x+1, y-1). The third keeps the rows'
// writes on disjoint cells, so samples need no atomic access.
const lag = 3

// DiffuseWavefront computes the same result as Diffuse, including the final
// contents of work, using several goroutines. Row y is handled by worker
// y mod workers; a cell is quantized only once the row above has finished
// the cells it depends on, so the rows advance as a staggered wavefront.
//
// workers <= 0 selects runtime.GOMAXPROCS(0). If ctx is cancelled the
// contents of work and out are undefined and ctx.Err() is returned.
func DiffuseWavefront(ctx context.Context, work *Grid, threshold, workers int, out *bitutil.BitMatrix) error {
	return diffuseWavefront(ctx, work, threshold, workers, out, nil)
}

func diffuseWavefront(ctx context.Context, work *Grid, threshold, workers int, out *bitutil.BitMatrix, rowDone func(int)) error {
	if err := dithergo.ValidateThreshold(threshold); err != nil {
		return err
	}
	mustMatch(work, out)
	workers = workerCount(workers, work.height)

	progress := make([]atomic.Int32, work.height)
	t := int32(threshold)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for y := w; y < work.height; y += workers {
				if err := wavefrontRow(ctx, work, y, t, out, progress); err != nil {
					return err
				}
				if rowDone != nil {
					rowDone(y)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func workerCount(workers, height int) int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return min(workers, height)
}

// wavefrontRow quantizes row y, publishing its progress cell by cell.
func wavefrontRow(ctx context.Context, work *Grid, y int, threshold int32, out *bitutil.BitMatrix, progress []atomic.Int32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	width := work.width
	done := &progress[y]
	ready := width
	var above *atomic.Int32
	if y > 0 {
		above = &progress[y-1]
		ready = int(above.Load())
	}
	for x := 0; x < width; x++ {
		if need := min(x+lag, width); ready < need {
			var err error
			if ready, err = waitFor(ctx, above, need); err != nil {
				return err
			}
		}
		step(work.samples, width, work.height, x, y, threshold, out)
		done.Store(int32(x + 1))
	}
	return nil
}

// waitFor spins until p reaches need and returns the value it saw.
func waitFor(ctx context.Context, p *atomic.Int32, need int) (int, error) {
	for spins := 1; ; spins++ {
		if n := int(p.Load()); n >= need {
			return n, nil
		}
		if spins&0xff == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		runtime.Gosched()
	}
}

// Wavefront is a ditherer that spreads rows over several goroutines. Its
// output is identical to Sequential.
type Wavefront struct{}

// NewWavefront creates a new Wavefront ditherer.
func NewWavefront() *Wavefront {
	return &Wavefront{}
}

// Dither implements dithergo.Ditherer. opts.Workers selects the number of
// goroutines.
func (w *Wavefront) Dither(ctx context.Context, source dithergo.LuminanceSource, opts *dithergo.Options) (*bitutil.BitMatrix, error) {
	threshold, err := opts.ThresholdValue()
	if err != nil {
		return nil, err
	}
	work, err := GridFromLuminance(source)
	if err != nil {
		return nil, err
	}
	out := bitutil.NewBitMatrix(work.width, work.height)
	var (
		workers int
		rowDone func(int)
	)
	if opts != nil {
		workers = opts.Workers
		rowDone = opts.RowDone
	}
	if err := diffuseWavefront(ctx, work, threshold, workers, out, rowDone); err != nil {
		return nil, err
	}
	return out, nil
}
