// Package bench times sequential error diffusion against the wavefront
// variant and checks that both produce the same image.
package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"image"
	"io"
	"runtime"
	"strconv"
	"time"

	dithergo "github.com/ericlevine/dithergo"
	"github.com/ericlevine/dithergo/bitutil"
	_ "github.com/ericlevine/dithergo/diffusion"
)

// Config selects the benchmark workload.
type Config struct {
	Width, Height int

	// MaxWorkers is the largest worker count tried. Zero or less selects
	// runtime.NumCPU().
	MaxWorkers int

	// Threshold is passed to every run. If nil, dithergo.DefaultThreshold
	// is used.
	Threshold *int

	// Label, if non-nil, is called before each run with its name.
	Label func(name string)

	// RowDone, if non-nil, is called after every quantized row of every
	// run, possibly from several goroutines.
	RowDone func(y int)
}

// Run is the outcome of one timed run.
type Run struct {
	Workers  int // 0 for the sequential run
	Elapsed  time.Duration
	Verified bool
	// Mismatch is the first pixel, in raster order, that differs from the
	// sequential output. Only meaningful when Verified is false.
	Mismatch image.Point
	Output   *bitutil.BitMatrix
}

// Report collects the runs of one benchmark.
type Report struct {
	Width, Height int
	// Input is the gradient every run dithered.
	Input      *dithergo.ImageLuminanceSource
	Sequential Run
	Parallel   []Run
}

// Speedup returns how many times faster r was than the sequential run, or
// 0 if r took no measurable time.
func (rep *Report) Speedup(r Run) float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(rep.Sequential.Elapsed) / float64(r.Elapsed)
}

// Gradient returns a width x height image whose luminance rises linearly
// from 0 at the top-left corner toward 255 at the bottom-right one.
func Gradient(width, height int) (*dithergo.ImageLuminanceSource, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gradient %dx%d: %w", width, height, dithergo.ErrInvalidDimensions)
	}
	lum := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			lum[y*width+x] = byte(float32(x+y) / float32(width+height) * 255)
		}
	}
	return dithergo.NewLuminanceSource(width, height, lum), nil
}

// Execute runs the benchmark described by cfg: one sequential run that
// serves as ground truth, then one wavefront run per worker count from 1
// to cfg.MaxWorkers.
func Execute(ctx context.Context, cfg Config) (*Report, error) {
	src, err := Gradient(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	opts := &dithergo.Options{Threshold: cfg.Threshold}
	if _, err := opts.ThresholdValue(); err != nil {
		return nil, err
	}
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	rep := &Report{Width: cfg.Width, Height: cfg.Height, Input: src}
	seq, err := timed(ctx, src, cfg, "Sequential", dithergo.MethodFloydSteinberg, 0)
	if err != nil {
		return nil, err
	}
	seq.Verified = true
	rep.Sequential = seq

	for workers := 1; workers <= maxWorkers; workers++ {
		run, err := timed(ctx, src, cfg, fmt.Sprintf("Parallel (%dT)", workers), dithergo.MethodWavefront, workers)
		if err != nil {
			return nil, err
		}
		run.Mismatch, run.Verified = firstMismatch(seq.Output, run.Output)
		rep.Parallel = append(rep.Parallel, run)
	}
	return rep, nil
}

func timed(ctx context.Context, src dithergo.LuminanceSource, cfg Config, name string, method dithergo.Method, workers int) (Run, error) {
	if cfg.Label != nil {
		cfg.Label(name)
	}
	opts := &dithergo.Options{
		Threshold: cfg.Threshold,
		Workers:   workers,
		RowDone:   cfg.RowDone,
	}
	start := time.Now()
	out, err := dithergo.Dither(ctx, src, method, opts)
	if err != nil {
		return Run{}, fmt.Errorf("%s: %w", name, err)
	}
	return Run{Workers: workers, Elapsed: time.Since(start), Output: out}, nil
}

func firstMismatch(want, got *bitutil.BitMatrix) (image.Point, bool) {
	if want.Equals(got) {
		return image.Point{}, true
	}
	diff := want.Clone()
	diff.Xor(got)
	var row *bitutil.BitArray
	for y := 0; y < diff.Height(); y++ {
		row = diff.Row(y, row)
		for x := 0; x < diff.Width(); x++ {
			if row.Get(x) {
				return image.Pt(x, y), false
			}
		}
	}
	return image.Point{}, false
}

// WriteCSV writes rep as CSV with the columns Threads, Time_ms, Speedup and
// Type. The sequential run is listed first as one thread with speedup 1.
func WriteCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	records := [][]string{
		{"Threads", "Time_ms", "Speedup", "Type"},
		{"1", millis(rep.Sequential.Elapsed), "1.00", "Sequential"},
	}
	for _, r := range rep.Parallel {
		kind := "Parallel"
		if r.Workers == 1 {
			kind = "Parallel_Overhead"
		}
		records = append(records, []string{
			strconv.Itoa(r.Workers),
			millis(r.Elapsed),
			strconv.FormatFloat(rep.Speedup(r), 'f', 2, 64),
			kind,
		})
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}
