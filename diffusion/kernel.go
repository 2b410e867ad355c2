// Package diffusion implements Floyd-Steinberg error diffusion over an
// integer sample grid.
//
// Cells are visited in raster order: rows top to bottom, each row left to
// right. A visited cell is quantized to 0 or 255 and its quantization error
// is pushed to the four neighbours listed in Taps that have not been
// visited yet. Every contribution is floor((qerr * weight) / Denominator),
// rounding toward negative infinity, and contributions that would land
// outside the grid are dropped.
package diffusion

import "github.com/ericlevine/dithergo/bitutil"

// Denominator divides every tap weight.
const Denominator = 16

// Tap is one entry of the diffusion kernel: the target offset relative to
// the cell being quantized and the share of the error, in 16ths, it receives.
type Tap struct {
	DX, DY int
	Weight int32
}

var taps = [4]Tap{
	{DX: 1, DY: 0, Weight: 7},
	{DX: -1, DY: 1, Weight: 3},
	{DX: 0, DY: 1, Weight: 5},
	{DX: 1, DY: 1, Weight: 1},
}

// Taps returns the Floyd-Steinberg kernel in application order.
func Taps() [4]Tap {
	return taps
}

// floorDiv returns floor(a / Denominator).
func floorDiv(a int32) int32 {
	q := a / Denominator
	if a%Denominator != 0 && a < 0 {
		q--
	}
	return q
}

// quantize maps a sample to its output level.
func quantize(old int32, threshold int32) int32 {
	if old > threshold {
		return 255
	}
	return 0
}

// step quantizes the cell (x, y) of a width x height grid stored row-major
// in samples, records the result in out and spreads the error.
func step(samples []int32, width, height, x, y int, threshold int32, out *bitutil.BitMatrix) {
	i := y*width + x
	old := samples[i]
	level := quantize(old, threshold)
	if level != 0 {
		out.Set(x, y)
	}
	qerr := old - level
	if qerr == 0 {
		return
	}

	right := x+1 < width
	below := y+1 < height
	if right {
		samples[i+1] += floorDiv(qerr * taps[0].Weight)
	}
	if below {
		if x > 0 {
			samples[i+width-1] += floorDiv(qerr * taps[1].Weight)
		}
		samples[i+width] += floorDiv(qerr * taps[2].Weight)
		if right {
			samples[i+width+1] += floorDiv(qerr * taps[3].Weight)
		}
	}
}
