// Package binarizer estimates a global black/white threshold from an image's
// luminance histogram.
package binarizer

import (
	"errors"
	"slices"

	dithergo "github.com/ericlevine/dithergo"
)

const (
	luminanceBits    = 5
	luminanceShift   = 8 - luminanceBits
	luminanceBuckets = 1 << luminanceBits
)

// ErrNoValley is returned when the histogram has no two peaks far enough apart
// to place a threshold between them.
var ErrNoValley = errors.New("binarizer: luminance histogram is not bimodal")

// Histogram buckets the luminance of every pixel of source into 32 bins.
func Histogram(source dithergo.LuminanceSource) [luminanceBuckets]int {
	var buckets [luminanceBuckets]int
	row := make([]byte, source.Width())
	for y := 0; y < source.Height(); y++ {
		row = source.Row(y, row)
		for _, v := range row {
			buckets[int(v)>>luminanceShift]++
		}
	}
	return buckets
}

// EstimateThreshold picks the deepest valley between the two dominant peaks
// of the luminance histogram and returns it as a threshold usable in
// dithergo.Options: pixels brighter than the result lie on the light side of
// the valley. A histogram with a single populated bucket, or with its peaks
// at most two buckets apart, yields ErrNoValley.
func EstimateThreshold(source dithergo.LuminanceSource) (int, error) {
	buckets := Histogram(source)
	lo, hi, ok := peaks(buckets[:])
	if !ok || hi-lo <= minPeakDistance {
		return 0, ErrNoValley
	}
	return deepestValley(buckets[:], lo, hi)<<luminanceShift - 1, nil
}

// minPeakDistance is the bucket distance two peaks must exceed.
const minPeakDistance = luminanceBuckets / 16

// peaks returns the tallest bucket and the bucket whose count, weighted by
// its squared distance from the tallest, is largest, in ascending order.
// ok is false when no second bucket is populated.
func peaks(buckets []int) (lo, hi int, ok bool) {
	first := 0
	for i, n := range buckets {
		if n > buckets[first] {
			first = i
		}
	}
	second, best := -1, 0
	for i, n := range buckets {
		d := i - first
		if score := n * d * d; score > best {
			second, best = i, score
		}
	}
	if second < 0 {
		return 0, 0, false
	}
	return min(first, second), max(first, second), true
}

// deepestValley scores every bucket strictly between lo and hi by its
// distance from both peaks and by how empty it is, and returns the best.
func deepestValley(buckets []int, lo, hi int) int {
	tallest := slices.Max(buckets)
	valley, best := hi-1, -1
	for i := hi - 1; i > lo; i-- {
		fromLo := i - lo
		score := fromLo * fromLo * (hi - i) * (tallest - buckets[i])
		if score > best {
			valley, best = i, score
		}
	}
	return valley
}
