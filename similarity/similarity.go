// Package similarity compares two 1-bit rasters bit by bit.
package similarity

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ericlevine/dithergo/bitutil"
)

// ErrDimensionMismatch is returned when the compared rasters differ in size.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DiffColor marks differing pixels in Render.
var DiffColor = color.RGBA{R: 0xFF, A: 0xFF}

// Result describes how two rasters compare.
type Result struct {
	// Matching is the number of pixels with equal values.
	Matching int
	// Total is the number of pixels compared.
	Total int
	// Diff has a bit set wherever the rasters differ.
	Diff *bitutil.BitMatrix
}

// Ratio returns the fraction of matching pixels, in [0, 1].
func (r *Result) Ratio() float64 {
	return float64(r.Matching) / float64(r.Total)
}

// String formats the ratio as a percentage.
func (r *Result) String() string {
	return fmt.Sprintf("Similarity: %.2f%%", r.Ratio()*100)
}

// Compare compares a and b pixel by pixel.
func Compare(a, b *bitutil.BitMatrix) (*Result, error) {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return nil, fmt.Errorf("%dx%d vs %dx%d: %w",
			a.Width(), a.Height(), b.Width(), b.Height(), ErrDimensionMismatch)
	}
	diff := a.Clone()
	diff.Xor(b)
	differing := diff.CountSet()
	total := a.Width() * a.Height()
	return &Result{
		Matching: total - differing,
		Total:    total,
		Diff:     diff,
	}, nil
}

// Render draws base in black and white and paints every pixel set in diff
// with DiffColor.
func Render(base, diff *bitutil.BitMatrix) *image.RGBA {
	w, h := base.Width(), base.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{A: 0xFF}
			switch {
			case diff != nil && diff.Get(x, y):
				c = DiffColor
			case base.Get(x, y):
				c = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
