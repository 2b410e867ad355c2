package diffusion

import (
	"fmt"

	dithergo "github.com/ericlevine/dithergo"
)

// Grid is a mutable row-major buffer of signed samples. Samples start out
// as luminances in [0, 255] and drift outside that range while error is
// diffused into them; they are never clamped.
type Grid struct {
	width   int
	height  int
	samples []int32
}

// NewGrid returns a zeroed grid of the given size.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", width, height, dithergo.ErrInvalidDimensions)
	}
	return &Grid{
		width:   width,
		height:  height,
		samples: make([]int32, width*height),
	}, nil
}

// NewGridFromSamples returns a grid holding a copy of samples, which must
// have exactly width*height entries.
func NewGridFromSamples(width, height int, samples []int32) (*Grid, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	if len(samples) != len(g.samples) {
		return nil, fmt.Errorf("grid %dx%d: got %d samples: %w",
			width, height, len(samples), dithergo.ErrInvalidDimensions)
	}
	copy(g.samples, samples)
	return g, nil
}

// GridFromLuminance copies the luminance values of source into a new grid.
func GridFromLuminance(source dithergo.LuminanceSource) (*Grid, error) {
	g, err := NewGrid(source.Width(), source.Height())
	if err != nil {
		return nil, err
	}
	lum := source.Matrix()
	if len(lum) != len(g.samples) {
		return nil, fmt.Errorf("source %dx%d: got %d luminances: %w",
			g.width, g.height, len(lum), dithergo.ErrInvalidDimensions)
	}
	for i, v := range lum {
		g.samples[i] = int32(v)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the sample at (x, y).
func (g *Grid) At(x, y int) int32 {
	return g.samples[y*g.width+x]
}

// Set stores v at (x, y).
func (g *Grid) Set(x, y int, v int32) {
	g.samples[y*g.width+x] = v
}

// Samples returns the row-major backing slice. It aliases the grid.
func (g *Grid) Samples() []int32 {
	return g.samples
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	s := make([]int32, len(g.samples))
	copy(s, g.samples)
	return &Grid{width: g.width, height: g.height, samples: s}
}
