package dithergo

import (
	"image"
	"image/color"
)

// ImageLuminanceSource is a LuminanceSource implementation that holds the
// greyscale luminance of a Go image.Image.
type ImageLuminanceSource struct {
	luminances []byte
	width      int
	height     int
}

// NewImageLuminanceSource creates a LuminanceSource from a Go image.Image.
// The image is converted to greyscale luminance values upon construction
// with the ITU-R 601-2 luma transform in 16-bit fixed point:
// (19595*R + 38470*G + 7471*B + 0x8000) >> 16, on non-premultiplied 8-bit
// color components. Alpha is discarded, so a transparent pixel keeps the
// luminance of its stored color. *image.Gray images are used as they are.
func NewImageLuminanceSource(img image.Image) *ImageLuminanceSource {
	if g, ok := img.(*image.Gray); ok {
		return NewGrayImageLuminanceSource(g)
	}
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	luminances := make([]byte, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			luminances[y*w+x] = luma(c.R, c.G, c.B)
		}
	}

	return &ImageLuminanceSource{
		luminances: luminances,
		width:      w,
		height:     h,
	}
}

func luma(r, g, b uint8) byte {
	return byte((19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 0x8000) >> 16)
}

// NewGrayImageLuminanceSource creates a LuminanceSource from a *image.Gray,
// using the pixel data directly without conversion.
func NewGrayImageLuminanceSource(img *image.Gray) *ImageLuminanceSource {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	luminances := make([]byte, w*h)
	if img.Stride == w && bounds.Min.X == 0 && bounds.Min.Y == 0 {
		copy(luminances, img.Pix[:w*h])
	} else {
		for y := 0; y < h; y++ {
			srcOff := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(luminances[y*w:], img.Pix[srcOff:srcOff+w])
		}
	}
	return &ImageLuminanceSource{
		luminances: luminances,
		width:      w,
		height:     h,
	}
}

// NewLuminanceSource creates a LuminanceSource of the given size from
// row-major luminance values. It panics if len(luminances) != width*height.
func NewLuminanceSource(width, height int, luminances []byte) *ImageLuminanceSource {
	if width < 0 || height < 0 || len(luminances) != width*height {
		panic("dithergo: luminance data does not match dimensions")
	}
	lum := make([]byte, len(luminances))
	copy(lum, luminances)
	return &ImageLuminanceSource{
		luminances: lum,
		width:      width,
		height:     height,
	}
}

// Row returns a row of luminance data.
func (s *ImageLuminanceSource) Row(y int, row []byte) []byte {
	if y < 0 || y >= s.height {
		return nil
	}
	if row == nil || len(row) < s.width {
		row = make([]byte, s.width)
	}
	offset := y * s.width
	copy(row, s.luminances[offset:offset+s.width])
	return row
}

// Matrix returns the entire luminance matrix.
func (s *ImageLuminanceSource) Matrix() []byte {
	result := make([]byte, len(s.luminances))
	copy(result, s.luminances)
	return result
}

// Width returns the width of the image.
func (s *ImageLuminanceSource) Width() int {
	return s.width
}

// Height returns the height of the image.
func (s *ImageLuminanceSource) Height() int {
	return s.height
}

// Gray returns the luminance data as a greyscale image.
func (s *ImageLuminanceSource) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, s.luminances)
	return img
}

// Monochrome is the palette of images produced by BitMatrixToImage.
// PNG and GIF encoders store such images with one bit per pixel.
var Monochrome = color.Palette{color.Black, color.White}

// BitMatrixToImage converts a dithering result to a two-color paletted
// image: set bits are white and unset bits are black.
func BitMatrixToImage(matrix interface {
	Width() int
	Height() int
	Get(x, y int) bool
}) *image.Paletted {
	w := matrix.Width()
	h := matrix.Height()
	img := image.NewPaletted(image.Rect(0, 0, w, h), Monochrome)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		for x := range row {
			if matrix.Get(x, y) {
				row[x] = 1
			}
		}
	}
	return img
}
