// Package imageio loads and saves images by file path.
//
// Decoding accepts every format registered with the image package; this
// package registers PNG, GIF, JPEG, BMP, TIFF and WebP. Encoding is chosen
// by file extension.
package imageio

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	dithergo "github.com/ericlevine/dithergo"
)

// EncodeFunc writes img to w in some image format.
type EncodeFunc func(w io.Writer, img image.Image) error

var encoders = map[string]EncodeFunc{}

// RegisterEncoder registers an encoder for files with the given extension,
// including the leading dot. Extensions are matched case-insensitively.
func RegisterEncoder(ext string, enc EncodeFunc) {
	encoders[strings.ToLower(ext)] = enc
}

// Extensions returns the registered output extensions in sorted order.
func Extensions() []string {
	exts := maps.Keys(encoders)
	slices.Sort(exts)
	return exts
}

func init() {
	RegisterEncoder(".png", png.Encode)
	RegisterEncoder(".gif", func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, nil)
	})
	jpegEncode := func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	}
	RegisterEncoder(".jpg", jpegEncode)
	RegisterEncoder(".jpeg", jpegEncode)
	RegisterEncoder(".bmp", bmp.Encode)
	tiffEncode := func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	RegisterEncoder(".tif", tiffEncode)
	RegisterEncoder(".tiff", tiffEncode)
}

// Load opens and decodes the image at path. Failures wrap
// dithergo.ErrUnreadableInput.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dithergo.ErrUnreadableInput, err)
	}
	defer f.Close()
	return Decode(f, path)
}

// Decode decodes an image from r. name is only used in error messages.
func Decode(r io.Reader, name string) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", dithergo.ErrUnreadableInput, name, err)
	}
	return img, nil
}

// Save encodes img in the format selected by the extension of path and
// writes it to path. Failures wrap dithergo.ErrWriteFailure.
func Save(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := encoders[ext]
	if !ok {
		return fmt.Errorf("%w: %s: unsupported output format %q (want one of %s)",
			dithergo.ErrWriteFailure, path, ext, strings.Join(Extensions(), ", "))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", dithergo.ErrWriteFailure, err)
	}
	if err := enc(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%w: encode %s: %w", dithergo.ErrWriteFailure, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", dithergo.ErrWriteFailure, err)
	}
	return nil
}
