package imageio

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	dithergo "github.com/ericlevine/dithergo"
	"github.com/ericlevine/dithergo/bitutil"
)

func checkerboard(width, height int) *bitutil.BitMatrix {
	m := bitutil.NewBitMatrix(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/4+y/4)%2 == 0 {
				m.Set(x, y)
			}
		}
	}
	return m
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := checkerboard(24, 16)
	img := dithergo.BitMatrixToImage(want)

	for _, ext := range Extensions() {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "out"+ext)
			if err := Save(path, img); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Bounds() != image.Rect(0, 0, 24, 16) {
				t.Fatalf("bounds = %v", got.Bounds())
			}
			// JPEG is lossy, so compare after thresholding at mid-grey.
			src := dithergo.NewImageLuminanceSource(got)
			lum := src.Matrix()
			for y := 0; y < 16; y++ {
				for x := 0; x < 24; x++ {
					white := lum[y*24+x] > 128
					if white != want.Get(x, y) {
						t.Fatalf("pixel (%d, %d): luminance %d, want white=%v", x, y, lum[y*24+x], want.Get(x, y))
					}
				}
			}
		})
	}
}

func TestExtensions(t *testing.T) {
	want := []string{".bmp", ".gif", ".jpeg", ".jpg", ".png", ".tif", ".tiff"}
	if diff := cmp.Diff(want, Extensions()); diff != "" {
		t.Errorf("Extensions() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveUppercaseExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "OUT.PNG")
	if err := Save(path, dithergo.BitMatrixToImage(checkerboard(8, 8))); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestSaveErrors(t *testing.T) {
	img := dithergo.BitMatrixToImage(checkerboard(8, 8))
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "out.xyz"),
		filepath.Join(dir, "noext"),
		filepath.Join(dir, "missing", "out.png"),
	}
	for _, path := range paths {
		if err := Save(path, img); !errors.Is(err, dithergo.ErrWriteFailure) {
			t.Errorf("Save(%q): err = %v, want ErrWriteFailure", path, err)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{filepath.Join(dir, "does-not-exist.png"), garbage} {
		if _, err := Load(path); !errors.Is(err, dithergo.ErrUnreadableInput) {
			t.Errorf("Load(%q): err = %v, want ErrUnreadableInput", path, err)
		}
	}
}
