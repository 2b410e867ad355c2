package dithergo

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestImageLuminanceSourceLuma(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 7, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(3, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetNRGBA(4, 0, color.NRGBA{R: 90, G: 90, B: 90, A: 128})
	img.SetNRGBA(5, 0, color.NRGBA{R: 10, G: 20, B: 30})
	img.SetNRGBA(6, 0, color.NRGBA{})

	src := NewImageLuminanceSource(img)
	// Alpha is ignored: transparent pixels keep the luminance of their color.
	want := []byte{76, 150, 29, 255, 90, 18, 0}
	got := src.Row(0, nil)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d: luminance %d, want %d", i, got[i], want[i])
		}
	}
}

func TestGrayImageLuminanceSource(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 3))
	for i := range img.Pix {
		img.Pix[i] = byte(i * 10)
	}
	src := NewImageLuminanceSource(img)
	if src.Width() != 4 || src.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", src.Width(), src.Height())
	}
	m := src.Matrix()
	for i := range m {
		if m[i] != byte(i*10) {
			t.Fatalf("Matrix()[%d] = %d, want %d", i, m[i], i*10)
		}
	}

	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)
	subSrc := NewGrayImageLuminanceSource(sub)
	want := []byte{50, 60, 90, 100}
	got := subSrc.Matrix()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sub-image Matrix()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if row := subSrc.Row(2, nil); row != nil {
		t.Errorf("Row out of range = %v, want nil", row)
	}
}

func TestLuminanceSourceCopies(t *testing.T) {
	lum := []byte{1, 2, 3, 4}
	src := NewLuminanceSource(2, 2, lum)
	lum[0] = 99
	if src.Matrix()[0] != 1 {
		t.Error("source should not alias its input")
	}
	m := src.Matrix()
	m[1] = 99
	if src.Matrix()[1] != 2 {
		t.Error("Matrix should return a copy")
	}
	if g := src.Gray(); g.GrayAt(1, 1).Y != 4 {
		t.Errorf("Gray().GrayAt(1, 1) = %d, want 4", g.GrayAt(1, 1).Y)
	}

	defer func() {
		if recover() == nil {
			t.Error("NewLuminanceSource with short data should panic")
		}
	}()
	NewLuminanceSource(3, 3, lum)
}

type fakeMatrix struct {
	w, h int
	on   map[image.Point]bool
}

func (m fakeMatrix) Width() int { return m.w }

func (m fakeMatrix) Height() int { return m.h }

func (m fakeMatrix) Get(x, y int) bool { return m.on[image.Pt(x, y)] }

func TestBitMatrixToImage(t *testing.T) {
	m := fakeMatrix{w: 3, h: 2, on: map[image.Point]bool{{0, 0}: true, {2, 1}: true}}
	img := BitMatrixToImage(m)
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := color.Gray{}
			if m.Get(x, y) {
				want = color.Gray{Y: 255}
			}
			if got := color.GrayModel.Convert(img.At(x, y)); got != want {
				t.Errorf("(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if len(img.Palette) != 2 {
		t.Errorf("palette has %d colors, want 2", len(img.Palette))
	}
}

func TestOptionsThresholdValue(t *testing.T) {
	val := func(v int) *int { return &v }
	tests := []struct {
		opts    *Options
		want    int
		wantErr bool
	}{
		{nil, DefaultThreshold, false},
		{&Options{}, DefaultThreshold, false},
		{&Options{Threshold: val(0)}, 0, false},
		{&Options{Threshold: val(255)}, 255, false},
		{&Options{Threshold: val(-1)}, 0, true},
		{&Options{Threshold: val(256)}, 0, true},
	}
	for i, tc := range tests {
		got, err := tc.opts.ThresholdValue()
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidThreshold) {
				t.Errorf("case %d: err = %v, want ErrInvalidThreshold", i, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("case %d: ThresholdValue() = %d, %v; want %d", i, got, err, tc.want)
		}
	}
}

func TestMethodString(t *testing.T) {
	for m, want := range map[Method]string{
		MethodFloydSteinberg: "FLOYD_STEINBERG",
		MethodWavefront:      "WAVEFRONT",
		MethodThreshold:      "THRESHOLD",
		Method(42):           "UNKNOWN",
	} {
		if got := m.String(); got != want {
			t.Errorf("Method(%d).String() = %q, want %q", int(m), got, want)
		}
	}
}
