package bench

import (
	"context"
	"errors"
	"image"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	dithergo "github.com/ericlevine/dithergo"
	"github.com/ericlevine/dithergo/bitutil"
)

func TestGradient(t *testing.T) {
	g, err := Gradient(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0, 31, 63, 95,
		31, 63, 95, 127,
		63, 95, 127, 159,
		95, 127, 159, 191,
	}
	if diff := cmp.Diff(want, g.Matrix()); diff != "" {
		t.Errorf("gradient mismatch (-want +got):\n%s", diff)
	}
	if _, err := Gradient(0, 4); !errors.Is(err, dithergo.ErrInvalidDimensions) {
		t.Errorf("Gradient(0, 4): err = %v, want ErrInvalidDimensions", err)
	}
}

func TestExecute(t *testing.T) {
	var rows atomic.Int64
	var labels []string
	cfg := Config{
		Width:      48,
		Height:     20,
		MaxWorkers: 3,
		Label:      func(name string) { labels = append(labels, name) },
		RowDone:    func(int) { rows.Add(1) },
	}
	rep, err := Execute(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Parallel) != 3 {
		t.Fatalf("got %d parallel runs, want 3", len(rep.Parallel))
	}
	for i, r := range rep.Parallel {
		if r.Workers != i+1 {
			t.Errorf("run %d: Workers = %d", i, r.Workers)
		}
		if !r.Verified {
			t.Errorf("run %d: output differs from sequential at %v", i, r.Mismatch)
		}
	}
	if rep.Input == nil || rep.Input.Width() != 48 || rep.Input.Height() != 20 {
		t.Errorf("Input = %v, want the 48x20 gradient", rep.Input)
	}
	if got := rows.Load(); got != 4*20 {
		t.Errorf("RowDone called %d times, want %d", got, 4*20)
	}
	wantLabels := []string{"Sequential", "Parallel (1T)", "Parallel (2T)", "Parallel (3T)"}
	if diff := cmp.Diff(wantLabels, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestFirstMismatch(t *testing.T) {
	want := bitutil.NewBitMatrix(40, 3)
	want.Set(5, 0)
	got := want.Clone()
	if p, ok := firstMismatch(want, got); !ok || p != (image.Point{}) {
		t.Errorf("identical matrices: got %v, %v", p, ok)
	}
	got.Set(35, 2)
	got.Set(36, 1)
	if p, ok := firstMismatch(want, got); ok || p != image.Pt(36, 1) {
		t.Errorf("firstMismatch = %v, %v, want (36,1), false", p, ok)
	}
	if want.CountSet() != 1 || !want.Get(5, 0) {
		t.Error("firstMismatch modified its input")
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var labels []string
	cfg := Config{
		Width:      16,
		Height:     16,
		MaxWorkers: 2,
		Label:      func(name string) { labels = append(labels, name) },
	}
	if _, err := Execute(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(labels) != 1 {
		t.Errorf("ran %v after cancellation, want only the first run attempted", labels)
	}
}

func TestExecuteErrors(t *testing.T) {
	bad := 256
	if _, err := Execute(context.Background(), Config{Width: 4, Height: 4, Threshold: &bad}); !errors.Is(err, dithergo.ErrInvalidThreshold) {
		t.Errorf("err = %v, want ErrInvalidThreshold", err)
	}
	if _, err := Execute(context.Background(), Config{Width: 4}); !errors.Is(err, dithergo.ErrInvalidDimensions) {
		t.Errorf("err = %v, want ErrInvalidDimensions", err)
	}
}

func TestWriteCSV(t *testing.T) {
	rep := &Report{
		Sequential: Run{Elapsed: 100 * time.Millisecond, Verified: true},
		Parallel: []Run{
			{Workers: 1, Elapsed: 120 * time.Millisecond},
			{Workers: 2, Elapsed: 50 * time.Millisecond},
			{Workers: 3},
		},
	}
	var sb strings.Builder
	if err := WriteCSV(&sb, rep); err != nil {
		t.Fatal(err)
	}
	want := "Threads,Time_ms,Speedup,Type\n" +
		"1,100,1.00,Sequential\n" +
		"1,120,0.83,Parallel_Overhead\n" +
		"2,50,2.00,Parallel\n" +
		"3,0,0.00,Parallel\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}
