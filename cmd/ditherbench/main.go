// Command ditherbench times sequential Floyd-Steinberg dithering of a
// synthetic gradient against the wavefront variant at increasing worker
// counts, verifies that every run produces the same image and exports the
// timings as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	dithergo "github.com/ericlevine/dithergo"
	"github.com/ericlevine/dithergo/bench"
	"github.com/ericlevine/dithergo/imageio"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("ditherbench: ")

	width := flag.Int("width", 4096, "gradient width in pixels")
	height := flag.Int("height", 4096, "gradient height in pixels")
	maxWorkers := flag.Int("max-workers", runtime.NumCPU(), "largest worker count to try")
	threshold := flag.Int("threshold", dithergo.DefaultThreshold, "luminance a pixel must exceed to become white (0-255)")
	csvPath := flag.String("csv", "results.csv", "file to write the timings to")
	outDir := flag.String("out", "", "if set, save the output image of every run to this directory")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ditherbench [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Benchmark sequential against wavefront error diffusion.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := bench.Config{
		Width:      *width,
		Height:     *height,
		MaxWorkers: *maxWorkers,
		Threshold:  threshold,
	}

	var prog *progress
	if term.IsTerminal(int(os.Stderr.Fd())) {
		prog = &progress{total: *height}
		cfg.Label = prog.start
		cfg.RowDone = func(int) { prog.rows.Add(1) }
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	progCtx, stopProgress := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		if prog != nil {
			prog.loop(progCtx)
		}
		close(done)
	}()
	rep, err := bench.Execute(ctx, cfg)
	stopProgress()
	<-done
	if err != nil {
		log.Fatal(err)
	}

	ok := summarize(rep)

	f, err := os.Create(*csvPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := bench.WriteCSV(f, rep); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nBenchmark results exported to %s\n", *csvPath)

	if *outDir != "" {
		if err := saveOutputs(*outDir, rep); err != nil {
			log.Fatal(err)
		}
	}
	if !ok {
		os.Exit(1)
	}
}

// summarize prints the timing table and reports whether every parallel run
// matched the sequential one.
func summarize(rep *bench.Report) bool {
	p := message.NewPrinter(language.English)
	p.Printf("\nImage size: %dx%d (%d pixels)\n", rep.Width, rep.Height, rep.Width*rep.Height)
	p.Printf("Sequential time: %d ms (1.00x)\n", rep.Sequential.Elapsed.Milliseconds())
	ok := true
	for _, r := range rep.Parallel {
		status := "verified"
		if !r.Verified {
			status = fmt.Sprintf("MISMATCH at (%d, %d)", r.Mismatch.X, r.Mismatch.Y)
			ok = false
		}
		p.Printf("Parallel (%d threads): %d ms (%.2fx) %s\n",
			r.Workers, r.Elapsed.Milliseconds(), rep.Speedup(r), status)
	}
	return ok
}

func saveOutputs(dir string, rep *bench.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := imageio.Save(filepath.Join(dir, "input.png"), rep.Input.Gray()); err != nil {
		return err
	}
	path := filepath.Join(dir, "sequential_output.png")
	if err := imageio.Save(path, dithergo.BitMatrixToImage(rep.Sequential.Output)); err != nil {
		return err
	}
	for _, r := range rep.Parallel {
		path := filepath.Join(dir, fmt.Sprintf("parallel_output_%dT.png", r.Workers))
		if err := imageio.Save(path, dithergo.BitMatrixToImage(r.Output)); err != nil {
			return err
		}
	}
	return nil
}

// progress draws a one-line row counter for the current run on stderr.
type progress struct {
	mu    sync.Mutex
	label string
	total int
	rows  atomic.Int64
}

func (p *progress) start(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.label != "" {
		p.draw()
		fmt.Fprintln(os.Stderr)
	}
	p.label = label
	p.rows.Store(0)
}

func (p *progress) loop(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			if p.label != "" {
				p.draw()
				fmt.Fprintln(os.Stderr)
			}
			p.mu.Unlock()
			return
		case <-ticker.C:
			p.mu.Lock()
			if p.label != "" {
				p.draw()
			}
			p.mu.Unlock()
		}
	}
}

// draw must be called with p.mu held.
func (p *progress) draw() {
	n := p.rows.Load()
	fmt.Fprintf(os.Stderr, "\r%s: %d/%d rows (%.1f%%)", p.label, n, p.total, float64(n)/float64(p.total)*100)
}
