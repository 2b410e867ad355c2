// Command dither converts an image to a 1-bit black/white image by
// Floyd-Steinberg error diffusion.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	dithergo "github.com/ericlevine/dithergo"
	"github.com/ericlevine/dithergo/binarizer"
	"github.com/ericlevine/dithergo/imageio"

	// Register the dithering methods.
	_ "github.com/ericlevine/dithergo/diffusion"
)

var methods = map[string]dithergo.Method{
	"fs":        dithergo.MethodFloydSteinberg,
	"wavefront": dithergo.MethodWavefront,
	"threshold": dithergo.MethodThreshold,
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("dither: ")

	threshold := flag.Int("threshold", dithergo.DefaultThreshold, "luminance a pixel must exceed to become white (0-255)")
	method := flag.String("method", "fs", "dithering method: fs, wavefront or threshold")
	workers := flag.Int("workers", 0, "goroutines for -method=wavefront (0 means one per CPU)")
	auto := flag.Bool("auto-threshold", false, "estimate the threshold from the image histogram instead of using -threshold")
	verbose := flag.Bool("v", false, "report image size and timing")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dither [flags] <input-image> <output-image>\n\n")
		fmt.Fprintf(os.Stderr, "Convert an image to black and white by error diffusion.\n")
		fmt.Fprintf(os.Stderr, "Output formats: %s\n\n", strings.Join(imageio.Extensions(), " "))
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	m, ok := methods[*method]
	if !ok {
		log.Printf("unknown method %q", *method)
		flag.Usage()
		os.Exit(1)
	}

	n, capped := capWorkers(*workers, runtime.NumCPU())
	if capped {
		log.Printf("warning: requested %d workers, but machine only has %d CPUs; using %d", *workers, n, n)
	}
	opts := &dithergo.Options{
		Threshold: threshold,
		Workers:   n,
	}
	if err := run(flag.Arg(0), flag.Arg(1), m, opts, *auto, *verbose); err != nil {
		log.Fatal(err)
	}
}

// capWorkers limits requested to cpus and reports whether it had to.
func capWorkers(requested, cpus int) (int, bool) {
	if requested > cpus {
		return cpus, true
	}
	return requested, false
}

func run(inPath, outPath string, method dithergo.Method, opts *dithergo.Options, auto, verbose bool) error {
	fallback, err := opts.ThresholdValue()
	if err != nil {
		return err
	}
	start := time.Now()
	img, err := imageio.Load(inPath)
	if err != nil {
		return err
	}
	source := dithergo.NewImageLuminanceSource(img)
	if verbose {
		log.Printf("processing %dx%d image with %s", source.Width(), source.Height(), method)
	}
	if auto {
		t, err := binarizer.EstimateThreshold(source)
		if err != nil {
			log.Printf("%s: %v; keeping threshold %d", inPath, err, fallback)
		} else {
			if verbose {
				log.Printf("estimated threshold %d", t)
			}
			opts.Threshold = &t
		}
	}

	matrix, err := dithergo.Dither(context.Background(), source, method, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	if err := imageio.Save(outPath, dithergo.BitMatrixToImage(matrix)); err != nil {
		return err
	}
	if verbose {
		log.Printf("wrote %s in %.2fs", outPath, time.Since(start).Seconds())
	}
	return nil
}
