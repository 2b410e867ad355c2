// Command bwdiff compares two images after reducing both to black and
// white, and reports the share of pixels that agree.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	dithergo "github.com/ericlevine/dithergo"
	"github.com/ericlevine/dithergo/bitutil"
	"github.com/ericlevine/dithergo/imageio"
	"github.com/ericlevine/dithergo/similarity"

	// Register the dithering methods.
	_ "github.com/ericlevine/dithergo/diffusion"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("bwdiff: ")

	threshold := flag.Int("threshold", dithergo.DefaultThreshold, "luminance a pixel must exceed to count as white (0-255)")
	diffPath := flag.String("o", "", "write the first image with differing pixels marked red to this file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bwdiff [flags] <image1> <image2>\n\n")
		fmt.Fprintf(os.Stderr, "Compare two black and white images pixel by pixel.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	opts := &dithergo.Options{Threshold: threshold}
	a, err := load(flag.Arg(0), opts)
	if err != nil {
		log.Fatal(err)
	}
	b, err := load(flag.Arg(1), opts)
	if err != nil {
		log.Fatal(err)
	}
	res, err := similarity.Compare(a, b)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res)

	if *diffPath != "" {
		if err := imageio.Save(*diffPath, similarity.Render(a, res.Diff)); err != nil {
			log.Fatal(err)
		}
	}
}

// load reads path and thresholds it to one bit per pixel.
func load(path string, opts *dithergo.Options) (*bitutil.BitMatrix, error) {
	img, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	m, err := dithergo.Dither(context.Background(), dithergo.NewImageLuminanceSource(img), dithergo.MethodThreshold, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
