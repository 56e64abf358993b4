// pfm-tool tone-maps a PFM image into an 8-bit format chosen by the output
// file's extension.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"lantern/hdrimage"
)

var (
	input  = flag.String("input", "", "Input image file (PFM, or any supported 8-bit format).")
	output = flag.String("output", "", "Output file (png, jpeg, bmp, or tiff by extension).")
	factor = flag.Float64("factor", 0.2, "Tone-mapping normalization factor.")
	gamma  = flag.Float64("gamma", 1.0, "Tone-mapping gamma.")
)

func main() {
	flag.Parse()

	glog.Infof("flags:")
	glog.Infof("input: %v", *input)
	glog.Infof("output: %v", *output)
	glog.Infof("factor: %v", *factor)
	glog.Infof("gamma: %v", *gamma)

	if err := do(); err != nil {
		glog.Exitf("Error: %v", err)
	}
}

func do() error {
	if *input == "" || *output == "" {
		return fmt.Errorf("both -input and -output are required")
	}

	img, err := hdrimage.Read(*input)
	if err != nil {
		return fmt.Errorf("while reading %s: %w", *input, err)
	}

	img.Normalize(*factor, 0)
	img.Clamp()

	out, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("while creating %s: %w", *output, err)
	}
	defer out.Close()

	if err := img.WriteLDR(out, hdrimage.FormatFromPath(*output), *gamma); err != nil {
		return fmt.Errorf("while writing %s: %w", *output, err)
	}

	glog.Infof("Wrote %s", *output)
	return nil
}
