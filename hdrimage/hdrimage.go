// Package hdrimage holds the floating-point image buffer the renderer
// accumulates into, the PFM interchange codec, and the tone-mapping pipeline
// that turns radiance values into an 8-bit file.
package hdrimage

import (
	"math"

	"lantern/color"
)

// Image is a width x height grid of linear RGB triples, stored row major and
// addressed as (column, row) with (0, 0) the top-left pixel.
type Image struct {
	Width, Height int
	Pixels        []color.Color
}

func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]color.Color, width*height),
	}
}

func (img *Image) ValidCoordinates(col, row int) bool {
	return col >= 0 && col < img.Width && row >= 0 && row < img.Height
}

func (img *Image) pixelOffset(col, row int) int {
	return row*img.Width + col
}

func (img *Image) At(col, row int) color.Color {
	return img.Pixels[img.pixelOffset(col, row)]
}

func (img *Image) Set(col, row int, c color.Color) {
	img.Pixels[img.pixelOffset(col, row)] = c
}

// AverageLuminosity is the logarithmic mean of the pixel luminosities.
// delta guards the logarithm against pure-black pixels.
func (img *Image) AverageLuminosity(delta float64) float64 {
	sum := 0.0
	for _, p := range img.Pixels {
		sum += math.Log10(delta + p.Luminosity())
	}
	return math.Pow(10, sum/float64(len(img.Pixels)))
}

// Normalize rescales every pixel by factor / luminosity.  Pass a positive
// luminosity to override the measured average, as when batch-processing
// frames that must share an exposure.
func (img *Image) Normalize(factor, luminosity float64) {
	if luminosity <= 0 {
		luminosity = img.AverageLuminosity(1e-10)
	}
	scale := factor / luminosity
	for i, p := range img.Pixels {
		img.Pixels[i] = p.Mul(scale)
	}
}

// Clamp applies the soft saturation x/(1+x) to every channel, mapping
// [0, inf) into [0, 1).
func (img *Image) Clamp() {
	clamp := func(x float64) float64 { return x / (1 + x) }
	for i, p := range img.Pixels {
		img.Pixels[i] = color.Color{R: clamp(p.R), G: clamp(p.G), B: clamp(p.B)}
	}
}
