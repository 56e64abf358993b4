package hdrimage

import (
	"fmt"
	"image"
	imgcolor "image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"lantern/color"
)

func math32bits(v float64) uint32 {
	return math.Float32bits(float32(v))
}

func float32bits(bits uint32) float64 {
	return float64(math.Float32frombits(bits))
}

// WriteLDR gamma-encodes the (already normalized and clamped) image and
// writes it in an 8-bit format: "png", "jpeg", "bmp", or "tiff".
func (img *Image) WriteLDR(out io.Writer, format string, gamma float64) error {
	ldr := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))

	encode := func(v float64) uint8 {
		e := 255 * math.Pow(v, 1/gamma)
		if e < 0 {
			e = 0
		}
		if e > 255 {
			e = 255
		}
		return uint8(e)
	}

	for row := 0; row < img.Height; row++ {
		for col := 0; col < img.Width; col++ {
			p := img.At(col, row)
			ldr.SetRGBA(col, row, imgcolor.RGBA{
				R: encode(p.R),
				G: encode(p.G),
				B: encode(p.B),
				A: 255,
			})
		}
	}

	switch format {
	case "png":
		if err := png.Encode(out, ldr); err != nil {
			return fmt.Errorf("while encoding png: %w", err)
		}
	case "jpeg", "jpg":
		if err := jpeg.Encode(out, ldr, nil); err != nil {
			return fmt.Errorf("while encoding jpeg: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(out, ldr); err != nil {
			return fmt.Errorf("while encoding bmp: %w", err)
		}
	case "tiff", "tif":
		if err := tiff.Encode(out, ldr, nil); err != nil {
			return fmt.Errorf("while encoding tiff: %w", err)
		}
	default:
		return fmt.Errorf("unknown LDR format %q", format)
	}

	return nil
}

// FormatFromPath guesses an LDR format name from a file extension.
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	default:
		return ext
	}
}

// Read loads an image file into linear RGB.  PFM streams are read natively;
// png, jpeg, bmp, and tiff are decoded and linearized with an inverse gamma
// of 2.2.  The format is chosen by file extension.
func Read(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("while opening image %q: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".pfm") {
		img, err := ReadPFM(f)
		if err != nil {
			return nil, fmt.Errorf("while reading PFM %q: %w", path, err)
		}
		return img, nil
	}

	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("while decoding image %q: %w", path, err)
	}
	return fromLDR(decoded), nil
}

func fromLDR(src image.Image) *Image {
	bounds := src.Bounds()
	img := New(bounds.Dx(), bounds.Dy())

	linearize := func(v uint32) float64 {
		return math.Pow(float64(v)/65535, 2.2)
	}

	for row := 0; row < img.Height; row++ {
		for col := 0; col < img.Width; col++ {
			r, g, b, _ := src.At(bounds.Min.X+col, bounds.Min.Y+row).RGBA()
			img.Set(col, row, color.Color{
				R: linearize(r),
				G: linearize(g),
				B: linearize(b),
			})
		}
	}

	return img
}
