package hdrimage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lantern/color"
)

// The PFM interchange format: a text header "PF\n<width> <height>\n<scale>\n"
// followed by raw float32 RGB triples in bottom-to-top, left-to-right scan
// order.  The sign of the scale field declares the byte order of the triples:
// negative means little endian.

// WritePFM serializes the image in the requested byte order.
func (img *Image) WritePFM(out io.Writer, order binary.ByteOrder) error {
	endianness := "1.0"
	if order == binary.LittleEndian {
		endianness = "-1.0"
	}

	if _, err := fmt.Fprintf(out, "PF\n%d %d\n%s\n", img.Width, img.Height, endianness); err != nil {
		return fmt.Errorf("while writing PFM header: %w", err)
	}

	buf := make([]byte, 4)
	writeFloat := func(v float64) error {
		order.PutUint32(buf, math32bits(v))
		_, err := out.Write(buf)
		return err
	}

	// PFM scan order is bottom-to-top.
	for row := img.Height - 1; row >= 0; row-- {
		for col := 0; col < img.Width; col++ {
			p := img.At(col, row)
			for _, v := range [3]float64{p.R, p.G, p.B} {
				if err := writeFloat(v); err != nil {
					return fmt.Errorf("while writing PFM pixel (%d, %d): %w", col, row, err)
				}
			}
		}
	}

	return nil
}

// ReadPFM deserializes a PFM stream, honoring the byte order it declares.
func ReadPFM(in io.Reader) (*Image, error) {
	r := bufio.NewReader(in)

	magic, err := readHeaderLine(r)
	if err != nil {
		return nil, fmt.Errorf("while reading PFM magic: %w", err)
	}
	if magic != "PF" {
		return nil, fmt.Errorf("invalid PFM magic %q", magic)
	}

	sizeLine, err := readHeaderLine(r)
	if err != nil {
		return nil, fmt.Errorf("while reading PFM size: %w", err)
	}
	width, height, err := parseImageSize(sizeLine)
	if err != nil {
		return nil, err
	}

	scaleLine, err := readHeaderLine(r)
	if err != nil {
		return nil, fmt.Errorf("while reading PFM scale: %w", err)
	}
	order, err := parseEndianness(scaleLine)
	if err != nil {
		return nil, err
	}

	img := New(width, height)
	buf := make([]byte, 4)
	readFloat := func() (float64, error) {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, err
		}
		return float32bits(order.Uint32(buf)), nil
	}

	for row := height - 1; row >= 0; row-- {
		for col := 0; col < width; col++ {
			var p color.Color
			for i := 0; i < 3; i++ {
				v, err := readFloat()
				if err != nil {
					return nil, fmt.Errorf("while reading PFM pixel (%d, %d): %w", col, row, err)
				}
				switch i {
				case 0:
					p.R = v
				case 1:
					p.G = v
				case 2:
					p.B = v
				}
			}
			img.Set(col, row, p)
		}
	}

	return img, nil
}

func readHeaderLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\n"), nil
}

func parseImageSize(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("invalid PFM size line %q", line)
	}

	width, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("while parsing PFM width: %w", err)
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("while parsing PFM height: %w", err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid PFM size %dx%d", width, height)
	}

	return width, height, nil
}

func parseEndianness(line string) (binary.ByteOrder, error) {
	scale, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return nil, fmt.Errorf("while parsing PFM scale: %w", err)
	}
	switch {
	case scale < 0:
		return binary.LittleEndian, nil
	case scale > 0:
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("invalid PFM scale %v, must be nonzero", scale)
	}
}
