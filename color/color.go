// Package color holds linear RGB radiance triples.
package color

import "math"

type Color struct {
	R, G, B float64
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Mul scales every channel by s.
func (c Color) Mul(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// MulC multiplies channelwise, the throughput update of a bounce.
func (c Color) MulC(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

func (c Color) MaxComponent() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// Luminosity is the Shinya lightness approximation (max+min)/2, used by the
// tone-mapping pipeline.
func (c Color) Luminosity() float64 {
	max := c.MaxComponent()
	min := math.Min(c.R, math.Min(c.G, c.B))
	return (max + min) / 2
}

func (c Color) IsClose(other Color, eps float64) bool {
	return math.Abs(c.R-other.R) < eps &&
		math.Abs(c.G-other.G) < eps &&
		math.Abs(c.B-other.B) < eps
}
