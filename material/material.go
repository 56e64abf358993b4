// Package material implements the surface model: pigments map surface
// coordinates to colors, BRDFs scatter light, and a Material ties a BRDF to
// an emitted-radiance pigment.
package material

import (
	"math"

	"lantern/color"
	"lantern/hdrimage"
	"lantern/pcg"
	"lantern/ray"
	"lantern/vmath"
)

// Pigment maps a surface (u, v) coordinate to a color.
type Pigment interface {
	At(uv vmath.UV) color.Color
}

// UniformPigment is the same color everywhere.
type UniformPigment struct {
	Color color.Color
}

func (p UniformPigment) At(uv vmath.UV) color.Color {
	return p.Color
}

// CheckeredPigment alternates two colors over a Steps x Steps grid of the
// unit uv square.
type CheckeredPigment struct {
	Color1, Color2 color.Color
	Steps          int
}

func (p CheckeredPigment) At(uv vmath.UV) color.Color {
	col := int(math.Floor(uv[0] * float64(p.Steps)))
	row := int(math.Floor(uv[1] * float64(p.Steps)))
	if (col+row)%2 == 0 {
		return p.Color1
	}
	return p.Color2
}

// ImagePigment samples a texture image, nearest neighbor.
type ImagePigment struct {
	Image *hdrimage.Image
}

func (p ImagePigment) At(uv vmath.UV) color.Color {
	col := int(uv[0] * float64(p.Image.Width))
	row := int(uv[1] * float64(p.Image.Height))
	if col >= p.Image.Width {
		col = p.Image.Width - 1
	}
	if row >= p.Image.Height {
		row = p.Image.Height - 1
	}
	return p.Image.At(col, row)
}

// BRDF describes how a surface scatters incoming light.
type BRDF interface {
	// Pigment is the surface color the BRDF modulates.
	Pigment() Pigment

	// Eval returns the BRDF value for the given geometry.
	Eval(normal vmath.Normal, inDir, outDir vmath.Vec, uv vmath.UV) color.Color

	// ScatterRay draws a secondary ray from the BRDF's importance-sampling
	// distribution, chosen so the sampling density cancels the BRDF and
	// cosine factors of the estimator.
	ScatterRay(rng *pcg.PCG, incomingDir vmath.Vec, point vmath.Point, normal vmath.Normal, depth int) ray.Ray
}

// DiffuseBRDF is an ideal Lambertian surface.
type DiffuseBRDF struct {
	Pig         Pigment
	Reflectance float64
}

func (b DiffuseBRDF) Pigment() Pigment { return b.Pig }

func (b DiffuseBRDF) Eval(normal vmath.Normal, inDir, outDir vmath.Vec, uv vmath.UV) color.Color {
	return b.Pig.At(uv).Mul(b.Reflectance / math.Pi)
}

// ScatterRay draws a cosine-weighted direction on the hemisphere around the
// surface normal.
func (b DiffuseBRDF) ScatterRay(rng *pcg.PCG, incomingDir vmath.Vec, point vmath.Point, normal vmath.Normal, depth int) ray.Ray {
	e1, e2, e3 := vmath.ONB(normal)

	cosThetaSq := rng.Float()
	cosTheta := math.Sqrt(cosThetaSq)
	sinTheta := math.Sqrt(1 - cosThetaSq)
	phi := 2 * math.Pi * rng.Float()

	dir := vmath.AddVV(
		vmath.AddVV(
			vmath.MulVS(e1, math.Cos(phi)*sinTheta),
			vmath.MulVS(e2, math.Sin(phi)*sinTheta),
		),
		vmath.MulVS(e3, cosTheta),
	)

	return ray.Ray{
		Origin: point,
		Dir:    dir,
		TMin:   1e-3,
		TMax:   math.Inf(1),
		Depth:  depth,
	}
}

// SpecularBRDF is an ideal mirror.
type SpecularBRDF struct {
	Pig Pigment

	// ThresholdAngle bounds how far from the mirror direction Eval still
	// reports reflection.  Zero selects a reasonable default.
	ThresholdAngle float64
}

func (b SpecularBRDF) Pigment() Pigment { return b.Pig }

func (b SpecularBRDF) thresholdAngle() float64 {
	if b.ThresholdAngle > 0 {
		return b.ThresholdAngle
	}
	return math.Pi / 1800
}

func (b SpecularBRDF) Eval(normal vmath.Normal, inDir, outDir vmath.Vec, uv vmath.UV) color.Color {
	nv := normal.ToVec()
	thetaIn := math.Acos(vmath.IProd(nv, vmath.Normalize(inDir)))
	thetaOut := math.Acos(vmath.IProd(nv, vmath.Normalize(outDir)))

	if math.Abs(thetaIn-thetaOut) < b.thresholdAngle() {
		return b.Pig.At(uv)
	}
	return color.Black
}

// ScatterRay reflects the incoming direction about the normal.
func (b SpecularBRDF) ScatterRay(rng *pcg.PCG, incomingDir vmath.Vec, point vmath.Point, normal vmath.Normal, depth int) ray.Ray {
	dir := vmath.Reflect(vmath.Normalize(incomingDir), normal)
	return ray.Ray{
		Origin: point,
		Dir:    dir,
		TMin:   1e-5,
		TMax:   math.Inf(1),
		Depth:  depth,
	}
}

// Material pairs a BRDF with an emitted-radiance pigment.
type Material struct {
	BRDF            BRDF
	EmittedRadiance Pigment
}

// Default returns a matte white, non-emitting material.
func Default() Material {
	return Material{
		BRDF:            DiffuseBRDF{Pig: UniformPigment{Color: color.White}, Reflectance: 1},
		EmittedRadiance: UniformPigment{Color: color.Black},
	}
}
