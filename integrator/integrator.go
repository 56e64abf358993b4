// Package integrator implements the rendering equation solvers: the on/off
// and flat debugging integrators, and the Monte Carlo path tracer.
package integrator

import (
	"errors"
	"math"

	"lantern/color"
	"lantern/pcg"
	"lantern/ray"
	"lantern/world"
)

// Integrator resolves the radiance carried by a ray.  Implementations must
// be safe for concurrent use; all per-sample mutable state lives in the rng
// the caller passes in.
type Integrator interface {
	Radiance(r ray.Ray, rng *pcg.PCG) color.Color
}

// OnOff paints a fixed color wherever the world intersects the ray.  Useful
// for debugging visibility.
type OnOff struct {
	World      *world.World
	Background color.Color
	HitColor   color.Color
}

func NewOnOff(w *world.World) *OnOff {
	return &OnOff{World: w, Background: color.Black, HitColor: color.White}
}

func (i *OnOff) Radiance(r ray.Ray, rng *pcg.PCG) color.Color {
	if _, ok := i.World.Intersect(r); ok {
		return i.HitColor
	}
	return i.Background
}

// Flat shades each hit with its surface pigment plus emitted radiance,
// without shading or recursion.
type Flat struct {
	World      *world.World
	Background color.Color
}

func NewFlat(w *world.World) *Flat {
	return &Flat{World: w, Background: color.Black}
}

func (i *Flat) Radiance(r ray.Ray, rng *pcg.PCG) color.Color {
	hit, ok := i.World.Intersect(r)
	if !ok {
		return i.Background
	}

	mtl := hit.Shape.Material()
	return mtl.BRDF.Pigment().At(hit.UV).Add(mtl.EmittedRadiance.At(hit.UV))
}

// ErrBadRayCount is returned when a path tracer is configured with a
// non-positive number of scattered rays per bounce.
var ErrBadRayCount = errors.New("integrator: number of scattered rays must be positive")

// PathTracer is the recursive Monte Carlo estimator of the rendering
// equation.
type PathTracer struct {
	World      *world.World
	Background color.Color

	// NumRays is the number of scattered rays drawn at every bounce.
	NumRays int

	// MaxDepth bounds the recursion; rays deeper than this contribute
	// black.
	MaxDepth int

	// RussianRouletteLimit is the depth past which Russian roulette may
	// terminate a path.  Termination rescales survivors, keeping the
	// estimator unbiased.
	RussianRouletteLimit int
}

func NewPathTracer(w *world.World, background color.Color, numRays, maxDepth, russianRouletteLimit int) (*PathTracer, error) {
	if numRays <= 0 {
		return nil, ErrBadRayCount
	}
	return &PathTracer{
		World:                w,
		Background:           background,
		NumRays:              numRays,
		MaxDepth:             maxDepth,
		RussianRouletteLimit: russianRouletteLimit,
	}, nil
}

func (i *PathTracer) Radiance(r ray.Ray, rng *pcg.PCG) color.Color {
	if r.Depth > i.MaxDepth {
		return color.Black
	}

	hit, ok := i.World.Intersect(r)
	if !ok {
		return i.Background
	}

	mtl := hit.Shape.Material()
	hitColor := mtl.BRDF.Pigment().At(hit.UV)
	emitted := mtl.EmittedRadiance.At(hit.UV)

	hitColorLum := hitColor.MaxComponent()

	if r.Depth >= i.RussianRouletteLimit {
		q := math.Max(0.05, 1-hitColorLum)
		if rng.Float() > q {
			// Survivors are rescaled to compensate for the paths that
			// were terminated.
			hitColor = hitColor.Mul(1 / (1 - q))
		} else {
			return emitted
		}
	}

	cumRadiance := color.Black
	if hitColorLum > 0 {
		for n := 0; n < i.NumRays; n++ {
			scattered := mtl.BRDF.ScatterRay(rng, hit.Ray.Dir, hit.WorldPoint, hit.Normal, r.Depth+1)
			cumRadiance = cumRadiance.Add(hitColor.MulC(i.Radiance(scattered, rng)))
		}
	}

	return emitted.Add(cumRadiance.Mul(1 / float64(i.NumRays)))
}
