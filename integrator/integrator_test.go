package integrator

import (
	"math"
	"testing"

	"lantern/affinetransform"
	"lantern/color"
	"lantern/geometry"
	"lantern/material"
	"lantern/pcg"
	"lantern/ray"
	"lantern/vmath"
	"lantern/world"
)

func TestOnOff(t *testing.T) {
	w := world.New()
	w.Add(geometry.NewSphere(affinetransform.Translate(vmath.Vec{2, 0, 0}), material.Default()))

	ig := NewOnOff(w)
	rng := pcg.New(42, 54)

	hitRay := ray.New(vmath.Point{0, 0, 0}, vmath.Vec{1, 0, 0})
	if got := ig.Radiance(hitRay, rng); got != color.White {
		t.Errorf("Hit ray radiance = %v, want white", got)
	}

	missRay := ray.New(vmath.Point{0, 0, 0}, vmath.Vec{-1, 0, 0})
	if got := ig.Radiance(missRay, rng); got != color.Black {
		t.Errorf("Miss ray radiance = %v, want black", got)
	}
}

func TestFlat(t *testing.T) {
	pigmentColor := color.Color{R: 0.2, G: 0.3, B: 0.4}
	emittedColor := color.Color{R: 0.1, G: 0.1, B: 0.1}

	mtl := material.Material{
		BRDF:            material.DiffuseBRDF{Pig: material.UniformPigment{Color: pigmentColor}, Reflectance: 1},
		EmittedRadiance: material.UniformPigment{Color: emittedColor},
	}

	w := world.New()
	w.Add(geometry.NewSphere(affinetransform.Translate(vmath.Vec{2, 0, 0}), mtl))

	ig := NewFlat(w)
	rng := pcg.New(42, 54)

	hitRay := ray.New(vmath.Point{0, 0, 0}, vmath.Vec{1, 0, 0})
	want := pigmentColor.Add(emittedColor)
	if got := ig.Radiance(hitRay, rng); !got.IsClose(want, 1e-9) {
		t.Errorf("Hit ray radiance = %v, want %v", got, want)
	}

	missRay := ray.New(vmath.Point{0, 0, 0}, vmath.Vec{-1, 0, 0})
	if got := ig.Radiance(missRay, rng); got != color.Black {
		t.Errorf("Miss ray radiance = %v, want black", got)
	}
}

func TestNewPathTracerRejectsBadRayCount(t *testing.T) {
	if _, err := NewPathTracer(world.New(), color.Black, 0, 10, 5); err != ErrBadRayCount {
		t.Errorf("NewPathTracer(numRays=0): got err %v, want ErrBadRayCount", err)
	}
	if _, err := NewPathTracer(world.New(), color.Black, -3, 10, 5); err != ErrBadRayCount {
		t.Errorf("NewPathTracer(numRays=-3): got err %v, want ErrBadRayCount", err)
	}
}

func TestPathTracerBackground(t *testing.T) {
	background := color.Color{R: 0.5, G: 0.6, B: 0.7}
	ig, err := NewPathTracer(world.New(), background, 1, 10, 5)
	if err != nil {
		t.Fatalf("NewPathTracer failed: %v", err)
	}

	rng := pcg.New(42, 54)
	got := ig.Radiance(ray.New(vmath.Point{}, vmath.Vec{1, 0, 0}), rng)
	if got != background {
		t.Errorf("Miss radiance = %v, want %v", got, background)
	}
}

func TestPathTracerDepthBound(t *testing.T) {
	w := world.New()
	w.Add(geometry.NewSphere(affinetransform.Identity(), material.Default()))

	ig, err := NewPathTracer(w, color.White, 1, 3, 100)
	if err != nil {
		t.Fatalf("NewPathTracer failed: %v", err)
	}

	rng := pcg.New(42, 54)
	r := ray.New(vmath.Point{0, 0, 2}, vmath.Vec{0, 0, -1})
	r.Depth = 4
	if got := ig.Radiance(r, rng); got != color.Black {
		t.Errorf("Radiance past max depth = %v, want black", got)
	}
}

// The furnace test: inside a uniformly emitting and reflecting enclosure,
// the recursive estimator must converge to emitted / (1 - reflectance).
// Russian roulette is disabled by setting its depth limit past MaxDepth.
func TestFurnace(t *testing.T) {
	seedRNG := pcg.New(42, 54)

	for trial := 0; trial < 8; trial++ {
		emittedRadiance := seedRNG.Float() * 0.5
		reflectance := seedRNG.Float() * 0.9

		mtl := material.Material{
			BRDF: material.DiffuseBRDF{
				Pig:         material.UniformPigment{Color: color.White.Mul(reflectance)},
				Reflectance: 1,
			},
			EmittedRadiance: material.UniformPigment{Color: color.White.Mul(emittedRadiance)},
		}

		w := world.New()
		w.Add(geometry.NewSphere(affinetransform.Identity(), mtl))

		ig, err := NewPathTracer(w, color.Black, 1, 100, 101)
		if err != nil {
			t.Fatalf("NewPathTracer failed: %v", err)
		}

		rng := pcg.New(uint64(trial), 1)
		got := ig.Radiance(ray.New(vmath.Point{}, vmath.Vec{1, 0, 0}), rng)

		want := emittedRadiance / (1 - reflectance)
		for _, channel := range []float64{got.R, got.G, got.B} {
			if math.Abs(channel-want) > 1e-3 {
				t.Errorf("Trial %d (e=%v, r=%v): radiance channel = %v, want %v",
					trial, emittedRadiance, reflectance, channel, want)
			}
		}
	}
}
