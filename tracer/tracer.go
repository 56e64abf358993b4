// Package tracer drives the camera over every pixel of the image buffer,
// delegating radiance queries to an integrator.
package tracer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"lantern/camera"
	"lantern/color"
	"lantern/hdrimage"
	"lantern/integrator"
	"lantern/pcg"
	"lantern/ray"
)

// ErrBadSampleCount is returned when the antialiasing sample count is not a
// positive perfect square.
var ErrBadSampleCount = errors.New("tracer: samples per pixel must be a positive perfect square")

// ImageTracer connects a camera to an image buffer.
type ImageTracer struct {
	Img *hdrimage.Image
	Cam camera.Camera

	// samplesPerSide is the edge of the stratification grid: the pixel is
	// split into samplesPerSide² cells with one jittered sample each.  A
	// value of 1 means a single ray through the pixel center.
	samplesPerSide int
}

// New builds an ImageTracer.  samplesPerPixel must be a positive perfect
// square, so the samples stratify into a square grid.
func New(img *hdrimage.Image, cam camera.Camera, samplesPerPixel int) (*ImageTracer, error) {
	if samplesPerPixel <= 0 {
		return nil, ErrBadSampleCount
	}
	side := int(math.Sqrt(float64(samplesPerPixel)))
	if side*side != samplesPerPixel {
		return nil, ErrBadSampleCount
	}
	return &ImageTracer{Img: img, Cam: cam, samplesPerSide: side}, nil
}

// FireRay fires the ray through pixel (col, row) at the sub-pixel position
// (uPixel, vPixel) in [0, 1]², measured from the pixel's top-left corner.
// Row 0 is the top of the image, which is screen coordinate v = 1.
func (t *ImageTracer) FireRay(col, row int, uPixel, vPixel float64) ray.Ray {
	u := (float64(col) + uPixel) / float64(t.Img.Width)
	v := 1 - (float64(row)+vPixel)/float64(t.Img.Height)
	return t.Cam.FireRay(u, v)
}

// RenderOptions configures a FireAllRays pass.
type RenderOptions struct {
	// Workers bounds render concurrency.  Zero or negative selects
	// runtime.NumCPU().
	Workers int

	// Seed selects the random sequence.  The stream is derived from the
	// pixel row, so output is independent of worker count.
	Seed uint64

	// Progress, when non-nil, is called after each completed row.
	Progress func(rowsDone, rowsTotal int)
}

// FireAllRays renders every pixel, resolving colors through the integrator.
//
// Work is split by rows: each row is rendered by one goroutine into its own
// disjoint slice of the image buffer with its own RNG stream, bounded by a
// weighted semaphore.  The world, camera, and materials must not be mutated
// while this runs.
func (t *ImageTracer) FireAllRays(ctx context.Context, ig integrator.Integrator, opts RenderOptions) error {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))

	var progressMu sync.Mutex
	rowsDone := 0

	for row := 0; row < t.Img.Height; row++ {
		row := row

		if err := sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("while acquiring render semaphore: %w", err)
		}

		eg.Go(func() error {
			defer sem.Release(1)

			rng := pcg.New(opts.Seed, uint64(row))
			for col := 0; col < t.Img.Width; col++ {
				t.Img.Set(col, row, t.samplePixel(col, row, ig, rng))
			}

			if opts.Progress != nil {
				progressMu.Lock()
				rowsDone++
				opts.Progress(rowsDone, t.Img.Height)
				progressMu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("while waiting for render rows: %w", err)
	}
	return nil
}

// samplePixel averages one jittered sample per stratification cell, or
// fires the single centered ray when antialiasing is off.
func (t *ImageTracer) samplePixel(col, row int, ig integrator.Integrator, rng *pcg.PCG) color.Color {
	if t.samplesPerSide == 1 {
		return ig.Radiance(t.FireRay(col, row, 0.5, 0.5), rng)
	}

	side := float64(t.samplesPerSide)
	cum := color.Black
	for i := 0; i < t.samplesPerSide; i++ {
		for j := 0; j < t.samplesPerSide; j++ {
			uPixel := (float64(i) + rng.Float()) / side
			vPixel := (float64(j) + rng.Float()) / side
			cum = cum.Add(ig.Radiance(t.FireRay(col, row, uPixel, vPixel), rng))
		}
	}
	return cum.Mul(1 / (side * side))
}
