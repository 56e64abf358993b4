// renderer traces one of the built-in scenes into a PFM image, optionally
// tone-mapping it to an 8-bit file as well.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime/pprof"

	"github.com/golang/glog"

	"lantern/color"
	"lantern/debugserve"
	"lantern/hdrimage"
	"lantern/integrator"
	"lantern/scenes"
	"lantern/tracer"
)

var (
	sceneName      = flag.String("scene", "demo", "Name of the built-in scene to render.  See scene-tool for the list.")
	width          = flag.Int("width", 640, "Output image width in pixels.")
	height         = flag.Int("height", 480, "Output image height in pixels.")
	algorithm      = flag.String("algorithm", "path", "Rendering algorithm: onoff, flat, or path.")
	samplesPerPix  = flag.Int("samples-per-pixel", 4, "Antialiasing samples per pixel.  Must be a perfect square.")
	numRays        = flag.Int("num-rays", 10, "Scattered rays per bounce for the path tracer.")
	maxDepth       = flag.Int("max-depth", 3, "Maximum path depth.")
	rrLimit        = flag.Int("rr-limit", 2, "Depth past which Russian roulette may terminate paths.")
	seed           = flag.Uint64("seed", 42, "Random sequence seed.")
	cameraAngleDeg = flag.Float64("camera-angle-deg", 0, "Camera orbit angle, degrees.")
	workers        = flag.Int("workers", 0, "Render worker count.  0 uses all CPUs.")

	output    = flag.String("output", "output.pfm", "Output PFM file.")
	ldrOutput = flag.String("ldr-output", "", "Optional tone-mapped output file (png, jpeg, bmp, or tiff by extension).")
	factor    = flag.Float64("factor", 0.2, "Tone-mapping normalization factor.")
	gamma     = flag.Float64("gamma", 1.0, "Tone-mapping gamma.")

	debugListen = flag.String("debug-listen", "", "Optional address:port for the debug endpoint.")
	cpuProfile  = flag.String("cpu-profile", "", "Write a CPU profile to `file`.")
	memProfile  = flag.String("mem-profile", "", "Write a memory profile to `file`.")
)

func main() {
	flag.Parse()

	glog.CopyStandardLogTo("INFO")

	glog.Infof("flags:")
	glog.Infof("scene: %v", *sceneName)
	glog.Infof("width: %v", *width)
	glog.Infof("height: %v", *height)
	glog.Infof("algorithm: %v", *algorithm)
	glog.Infof("samples-per-pixel: %v", *samplesPerPix)
	glog.Infof("num-rays: %v", *numRays)
	glog.Infof("max-depth: %v", *maxDepth)
	glog.Infof("rr-limit: %v", *rrLimit)
	glog.Infof("seed: %v", *seed)
	glog.Infof("camera-angle-deg: %v", *cameraAngleDeg)
	glog.Infof("workers: %v", *workers)
	glog.Infof("output: %v", *output)
	glog.Infof("ldr-output: %v", *ldrOutput)
	glog.Infof("factor: %v", *factor)
	glog.Infof("gamma: %v", *gamma)
	glog.Infof("debug-listen: %v", *debugListen)

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			glog.Exitf("Could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			glog.Exitf("Could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := do(); err != nil {
		glog.Exitf("Error: %v", err)
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			glog.Exitf("Could not create memory profile: %v", err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			glog.Exitf("Could not write memory profile: %v", err)
		}
	}
}

func do() error {
	builder, ok := scenes.Lookup(*sceneName)
	if !ok {
		return fmt.Errorf("unknown scene %q", *sceneName)
	}

	w, cam, err := builder.Build(scenes.Params{
		AspectRatio:    float64(*width) / float64(*height),
		CameraAngleDeg: *cameraAngleDeg,
	})
	if err != nil {
		return fmt.Errorf("while building scene %q: %w", *sceneName, err)
	}

	var ig integrator.Integrator
	switch *algorithm {
	case "onoff":
		ig = integrator.NewOnOff(w)
	case "flat":
		ig = integrator.NewFlat(w)
	case "path":
		ig, err = integrator.NewPathTracer(w, color.Black, *numRays, *maxDepth, *rrLimit)
		if err != nil {
			return fmt.Errorf("while configuring path tracer: %w", err)
		}
	default:
		return fmt.Errorf("unknown algorithm %q", *algorithm)
	}

	img := hdrimage.New(*width, *height)
	it, err := tracer.New(img, cam, *samplesPerPix)
	if err != nil {
		return fmt.Errorf("while configuring image tracer: %w", err)
	}

	progress := &debugserve.Progress{}
	if *debugListen != "" {
		debug := debugserve.New(progress)
		if err := debug.RegisterMetrics(); err != nil {
			return fmt.Errorf("while registering debug metrics: %w", err)
		}
		go func() {
			glog.Infof("Debug endpoint listening on %s", *debugListen)
			if err := http.ListenAndServe(*debugListen, debug); err != nil {
				glog.Errorf("Debug endpoint failed: %v", err)
			}
		}()
	}

	opts := tracer.RenderOptions{
		Workers: *workers,
		Seed:    *seed,
		Progress: func(done, total int) {
			progress.Update(done, total)
			if done%64 == 0 || done == total {
				glog.Infof("Rendered %d/%d rows", done, total)
			}
		},
	}
	if err := it.FireAllRays(context.Background(), ig, opts); err != nil {
		return fmt.Errorf("while rendering: %w", err)
	}

	out, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("while creating output file: %w", err)
	}
	defer out.Close()
	if err := img.WritePFM(out, binary.LittleEndian); err != nil {
		return fmt.Errorf("while writing PFM output: %w", err)
	}
	glog.Infof("Wrote %s", *output)

	if *ldrOutput != "" {
		img.Normalize(*factor, 0)
		img.Clamp()

		ldr, err := os.Create(*ldrOutput)
		if err != nil {
			return fmt.Errorf("while creating LDR output file: %w", err)
		}
		defer ldr.Close()
		if err := img.WriteLDR(ldr, hdrimage.FormatFromPath(*ldrOutput), *gamma); err != nil {
			return fmt.Errorf("while writing LDR output: %w", err)
		}
		glog.Infof("Wrote %s", *ldrOutput)
	}

	return nil
}
