// Package scenes programmatically builds the demo worlds the renderer ships
// with.  It plays the role of the scene-construction collaborator: the
// render core consumes the (World, Camera) pairs built here and never
// constructs geometry itself.
package scenes

import (
	"fmt"
	"math"

	"lantern/affinetransform"
	"lantern/camera"
	"lantern/color"
	"lantern/geometry"
	"lantern/material"
	"lantern/vmath"
	"lantern/world"
)

// Params carries the knobs every builder understands.
type Params struct {
	// AspectRatio of the target image, width over height.
	AspectRatio float64

	// CameraAngleDeg orbits the camera around the scene's z axis.
	CameraAngleDeg float64
}

// Builder is a named scene constructor.
type Builder struct {
	Name        string
	Description string
	Build       func(Params) (*world.World, camera.Camera, error)
}

// Registry lists the available builders in presentation order.
func Registry() []Builder {
	return []Builder{
		{"demo", "Sphere grid marking the corners and faces of a cube", buildDemo},
		{"csg", "The four boolean combinators side by side over a checkered floor", buildCSG},
		{"cornell", "Cornell-style box with an emissive ceiling panel", buildCornell},
		{"furnace", "A single emitting enclosure around the camera", buildFurnace},
	}
}

// Lookup finds a builder by name.
func Lookup(name string) (Builder, bool) {
	for _, b := range Registry() {
		if b.Name == name {
			return b, true
		}
	}
	return Builder{}, false
}

// orbitCamera builds the standard perspective camera: translated back down
// the -x axis and orbited about z by the requested angle.
func orbitCamera(p Params, distance float64) camera.Camera {
	xform := affinetransform.Compose(
		affinetransform.RotateZ(p.CameraAngleDeg*math.Pi/180),
		affinetransform.Translate(vmath.Vec{-distance, 0, 0}),
	)
	return camera.NewPerspective(1, p.AspectRatio, xform)
}

func matte(c color.Color) material.Material {
	return material.Material{
		BRDF:            material.DiffuseBRDF{Pig: material.UniformPigment{Color: c}, Reflectance: 1},
		EmittedRadiance: material.UniformPigment{Color: color.Black},
	}
}

func emitting(c color.Color) material.Material {
	return material.Material{
		BRDF:            material.DiffuseBRDF{Pig: material.UniformPigment{Color: color.Black}, Reflectance: 1},
		EmittedRadiance: material.UniformPigment{Color: c},
	}
}

func mirror(c color.Color) material.Material {
	return material.Material{
		BRDF:            material.SpecularBRDF{Pig: material.UniformPigment{Color: c}},
		EmittedRadiance: material.UniformPigment{Color: color.Black},
	}
}

func checkeredFloor() geometry.Shape {
	mtl := material.Material{
		BRDF: material.DiffuseBRDF{
			Pig: material.CheckeredPigment{
				Color1: color.Color{R: 0.3, G: 0.5, B: 0.1},
				Color2: color.Color{R: 0.1, G: 0.2, B: 0.5},
				Steps:  2,
			},
			Reflectance: 1,
		},
		EmittedRadiance: material.UniformPigment{Color: color.Black},
	}
	xform := affinetransform.Translate(vmath.Vec{0, 0, -1})
	return geometry.NewPlane(xform, mtl)
}

// skyDome is a large emitting sphere wrapped around the whole scene, so
// paths that escape the geometry still pick up light.
func skyDome(c color.Color) (geometry.Shape, error) {
	xform, err := affinetransform.Scale(50, 50, 50)
	if err != nil {
		return nil, err
	}
	return geometry.NewSphere(xform, emitting(c)), nil
}

// buildDemo scatters small spheres on the corners of a cube plus two face
// markers, the classic orientation sanity check.
func buildDemo(p Params) (*world.World, camera.Camera, error) {
	w := world.New()

	small, err := affinetransform.Scale(0.1, 0.1, 0.1)
	if err != nil {
		return nil, nil, fmt.Errorf("while building demo scene: %w", err)
	}

	corner := matte(color.Color{R: 0.7, G: 0.2, B: 0.2})
	for _, x := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0.5} {
			for _, z := range []float64{-0.5, 0.5} {
				xform := affinetransform.Compose(
					affinetransform.Translate(vmath.Vec{x, y, z}),
					small,
				)
				w.Add(geometry.NewSphere(xform, corner))
			}
		}
	}

	face := matte(color.Color{R: 0.2, G: 0.7, B: 0.2})
	for _, center := range []vmath.Vec{{0, 0, -0.5}, {0, 0.5, 0}} {
		xform := affinetransform.Compose(affinetransform.Translate(center), small)
		w.Add(geometry.NewSphere(xform, face))
	}

	sky, err := skyDome(color.White)
	if err != nil {
		return nil, nil, fmt.Errorf("while building demo scene: %w", err)
	}
	w.Add(sky)

	return w, orbitCamera(p, 2), nil
}

// buildCSG lines up the four boolean operations on sphere/cube pairs.
func buildCSG(p Params) (*world.World, camera.Camera, error) {
	w := world.New()
	w.Add(checkeredFloor())

	half, err := affinetransform.Scale(0.5, 0.5, 0.5)
	if err != nil {
		return nil, nil, fmt.Errorf("while building csg scene: %w", err)
	}
	cubeBase := affinetransform.Compose(
		affinetransform.Translate(vmath.Vec{-0.25, -0.25, -0.25}),
		half,
	)

	ops := []geometry.Operation{
		geometry.Union, geometry.Difference, geometry.Intersection, geometry.Fusion,
	}
	for i, op := range ops {
		sphere := geometry.NewSphere(
			affinetransform.Compose(affinetransform.Translate(vmath.Vec{0, 0.2, 0.2}), half),
			matte(color.Color{R: 0.7, G: 0.3, B: 0.2}),
		)
		cube := geometry.NewCube(cubeBase, matte(color.Color{R: 0.2, G: 0.3, B: 0.7}))

		place := affinetransform.Translate(vmath.Vec{0, 2.1*float64(i) - 3.15, 0})
		node, err := geometry.NewCSG(op, sphere, cube, place)
		if err != nil {
			return nil, nil, fmt.Errorf("while building csg scene: %w", err)
		}
		w.Add(node)
	}

	sky, err := skyDome(color.White)
	if err != nil {
		return nil, nil, fmt.Errorf("while building csg scene: %w", err)
	}
	w.Add(sky)

	return w, orbitCamera(p, 4), nil
}

// buildCornell is the classic enclosed box: colored side walls, matte floor
// and ceiling, an emitting panel, and two blocks.
func buildCornell(p Params) (*world.World, camera.Camera, error) {
	w := world.New()

	white := matte(color.White.Mul(0.7))
	red := matte(color.Color{R: 0.7, G: 0.1, B: 0.1})
	green := matte(color.Color{R: 0.1, G: 0.7, B: 0.1})

	// Walls: the z = 0 plane bounds the half space below it, so each wall
	// plane is rotated to face the interior.
	w.Add(geometry.NewPlane(affinetransform.Translate(vmath.Vec{0, 0, -1}), white))
	w.Add(geometry.NewPlane(affinetransform.Translate(vmath.Vec{0, 0, 1}), white))
	w.Add(geometry.NewPlane(affinetransform.Compose(
		affinetransform.Translate(vmath.Vec{1, 0, 0}),
		affinetransform.RotateY(math.Pi/2),
	), white))
	w.Add(geometry.NewPlane(affinetransform.Compose(
		affinetransform.Translate(vmath.Vec{0, 1, 0}),
		affinetransform.RotateX(math.Pi/2),
	), green))
	w.Add(geometry.NewPlane(affinetransform.Compose(
		affinetransform.Translate(vmath.Vec{0, -1, 0}),
		affinetransform.RotateX(math.Pi/2),
	), red))

	// Emissive panel just under the ceiling.
	panelXform, err := affinetransform.Scale(0.5, 0.5, 0.05)
	if err != nil {
		return nil, nil, fmt.Errorf("while building cornell scene: %w", err)
	}
	w.Add(geometry.NewCube(affinetransform.Compose(
		affinetransform.Translate(vmath.Vec{-0.25, -0.25, 0.93}),
		panelXform,
	), emitting(color.White.Mul(8))))

	// Two blocks: one matte, one mirrored.
	blockXform, err := affinetransform.Scale(0.4, 0.4, 0.9)
	if err != nil {
		return nil, nil, fmt.Errorf("while building cornell scene: %w", err)
	}
	w.Add(geometry.NewCube(affinetransform.Compose(
		affinetransform.Translate(vmath.Vec{0.2, 0.15, -1}),
		blockXform,
	), white))

	sphereXform, err := affinetransform.Scale(0.3, 0.3, 0.3)
	if err != nil {
		return nil, nil, fmt.Errorf("while building cornell scene: %w", err)
	}
	w.Add(geometry.NewSphere(affinetransform.Compose(
		affinetransform.Translate(vmath.Vec{0.1, -0.45, -0.7}),
		sphereXform,
	), mirror(color.White.Mul(0.9))))

	return w, orbitCamera(p, 2.5), nil
}

// buildFurnace wraps the camera in a single emitting, reflecting sphere.
// Rendering it should converge to a uniform image, which makes it a handy
// end-to-end energy-conservation check.
func buildFurnace(p Params) (*world.World, camera.Camera, error) {
	w := world.New()

	mtl := material.Material{
		BRDF: material.DiffuseBRDF{
			Pig:         material.UniformPigment{Color: color.White.Mul(0.6)},
			Reflectance: 1,
		},
		EmittedRadiance: material.UniformPigment{Color: color.White.Mul(0.25)},
	}
	w.Add(geometry.NewSphere(affinetransform.Identity(), mtl))

	return w, orbitCamera(p, 0), nil
}
