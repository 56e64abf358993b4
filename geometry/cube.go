package geometry

import (
	"math"

	"lantern/affinetransform"
	"lantern/material"
	"lantern/ray"
	"lantern/vmath"
)

// Cube is the axis-aligned unit cube [0, 1]³.
type Cube struct {
	Xform affinetransform.AffineTransform
	Mtl   material.Material
}

func NewCube(xform affinetransform.AffineTransform, mtl material.Material) *Cube {
	return &Cube{Xform: xform, Mtl: mtl}
}

func (c *Cube) Transform() affinetransform.AffineTransform { return c.Xform }
func (c *Cube) Material() material.Material                { return c.Mtl }

// faceEps is the tolerance used to decide which face a hit point lies on.
const faceEps = 1e-7

// cubeSpan runs the slab method, returning the entry and exit parameters of
// the ray through the cube.
func cubeSpan(objRay ray.Ray) (float64, float64, bool) {
	tLo := math.Inf(-1)
	tHi := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o := objRay.Origin[axis]
		d := objRay.Dir[axis]

		if d == 0 {
			// The ray never crosses this slab's boundaries; the origin
			// must already lie between them.
			if o < 0 || o > 1 {
				return 0, 0, false
			}
			continue
		}

		lo := (0 - o) / d
		hi := (1 - o) / d
		if hi < lo {
			lo, hi = hi, lo
		}

		if lo > tLo {
			tLo = lo
		}
		if hi < tHi {
			tHi = hi
		}
		if tLo > tHi {
			return 0, 0, false
		}
	}

	return tLo, tHi, true
}

// cubeFace determines which face a hit point lies on and returns the
// outward normal together with the face's cell of the shared uv atlas.  The
// atlas packs the six faces into a 3x2 grid: column by axis, row by
// boundary.
func cubeFace(p vmath.Point) (vmath.Normal, vmath.UV) {
	for axis := 0; axis < 3; axis++ {
		u := p[(axis+1)%3]
		v := p[(axis+2)%3]

		if math.Abs(p[axis]) < faceEps {
			normal := vmath.Normal{}
			normal[axis] = -1
			return normal, vmath.UV{(float64(axis) + u) / 3, v / 2}
		}
		if math.Abs(p[axis]-1) < faceEps {
			normal := vmath.Normal{}
			normal[axis] = 1
			return normal, vmath.UV{(float64(axis) + u) / 3, (1 + v) / 2}
		}
	}

	// The point is not on any face within tolerance; fall back to the
	// nearest face so a degenerate hit still gets a usable normal.
	bestAxis, bestBoundary, bestDist := 0, 0.0, math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		for _, boundary := range [2]float64{0, 1} {
			if d := math.Abs(p[axis] - boundary); d < bestDist {
				bestAxis, bestBoundary, bestDist = axis, boundary, d
			}
		}
	}
	normal := vmath.Normal{}
	normal[bestAxis] = 2*bestBoundary - 1
	u := p[(bestAxis+1)%3]
	v := p[(bestAxis+2)%3]
	return normal, vmath.UV{(float64(bestAxis) + u) / 3, (bestBoundary + v) / 2}
}

func (c *Cube) hitAt(objRay, worldRay ray.Ray, t float64) HitRecord {
	objPoint := objRay.At(t)
	objNormal, uv := cubeFace(objPoint)
	objNormal = flipAgainst(objNormal, objRay.Dir)

	return HitRecord{
		WorldPoint: c.Xform.TransformPoint(objPoint),
		Normal:     vmath.NormalizeN(c.Xform.TransformNormal(objNormal)),
		UV:         uv,
		T:          t,
		Ray:        worldRay,
		Shape:      c,
	}
}

func (c *Cube) Intersect(worldRay ray.Ray) (HitRecord, bool) {
	objRay := worldRay.Transform(c.Xform.Invert())

	tLo, tHi, ok := cubeSpan(objRay)
	if !ok {
		return HitRecord{}, false
	}

	switch {
	case tLo > objRay.TMin && tLo < objRay.TMax:
		return c.hitAt(objRay, worldRay, tLo), true
	case tHi > objRay.TMin && tHi < objRay.TMax:
		return c.hitAt(objRay, worldRay, tHi), true
	}
	return HitRecord{}, false
}

func (c *Cube) IntersectAll(worldRay ray.Ray) []HitRecord {
	objRay := worldRay.Transform(c.Xform.Invert())

	tLo, tHi, ok := cubeSpan(objRay)
	if !ok {
		return nil
	}

	var hits []HitRecord
	if tLo > objRay.TMin && tLo < objRay.TMax {
		hits = append(hits, c.hitAt(objRay, worldRay, tLo))
	}
	if tHi > objRay.TMin && tHi < objRay.TMax {
		hits = append(hits, c.hitAt(objRay, worldRay, tHi))
	}
	return hits
}

func (c *Cube) Contains(worldPoint vmath.Point) bool {
	p := c.Xform.Invert().TransformPoint(worldPoint)
	return p[0] > 0 && p[0] < 1 && p[1] > 0 && p[1] < 1 && p[2] > 0 && p[2] < 1
}

func (c *Cube) Equals(other Shape) bool {
	o, ok := other.(*Cube)
	if !ok {
		return false
	}
	return affinetransform.Close(c.Xform, o.Xform, equalTolerance)
}
