package geometry

import (
	"math"

	"lantern/affinetransform"
	"lantern/material"
	"lantern/ray"
	"lantern/vmath"
)

// Sphere is the unit sphere centered at the origin.
type Sphere struct {
	Xform affinetransform.AffineTransform
	Mtl   material.Material
}

func NewSphere(xform affinetransform.AffineTransform, mtl material.Material) *Sphere {
	return &Sphere{Xform: xform, Mtl: mtl}
}

func (s *Sphere) Transform() affinetransform.AffineTransform { return s.Xform }
func (s *Sphere) Material() material.Material                { return s.Mtl }

// sphereRoots solves the quadratic a t² + 2 b t + c = 0 through the reduced
// discriminant, returning the roots in ascending order.
func sphereRoots(objRay ray.Ray) (float64, float64, bool) {
	origin := vmath.Vec(objRay.Origin)

	a := objRay.Dir.NormSquared()
	b := vmath.IProd(origin, objRay.Dir)
	c := origin.NormSquared() - 1

	quarterDelta := b*b - a*c
	if quarterDelta <= 0 {
		return 0, 0, false
	}

	sqrtQuarterDelta := math.Sqrt(quarterDelta)
	return (-b - sqrtQuarterDelta) / a, (-b + sqrtQuarterDelta) / a, true
}

func sphereUV(p vmath.Point) vmath.UV {
	u := math.Atan2(p[1], p[0]) / (2 * math.Pi)
	if u < 0 {
		u += 1
	}
	z := p[2]
	if z > 1 {
		z = 1
	}
	if z < -1 {
		z = -1
	}
	return vmath.UV{u, math.Acos(z) / math.Pi}
}

func (s *Sphere) hitAt(objRay, worldRay ray.Ray, t float64) HitRecord {
	objPoint := objRay.At(t)

	objNormal := flipAgainst(vmath.Normal(objPoint), objRay.Dir)

	return HitRecord{
		WorldPoint: s.Xform.TransformPoint(objPoint),
		Normal:     vmath.NormalizeN(s.Xform.TransformNormal(objNormal)),
		UV:         sphereUV(objPoint),
		T:          t,
		Ray:        worldRay,
		Shape:      s,
	}
}

func (s *Sphere) Intersect(worldRay ray.Ray) (HitRecord, bool) {
	objRay := worldRay.Transform(s.Xform.Invert())

	t1, t2, ok := sphereRoots(objRay)
	if !ok {
		return HitRecord{}, false
	}

	switch {
	case t1 > objRay.TMin && t1 < objRay.TMax:
		return s.hitAt(objRay, worldRay, t1), true
	case t2 > objRay.TMin && t2 < objRay.TMax:
		return s.hitAt(objRay, worldRay, t2), true
	}
	return HitRecord{}, false
}

func (s *Sphere) IntersectAll(worldRay ray.Ray) []HitRecord {
	objRay := worldRay.Transform(s.Xform.Invert())

	t1, t2, ok := sphereRoots(objRay)
	if !ok {
		return nil
	}

	var hits []HitRecord
	if t1 > objRay.TMin && t1 < objRay.TMax {
		hits = append(hits, s.hitAt(objRay, worldRay, t1))
	}
	if t2 > objRay.TMin && t2 < objRay.TMax {
		hits = append(hits, s.hitAt(objRay, worldRay, t2))
	}
	return hits
}

func (s *Sphere) Contains(worldPoint vmath.Point) bool {
	objPoint := s.Xform.Invert().TransformPoint(worldPoint)
	return vmath.Vec(objPoint).NormSquared() < 1
}

func (s *Sphere) Equals(other Shape) bool {
	o, ok := other.(*Sphere)
	if !ok {
		return false
	}
	return affinetransform.Close(s.Xform, o.Xform, equalTolerance)
}
