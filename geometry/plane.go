package geometry

import (
	"math"

	"lantern/affinetransform"
	"lantern/material"
	"lantern/ray"
	"lantern/vmath"
)

// Plane is the xy-plane z = 0, tiled periodically by its uv mapping.  The
// solid it bounds for containment purposes is the half space z < 0.
type Plane struct {
	Xform affinetransform.AffineTransform
	Mtl   material.Material
}

func NewPlane(xform affinetransform.AffineTransform, mtl material.Material) *Plane {
	return &Plane{Xform: xform, Mtl: mtl}
}

func (p *Plane) Transform() affinetransform.AffineTransform { return p.Xform }
func (p *Plane) Material() material.Material                { return p.Mtl }

func (p *Plane) intersectObj(objRay ray.Ray) (float64, bool) {
	if math.Abs(objRay.Dir[2]) < 1e-10 {
		// Ray parallel to the plane.
		return 0, false
	}

	t := -objRay.Origin[2] / objRay.Dir[2]
	if t <= objRay.TMin || t >= objRay.TMax {
		return 0, false
	}
	return t, true
}

func (p *Plane) hitAt(objRay, worldRay ray.Ray, t float64) HitRecord {
	objPoint := objRay.At(t)

	objNormal := flipAgainst(vmath.Normal{0, 0, 1}, objRay.Dir)

	return HitRecord{
		WorldPoint: p.Xform.TransformPoint(objPoint),
		Normal:     vmath.NormalizeN(p.Xform.TransformNormal(objNormal)),
		UV: vmath.UV{
			objPoint[0] - math.Floor(objPoint[0]),
			objPoint[1] - math.Floor(objPoint[1]),
		},
		T:     t,
		Ray:   worldRay,
		Shape: p,
	}
}

func (p *Plane) Intersect(worldRay ray.Ray) (HitRecord, bool) {
	objRay := worldRay.Transform(p.Xform.Invert())
	t, ok := p.intersectObj(objRay)
	if !ok {
		return HitRecord{}, false
	}
	return p.hitAt(objRay, worldRay, t), true
}

func (p *Plane) IntersectAll(worldRay ray.Ray) []HitRecord {
	objRay := worldRay.Transform(p.Xform.Invert())
	t, ok := p.intersectObj(objRay)
	if !ok {
		return nil
	}
	return []HitRecord{p.hitAt(objRay, worldRay, t)}
}

func (p *Plane) Contains(worldPoint vmath.Point) bool {
	objPoint := p.Xform.Invert().TransformPoint(worldPoint)
	return objPoint[2] < 0
}

func (p *Plane) Equals(other Shape) bool {
	o, ok := other.(*Plane)
	if !ok {
		return false
	}
	return affinetransform.Close(p.Xform, o.Xform, equalTolerance)
}
