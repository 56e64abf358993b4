// Package ray defines the light ray fired through the scene.
package ray

import (
	"math"

	"lantern/affinetransform"
	"lantern/vmath"
)

// DefaultTMin is the default lower bound of a ray's valid parameter
// interval, chosen to step over the surface a secondary ray starts on.
const DefaultTMin = 1e-5

// Ray is a half line with a valid parameter interval [TMin, TMax) and a
// recursion depth used by the path tracer.
type Ray struct {
	Origin vmath.Point
	Dir    vmath.Vec

	TMin, TMax float64

	Depth int
}

// New builds a ray with the default parameter interval and zero depth.
func New(origin vmath.Point, dir vmath.Vec) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		TMin:   DefaultTMin,
		TMax:   math.Inf(1),
	}
}

// At evaluates the ray at parameter t.
func (r Ray) At(t float64) vmath.Point {
	return vmath.Point{
		r.Origin[0] + t*r.Dir[0],
		r.Origin[1] + t*r.Dir[1],
		r.Origin[2] + t*r.Dir[2],
	}
}

// Transform maps the ray through an affine transform.
//
// Dir is deliberately not renormalized: a parameter value measured on the
// transformed ray then names the same point as on the original ray, which is
// what lets the CSG combinator merge hit lists across object spaces.
func (r Ray) Transform(t affinetransform.AffineTransform) Ray {
	return Ray{
		Origin: t.TransformPoint(r.Origin),
		Dir:    t.TransformVec(r.Dir),
		TMin:   r.TMin,
		TMax:   r.TMax,
		Depth:  r.Depth,
	}
}

// IsClose reports whether two rays have the same origin and direction
// within eps.
func (r Ray) IsClose(other Ray, eps float64) bool {
	return vmath.ClosePP(r.Origin, other.Origin, eps) && vmath.CloseVV(r.Dir, other.Dir, eps)
}
