// Package camera maps screen coordinates (u, v) in [0, 1]² to world rays.
package camera

import (
	"lantern/affinetransform"
	"lantern/ray"
	"lantern/vmath"
)

// Camera fires the ray for screen position (u, v).  (0, 0) is the
// bottom-left corner of the screen, (1, 1) the top-right.
type Camera interface {
	FireRay(u, v float64) ray.Ray
}

// Orthogonal fires parallel rays along the local +x axis.  The screen spans
// y in [-aspect, aspect] and z in [-1, 1].
type Orthogonal struct {
	AspectRatio float64
	Xform       affinetransform.AffineTransform
}

func NewOrthogonal(aspectRatio float64, xform affinetransform.AffineTransform) *Orthogonal {
	return &Orthogonal{AspectRatio: aspectRatio, Xform: xform}
}

func (c *Orthogonal) FireRay(u, v float64) ray.Ray {
	origin := vmath.Point{-1, (1 - 2*u) * c.AspectRatio, 2*v - 1}
	return ray.New(origin, vmath.Vec{1, 0, 0}).Transform(c.Xform)
}

// Perspective fires rays from a point at distance d behind the screen.
type Perspective struct {
	// Distance from the observer to the screen.
	Distance    float64
	AspectRatio float64
	Xform       affinetransform.AffineTransform
}

func NewPerspective(distance, aspectRatio float64, xform affinetransform.AffineTransform) *Perspective {
	return &Perspective{Distance: distance, AspectRatio: aspectRatio, Xform: xform}
}

func (c *Perspective) FireRay(u, v float64) ray.Ray {
	origin := vmath.Point{-c.Distance, 0, 0}
	dir := vmath.Vec{c.Distance, (1 - 2*u) * c.AspectRatio, 2*v - 1}
	return ray.New(origin, dir).Transform(c.Xform)
}
