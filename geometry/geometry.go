// Package geometry implements the shapes the renderer intersects rays
// against: plane, sphere, cube, and the CSG combinator that merges shapes
// under boolean set operations.
//
// Every shape solves its intersection in its own object space: the incoming
// world ray is mapped through the shape's inverse transform, the local
// closed-form solution is computed, and hit points and normals are mapped
// back through the forward transform.
package geometry

import (
	"lantern/affinetransform"
	"lantern/material"
	"lantern/ray"
	"lantern/vmath"
)

// Shape is the closed set of geometric variants.
type Shape interface {
	// Intersect returns the nearest hit with parameter inside the ray's
	// valid interval, or false when the ray misses.
	Intersect(r ray.Ray) (HitRecord, bool)

	// IntersectAll returns every valid hit in ascending parameter order.
	// A miss is an empty slice.  The CSG combinator consumes these lists.
	IntersectAll(r ray.Ray) []HitRecord

	// Contains reports whether a world-space point is inside the shape.
	Contains(p vmath.Point) bool

	// Transform is the shape's object-to-world transform.
	Transform() affinetransform.AffineTransform

	// Material is the shape's surface material.  For CSG nodes the
	// material lives on the leaf shapes.
	Material() material.Material

	// Equals reports whether two shapes describe approximately the same
	// solid.  Used to reject degenerate CSG constructions.
	Equals(other Shape) bool
}

// HitRecord describes one ray/shape intersection.  It is per-query scratch
// data, produced and consumed during a single trace.
type HitRecord struct {
	// WorldPoint is the hit location in world space.
	WorldPoint vmath.Point

	// Normal is the outward surface normal, flipped to oppose the
	// incoming ray.
	Normal vmath.Normal

	// UV is the surface parameterization at the hit.
	UV vmath.UV

	// T is the ray parameter of the hit.
	T float64

	// Ray is the world-space ray that generated the hit.
	Ray ray.Ray

	// Shape is the leaf shape that was hit.
	Shape Shape
}

// IsClose reports whether two hit records agree geometrically within eps.
func (h HitRecord) IsClose(other HitRecord, eps float64) bool {
	return vmath.ClosePP(h.WorldPoint, other.WorldPoint, eps) &&
		vmath.CloseNN(h.Normal, other.Normal, eps) &&
		h.T-other.T < eps && other.T-h.T < eps &&
		h.Ray.IsClose(other.Ray, eps)
}

// flipAgainst orients n against dir, so the normal always faces the
// incoming ray.
func flipAgainst(n vmath.Normal, dir vmath.Vec) vmath.Normal {
	if vmath.IProd(n.ToVec(), dir) > 0 {
		return vmath.NegN(n)
	}
	return n
}

// equalTolerance is the tolerance used when comparing shapes for equality.
// It is not used in containment tests: CSG boundary decisions compare
// exactly, accepting floating-point sensitivity at coincident surfaces
// rather than admitting non-zero-measure misclassified regions.
const equalTolerance = 1e-10
