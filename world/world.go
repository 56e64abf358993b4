// Package world holds the flat, insertion-ordered collection of top-level
// shapes a ray is traced against.
package world

import (
	"lantern/geometry"
	"lantern/ray"
	"lantern/vmath"
)

// World is an append-only shape list.  It is built once by the scene
// constructor and must not be modified during rendering, which reads it from
// many goroutines.
type World struct {
	shapes []geometry.Shape
}

func New() *World {
	return &World{}
}

func (w *World) Add(s geometry.Shape) {
	w.shapes = append(w.shapes, s)
}

func (w *World) Shapes() []geometry.Shape {
	return w.shapes
}

// Intersect scans the shape list linearly and returns the hit with the
// smallest parameter.  Ties go to the shape inserted first, so results are
// deterministic for a given build order.
func (w *World) Intersect(r ray.Ray) (geometry.HitRecord, bool) {
	var best geometry.HitRecord
	found := false

	for _, s := range w.shapes {
		hit, ok := s.Intersect(r)
		if !ok {
			continue
		}
		if !found || hit.T < best.T {
			best = hit
			found = true
		}
	}

	return best, found
}

// IsPointVisible reports whether the segment from observerPoint to point is
// unobstructed.
func (w *World) IsPointVisible(point, observerPoint vmath.Point) bool {
	direction := vmath.SubPP(point, observerPoint)

	r := ray.Ray{
		Origin: observerPoint,
		Dir:    direction,
		TMin:   1e-2 / direction.Norm(),
		TMax:   1,
	}

	for _, s := range w.shapes {
		if _, ok := s.Intersect(r); ok {
			return false
		}
	}
	return true
}
