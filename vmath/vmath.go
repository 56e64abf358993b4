// Package vmath provides the small linear-algebra kernel used by the
// renderer: 3-element points, vectors, and normals distinguished by their
// transform law, plus row-major 3x3 matrices.
package vmath

import "math"

// Vec is a displacement.  It transforms through the linear part of an
// affine transform only.
type Vec [3]float64

// Point is a location.  It transforms through the full affine transform,
// offset included.
type Point [3]float64

// Normal is a surface normal.  It transforms through the transpose of the
// inverse linear map, which keeps it perpendicular under nonuniform scaling.
type Normal [3]float64

// UV holds surface parameterization coordinates, each in [0, 1).
type UV [2]float64

func (v Vec) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func (v Vec) NormSquared() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

func Normalize(v Vec) Vec {
	l := v.Norm()
	return Vec{v[0] / l, v[1] / l, v[2] / l}
}

func AddVV(a, b Vec) Vec {
	return Vec{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func SubVV(a, b Vec) Vec {
	return Vec{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func MulVS(a Vec, b float64) Vec {
	return Vec{a[0] * b, a[1] * b, a[2] * b}
}

func NegV(a Vec) Vec {
	return Vec{-a[0], -a[1], -a[2]}
}

func IProd(a, b Vec) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func CProd(a, b Vec) Vec {
	return Vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func AddPV(a Point, b Vec) Point {
	return Point{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func SubPP(a, b Point) Vec {
	return Vec{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (n Normal) ToVec() Vec {
	return Vec{n[0], n[1], n[2]}
}

func NormalizeN(n Normal) Normal {
	l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	return Normal{n[0] / l, n[1] / l, n[2] / l}
}

func NegN(n Normal) Normal {
	return Normal{-n[0], -n[1], -n[2]}
}

// Reflect mirrors a about the normal n.
func Reflect(a Vec, n Normal) Vec {
	nv := n.ToVec()
	return SubVV(a, MulVS(nv, 2*IProd(a, nv)))
}

// ONB builds an orthonormal basis (e1, e2, e3) with e3 along n, using the
// branchless construction of Duff et al.  n must be normalized.
func ONB(n Normal) (Vec, Vec, Vec) {
	sign := math.Copysign(1.0, n[2])
	a := -1.0 / (sign + n[2])
	b := n[0] * n[1] * a

	e1 := Vec{1.0 + sign*n[0]*n[0]*a, sign * b, -sign * n[0]}
	e2 := Vec{b, sign + n[1]*n[1]*a, -n[1]}
	return e1, e2, n.ToVec()
}

// CloseVV reports whether two vectors agree componentwise within eps.
func CloseVV(a, b Vec, eps float64) bool {
	return math.Abs(a[0]-b[0]) < eps && math.Abs(a[1]-b[1]) < eps && math.Abs(a[2]-b[2]) < eps
}

// ClosePP reports whether two points agree componentwise within eps.
func ClosePP(a, b Point, eps float64) bool {
	return math.Abs(a[0]-b[0]) < eps && math.Abs(a[1]-b[1]) < eps && math.Abs(a[2]-b[2]) < eps
}

// CloseNN reports whether two normals agree componentwise within eps.
func CloseNN(a, b Normal, eps float64) bool {
	return math.Abs(a[0]-b[0]) < eps && math.Abs(a[1]-b[1]) < eps && math.Abs(a[2]-b[2]) < eps
}
