// Package affinetransform implements invertible affine transforms over
// points, vectors, and normals.
//
// Every transform carries both its forward and inverse halves.  The inverse
// is always built analytically by the factory that made the forward half
// (translation negates the offset, rotation negates the angle, scaling takes
// reciprocals), never by numeric matrix inversion, so the pair stays
// algebraically consistent under composition.
package affinetransform

import (
	"errors"
	"math"

	"lantern/vmath"
)

// ErrZeroScale is returned when a scaling transform is requested with a zero
// factor on some axis.  Such a transform has no inverse.
var ErrZeroScale = errors.New("affinetransform: zero scaling factor")

// AffineTransform maps point p to Linear·p + Offset.  InvLinear and
// InvOffset hold the same data for the inverse map.
type AffineTransform struct {
	Linear vmath.Mat33
	Offset vmath.Vec

	InvLinear vmath.Mat33
	InvOffset vmath.Vec
}

func Identity() AffineTransform {
	return AffineTransform{
		Linear:    vmath.Identity33(),
		InvLinear: vmath.Identity33(),
	}
}

func Translate(x vmath.Vec) AffineTransform {
	return AffineTransform{
		Linear:    vmath.Identity33(),
		Offset:    x,
		InvLinear: vmath.Identity33(),
		InvOffset: vmath.NegV(x),
	}
}

// Scale builds a transform that scales each axis independently.  Every
// factor must be nonzero.
func Scale(x, y, z float64) (AffineTransform, error) {
	if x == 0 || y == 0 || z == 0 {
		return AffineTransform{}, ErrZeroScale
	}
	return AffineTransform{
		Linear: vmath.Mat33{
			x, 0, 0,
			0, y, 0,
			0, 0, z,
		},
		InvLinear: vmath.Mat33{
			1 / x, 0, 0,
			0, 1 / y, 0,
			0, 0, 1 / z,
		},
	}, nil
}

// RotateX builds a rotation about the x axis by angle radians.  The inverse
// is the rotation by -angle.
func RotateX(angle float64) AffineTransform {
	s, c := math.Sincos(angle)
	return AffineTransform{
		Linear: vmath.Mat33{
			1, 0, 0,
			0, c, -s,
			0, s, c,
		},
		InvLinear: vmath.Mat33{
			1, 0, 0,
			0, c, s,
			0, -s, c,
		},
	}
}

func RotateY(angle float64) AffineTransform {
	s, c := math.Sincos(angle)
	return AffineTransform{
		Linear: vmath.Mat33{
			c, 0, s,
			0, 1, 0,
			-s, 0, c,
		},
		InvLinear: vmath.Mat33{
			c, 0, -s,
			0, 1, 0,
			s, 0, c,
		},
	}
}

func RotateZ(angle float64) AffineTransform {
	s, c := math.Sincos(angle)
	return AffineTransform{
		Linear: vmath.Mat33{
			c, -s, 0,
			s, c, 0,
			0, 0, 1,
		},
		InvLinear: vmath.Mat33{
			c, s, 0,
			-s, c, 0,
			0, 0, 1,
		},
	}
}

// Compose returns the transform that applies b first, then a.
func Compose(a, b AffineTransform) AffineTransform {
	return AffineTransform{
		Linear:    vmath.MulMM(a.Linear, b.Linear),
		Offset:    vmath.AddVV(vmath.MulMV(a.Linear, b.Offset), a.Offset),
		InvLinear: vmath.MulMM(b.InvLinear, a.InvLinear),
		InvOffset: vmath.AddVV(vmath.MulMV(b.InvLinear, a.InvOffset), b.InvOffset),
	}
}

// Invert swaps the forward and inverse halves.
func (t AffineTransform) Invert() AffineTransform {
	return AffineTransform{
		Linear:    t.InvLinear,
		Offset:    t.InvOffset,
		InvLinear: t.Linear,
		InvOffset: t.Offset,
	}
}

func (t AffineTransform) TransformPoint(p vmath.Point) vmath.Point {
	v := vmath.AddVV(vmath.MulMV(t.Linear, vmath.Vec(p)), t.Offset)
	return vmath.Point(v)
}

func (t AffineTransform) TransformVec(v vmath.Vec) vmath.Vec {
	return vmath.MulMV(t.Linear, v)
}

// TransformNormal maps a normal through the transpose of the inverse linear
// map.  The result is not renormalized.
func (t AffineTransform) TransformNormal(n vmath.Normal) vmath.Normal {
	v := vmath.MulMV(vmath.Transpose(t.InvLinear), n.ToVec())
	return vmath.Normal(v)
}

// IsConsistent checks that the forward and inverse halves actually compose
// to the identity within eps.
func (t AffineTransform) IsConsistent(eps float64) bool {
	prod := Compose(t, t.Invert())
	if !vmath.CloseMM(prod.Linear, vmath.Identity33(), eps) {
		return false
	}
	return vmath.CloseVV(prod.Offset, vmath.Vec{}, eps)
}

// Close reports whether two transforms agree within eps, in both halves.
func Close(a, b AffineTransform, eps float64) bool {
	return vmath.CloseMM(a.Linear, b.Linear, eps) &&
		vmath.CloseVV(a.Offset, b.Offset, eps) &&
		vmath.CloseMM(a.InvLinear, b.InvLinear, eps) &&
		vmath.CloseVV(a.InvOffset, b.InvOffset, eps)
}
