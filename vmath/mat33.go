package vmath

// Mat33 is a row-major 3x3 matrix.
//
// There is deliberately no general inversion routine here: every transform in
// the renderer carries an analytically constructed inverse, so nothing ever
// needs to invert a matrix numerically.
type Mat33 [9]float64

func Identity33() Mat33 {
	return Mat33{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

func MulMM(a, b Mat33) Mat33 {
	result := Mat33{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				result[i*3+j] += a[i*3+k] * b[k*3+j]
			}
		}
	}
	return result
}

func MulMV(a Mat33, b Vec) Vec {
	return Vec{
		a[0]*b[0] + a[1]*b[1] + a[2]*b[2],
		a[3]*b[0] + a[4]*b[1] + a[5]*b[2],
		a[6]*b[0] + a[7]*b[1] + a[8]*b[2],
	}
}

func Transpose(m Mat33) Mat33 {
	transpose := Mat33{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			transpose[c*3+r] = m[r*3+c]
		}
	}
	return transpose
}

// CloseMM reports whether two matrices agree elementwise within eps.
func CloseMM(a, b Mat33, eps float64) bool {
	for i := range a {
		d := a[i] - b[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}
