package geometry

import (
	"math"
	"testing"

	"lantern/affinetransform"
	"lantern/material"
	"lantern/ray"
	"lantern/vmath"
)

// twoSpheres builds the canonical CSG fixture: unit spheres centered at
// z = 0 and z = 1.  A ray from (0, 0, 3) down the z axis crosses their
// surfaces at t = 1, 2, 3, 4.
func twoSpheres() (*Sphere, *Sphere) {
	a := NewSphere(affinetransform.Identity(), material.Default())
	b := NewSphere(affinetransform.Translate(vmath.Vec{0, 0, 1}), material.Default())
	return a, b
}

func probeRay() ray.Ray {
	return ray.New(vmath.Point{0, 0, 3}, vmath.Vec{0, 0, -1})
}

func hitParams(hits []HitRecord) []float64 {
	ts := make([]float64, len(hits))
	for i, h := range hits {
		ts[i] = h.T
	}
	return ts
}

func checkParams(t *testing.T, got []HitRecord, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Got %d hits %v, want %d %v", len(got), hitParams(got), len(want), want)
	}
	for i := range want {
		if math.Abs(got[i].T-want[i]) > 1e-9 {
			t.Errorf("Hit %d: t = %v, want %v", i, got[i].T, want[i])
		}
	}
}

func TestCSGUnion(t *testing.T) {
	a, b := twoSpheres()
	csg, err := NewCSG(Union, a, b, affinetransform.Identity())
	if err != nil {
		t.Fatalf("NewCSG failed: %v", err)
	}

	checkParams(t, csg.IntersectAll(probeRay()), []float64{1, 2, 3, 4})
}

func TestCSGIntersection(t *testing.T) {
	a, b := twoSpheres()
	csg, err := NewCSG(Intersection, a, b, affinetransform.Identity())
	if err != nil {
		t.Fatalf("NewCSG failed: %v", err)
	}

	checkParams(t, csg.IntersectAll(probeRay()), []float64{2, 3})
}

func TestCSGFusion(t *testing.T) {
	a, b := twoSpheres()
	csg, err := NewCSG(Fusion, a, b, affinetransform.Identity())
	if err != nil {
		t.Fatalf("NewCSG failed: %v", err)
	}

	checkParams(t, csg.IntersectAll(probeRay()), []float64{1, 4})
}

func TestCSGDifference(t *testing.T) {
	a, b := twoSpheres()
	csg, err := NewCSG(Difference, a, b, affinetransform.Identity())
	if err != nil {
		t.Fatalf("NewCSG failed: %v", err)
	}

	// sphere_z0 minus sphere_z1 keeps the two hits nearer sphere_z0.
	checkParams(t, csg.IntersectAll(probeRay()), []float64{3, 4})

	// Order matters: the reversed difference keeps the other pair.
	reversed, err := NewCSG(Difference, b, a, affinetransform.Identity())
	if err != nil {
		t.Fatalf("NewCSG failed: %v", err)
	}
	checkParams(t, reversed.IntersectAll(probeRay()), []float64{1, 2})
}

func TestCSGClosestHit(t *testing.T) {
	a, b := twoSpheres()
	csg, err := NewCSG(Difference, a, b, affinetransform.Identity())
	if err != nil {
		t.Fatalf("NewCSG failed: %v", err)
	}

	hit, ok := csg.Intersect(probeRay())
	if !ok {
		t.Fatalf("Closest-hit missed")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Bad closest hit; got t = %v, want 3", hit.T)
	}
	if hit.Shape != a {
		t.Errorf("Closest hit does not reference the leaf sphere that was hit")
	}

	miss := ray.New(vmath.Point{5, 0, 3}, vmath.Vec{0, 0, -1})
	if _, ok := csg.Intersect(miss); ok {
		t.Errorf("Closest-hit unexpectedly found an intersection for a miss")
	}
}

func TestCSGOwnTransform(t *testing.T) {
	a, b := twoSpheres()
	csg, err := NewCSG(Intersection, a, b, affinetransform.Translate(vmath.Vec{10, 0, 0}))
	if err != nil {
		t.Fatalf("NewCSG failed: %v", err)
	}

	r := ray.New(vmath.Point{10, 0, 3}, vmath.Vec{0, 0, -1})
	hits := csg.IntersectAll(r)
	checkParams(t, hits, []float64{2, 3})

	if want := (vmath.Point{10, 0, 1}); !vmath.ClosePP(hits[0].WorldPoint, want, 1e-9) {
		t.Errorf("Bad lifted hit point; got %v, want %v", hits[0].WorldPoint, want)
	}

	if _, ok := csg.Intersect(probeRay()); ok {
		t.Errorf("Untranslated probe ray unexpectedly hit the translated CSG")
	}
}

func TestCSGNested(t *testing.T) {
	// ((z0 ∪ z1) − z1) behaves like the plain difference for the probe
	// ray: membership of a hit in the nested subtree is resolved
	// recursively, not by direct identity.
	a, b := twoSpheres()
	union, err := NewCSG(Union, a, b, affinetransform.Identity())
	if err != nil {
		t.Fatalf("NewCSG failed: %v", err)
	}

	b2 := NewSphere(affinetransform.Translate(vmath.Vec{0, 0, 1}), material.Default())
	diff, err := NewCSG(Difference, union, b2, affinetransform.Identity())
	if err != nil {
		t.Fatalf("NewCSG failed: %v", err)
	}

	// Hits from the union subtree at t = 1, 2, 3, 4; those inside b2
	// (t = 2) are cut away, and b2's own surface at t = 3 is kept where
	// it is inside the union.  t = 1 lies on b2's boundary, which is
	// excluded by the strict containment rule, so it survives.
	checkParams(t, diff.IntersectAll(probeRay()), []float64{1, 3, 3, 4})
}

func TestCSGContains(t *testing.T) {
	a, b := twoSpheres()

	inBoth := vmath.Point{0, 0, 0.5}
	onlyA := vmath.Point{0, 0, -0.5}
	onlyB := vmath.Point{0, 0, 1.5}
	outside := vmath.Point{0, 0, 5}

	tests := []struct {
		op   Operation
		want map[vmath.Point]bool
	}{
		{Union, map[vmath.Point]bool{inBoth: true, onlyA: true, onlyB: true, outside: false}},
		{Fusion, map[vmath.Point]bool{inBoth: true, onlyA: true, onlyB: true, outside: false}},
		{Intersection, map[vmath.Point]bool{inBoth: true, onlyA: false, onlyB: false, outside: false}},
		{Difference, map[vmath.Point]bool{inBoth: false, onlyA: true, onlyB: false, outside: false}},
	}

	for _, test := range tests {
		csg, err := NewCSG(test.op, a, b, affinetransform.Identity())
		if err != nil {
			t.Fatalf("NewCSG(%v) failed: %v", test.op, err)
		}
		for p, want := range test.want {
			if got := csg.Contains(p); got != want {
				t.Errorf("%v.Contains(%v) = %v, want %v", test.op, p, got, want)
			}
		}
	}
}

func TestCSGRejectsIdenticalChildren(t *testing.T) {
	a := NewSphere(affinetransform.Identity(), material.Default())
	b := NewSphere(affinetransform.Identity(), material.Default())

	if _, err := NewCSG(Union, a, b, affinetransform.Identity()); err != ErrIdenticalChildren {
		t.Errorf("NewCSG with identical children: got err %v, want ErrIdenticalChildren", err)
	}
}

func TestShapeEquality(t *testing.T) {
	sphereAt := func(z float64) *Sphere {
		return NewSphere(affinetransform.Translate(vmath.Vec{0, 0, z}), material.Default())
	}

	if !sphereAt(1).Equals(sphereAt(1)) {
		t.Errorf("Identical spheres reported unequal")
	}
	if sphereAt(1).Equals(sphereAt(2)) {
		t.Errorf("Distinct spheres reported equal")
	}
	if sphereAt(1).Equals(NewCube(affinetransform.Translate(vmath.Vec{0, 0, 1}), material.Default())) {
		t.Errorf("Sphere reported equal to a cube")
	}

	mk := func(op Operation, a, b Shape) *CSG {
		csg, err := NewCSG(op, a, b, affinetransform.Identity())
		if err != nil {
			t.Fatalf("NewCSG failed: %v", err)
		}
		return csg
	}

	// Commutative operations compare children as an unordered pair.
	u1 := mk(Union, sphereAt(0), sphereAt(1))
	u2 := mk(Union, sphereAt(1), sphereAt(0))
	if !u1.Equals(u2) {
		t.Errorf("Union children should compare unordered")
	}

	// Difference is ordered.
	d1 := mk(Difference, sphereAt(0), sphereAt(1))
	d2 := mk(Difference, sphereAt(1), sphereAt(0))
	if d1.Equals(d2) {
		t.Errorf("Difference children should compare ordered")
	}

	// Different operations never compare equal.
	if u1.Equals(mk(Fusion, sphereAt(0), sphereAt(1))) {
		t.Errorf("Union compared equal to fusion")
	}
}
