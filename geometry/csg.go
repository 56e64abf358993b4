package geometry

import (
	"errors"
	"fmt"

	"lantern/affinetransform"
	"lantern/material"
	"lantern/ray"
	"lantern/vmath"
)

// Operation selects the set semantics of a CSG node.
type Operation int

const (
	// Union keeps every surface of both children, interior crossings
	// included.
	Union Operation = iota

	// Difference keeps the first child minus the second.
	Difference

	// Intersection keeps the region common to both children.
	Intersection

	// Fusion keeps only the outer shell of the union, discarding the
	// surfaces buried inside the other child.
	Fusion
)

func (op Operation) String() string {
	switch op {
	case Union:
		return "union"
	case Difference:
		return "difference"
	case Intersection:
		return "intersection"
	case Fusion:
		return "fusion"
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// ErrIdenticalChildren is returned when a CSG node is constructed from two
// approximately identical children.  The result would have a zero-thickness
// boundary with no well-defined surface.
var ErrIdenticalChildren = errors.New("geometry: csg children are approximately identical")

// CSG combines two child shapes under a boolean operation.  Child order is
// significant for Difference.  The node's own transform applies on top of
// whatever transforms the children carry.
type CSG struct {
	A, B  Shape
	Op    Operation
	Xform affinetransform.AffineTransform
}

// NewCSG builds a CSG node, rejecting degenerate constructions.
func NewCSG(op Operation, a, b Shape, xform affinetransform.AffineTransform) (*CSG, error) {
	if a.Equals(b) {
		return nil, ErrIdenticalChildren
	}
	return &CSG{A: a, B: b, Op: op, Xform: xform}, nil
}

func (c *CSG) Transform() affinetransform.AffineTransform { return c.Xform }

// Material returns the first child's material.  Hit records produced by a
// CSG node reference the leaf shape that was actually hit, so rendering
// never consults this.
func (c *CSG) Material() material.Material { return c.A.Material() }

// validHit decides whether a hit on one child survives the operation.  The
// hit point is expressed in the CSG node's local space, the space the
// children live in.  Containment tests compare exactly, with no epsilon;
// a point on a child's surface counts as outside.
func (c *CSG) validHit(h HitRecord, fromA bool) bool {
	switch c.Op {
	case Union:
		return true
	case Intersection:
		if fromA {
			return c.B.Contains(h.WorldPoint)
		}
		return c.A.Contains(h.WorldPoint)
	case Fusion:
		if fromA {
			return !c.B.Contains(h.WorldPoint)
		}
		return !c.A.Contains(h.WorldPoint)
	case Difference:
		if fromA {
			return !c.B.Contains(h.WorldPoint)
		}
		return c.A.Contains(h.WorldPoint)
	}
	panic(fmt.Sprintf("geometry: unknown CSG operation %d", int(c.Op)))
}

// liftHit maps a hit from the node's local space into world space.  The
// parameter is unchanged because ray transforms preserve it, and the record
// keeps pointing at the leaf shape so its material stays reachable.
func (c *CSG) liftHit(h HitRecord, worldRay ray.Ray) HitRecord {
	return HitRecord{
		WorldPoint: c.Xform.TransformPoint(h.WorldPoint),
		Normal:     vmath.NormalizeN(c.Xform.TransformNormal(h.Normal)),
		UV:         h.UV,
		T:          h.T,
		Ray:        worldRay,
		Shape:      h.Shape,
	}
}

// IntersectAll merges the children's ordered hit lists with a two-pointer
// scan, filtering each candidate through the operation's inclusion rule.
// Tracking which child list a hit came from answers subtree membership even
// when the children are CSG nodes themselves.
func (c *CSG) IntersectAll(worldRay ray.Ray) []HitRecord {
	localRay := worldRay.Transform(c.Xform.Invert())

	hitsA := c.A.IntersectAll(localRay)
	hitsB := c.B.IntersectAll(localRay)

	var merged []HitRecord
	i, j := 0, 0
	for i < len(hitsA) || j < len(hitsB) {
		var h HitRecord
		var fromA bool
		if j >= len(hitsB) || (i < len(hitsA) && hitsA[i].T <= hitsB[j].T) {
			h, fromA = hitsA[i], true
			i++
		} else {
			h = hitsB[j]
			j++
		}

		if c.validHit(h, fromA) {
			merged = append(merged, c.liftHit(h, worldRay))
		}
	}

	return merged
}

func (c *CSG) Intersect(worldRay ray.Ray) (HitRecord, bool) {
	hits := c.IntersectAll(worldRay)
	if len(hits) == 0 {
		return HitRecord{}, false
	}
	return hits[0], true
}

// Contains applies the operation's set rule recursively, composing the
// transform chain down to the leaves.
func (c *CSG) Contains(worldPoint vmath.Point) bool {
	p := c.Xform.Invert().TransformPoint(worldPoint)

	switch c.Op {
	case Union, Fusion:
		return c.A.Contains(p) || c.B.Contains(p)
	case Intersection:
		return c.A.Contains(p) && c.B.Contains(p)
	case Difference:
		return c.A.Contains(p) && !c.B.Contains(p)
	}
	panic(fmt.Sprintf("geometry: unknown CSG operation %d", int(c.Op)))
}

// Equals compares operation, transform, and children.  Children compare as
// an unordered pair for the commutative operations and in order for
// Difference.
func (c *CSG) Equals(other Shape) bool {
	o, ok := other.(*CSG)
	if !ok {
		return false
	}
	if c.Op != o.Op || !affinetransform.Close(c.Xform, o.Xform, equalTolerance) {
		return false
	}

	ordered := c.A.Equals(o.A) && c.B.Equals(o.B)
	if c.Op == Difference {
		return ordered
	}
	return ordered || (c.A.Equals(o.B) && c.B.Equals(o.A))
}
