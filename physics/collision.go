package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// Resolution is the outcome of constraining a displacement against geometry.
// Overlap is the part of the requested displacement removed by contacts; a
// non-zero component means a contact on that axis.
type Resolution struct {
	Delta   cp.Vector
	Overlap cp.Vector
}

// Resolve clamps delta so that bounds, moved along each axis separately,
// ends flush against the solid entries it would otherwise enter. When several
// entries are hit on the same axis the one allowing the least travel wins, so
// the result does not depend on the order of geometry.
func Resolve(bounds common.Rect, delta cp.Vector, geometry Geometry) Resolution {
	res := Resolution{Delta: delta}

	horizontal := bounds.Translate(delta.X, 0)
	vertical := bounds.Translate(0, delta.Y)

	for _, e := range geometry {
		if !e.Solid {
			continue
		}
		shape := e.Bounds

		if delta.X != 0 && shape.Intersects(horizontal) {
			if delta.X > 0 {
				res.Delta.X = math.Min(res.Delta.X, shape.X-bounds.Right())
			} else {
				res.Delta.X = math.Max(res.Delta.X, shape.Right()-bounds.X)
			}
		}

		if delta.Y != 0 && shape.Intersects(vertical) {
			if delta.Y > 0 {
				res.Delta.Y = math.Min(res.Delta.Y, shape.Y-bounds.Bottom())
			} else {
				res.Delta.Y = math.Max(res.Delta.Y, shape.Bottom()-bounds.Y)
			}
		}
	}

	res.Overlap = delta.Sub(res.Delta)
	return res
}

// Contact reports whether the resolution removed motion on either axis.
func (r Resolution) Contact() bool {
	return r.Overlap.X != 0 || r.Overlap.Y != 0
}

// Grounded reports a downward contact, i.e. the body rests on something.
func (r Resolution) Grounded() bool {
	return r.Overlap.Y > 0
}
