package geometry

import (
	"math"

	"github.com/matzehuels/lotcheck/pkg/layout"
)

// Box is an axis-aligned rectangle in plane coordinates (y-down).
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Expand grows the box by m on all four sides.
func (b Box) Expand(m float64) Box {
	return Box{MinX: b.MinX - m, MinY: b.MinY - m, MaxX: b.MaxX + m, MaxY: b.MaxY + m}
}

// overlaps reports strict overlap on both axes.
func (b Box) overlaps(o Box) bool {
	return b.MinX < o.MaxX && o.MinX < b.MaxX && b.MinY < o.MaxY && o.MinY < b.MaxY
}

// rawBox is the element's unrotated rectangle.
func rawBox(e *layout.Element) Box {
	return Box{MinX: e.X, MinY: e.Y, MaxX: e.Right(), MaxY: e.Bottom()}
}

// IntersectionBox computes the axis-aligned overlap rectangle of two elements'
// unrotated bounding boxes. It returns ok=false when either overlap depth is
// at most eps: overlaps shallower than eps are "touching", not "overlapping",
// absorbing float and snapping noise. This is AABB-only math - a cheap
// pre-filter and message-sizing helper, never a substitute for the
// rotation-aware SAT test.
func IntersectionBox(a, b *layout.Element, eps float64) (Box, bool) {
	ba, bb := rawBox(a), rawBox(b)

	box := Box{
		MinX: math.Max(ba.MinX, bb.MinX),
		MinY: math.Max(ba.MinY, bb.MinY),
		MaxX: math.Min(ba.MaxX, bb.MaxX),
		MaxY: math.Min(ba.MaxY, bb.MaxY),
	}
	if box.Width() <= eps || box.Height() <= eps {
		return Box{}, false
	}
	return box, true
}

// IsOverlapping reports a true (deeper-than-eps) overlap between two elements.
// The footprint bounding box of a, expanded by padding on all sides, is first
// tested against b's footprint box; overlap depths at or below eps on either
// axis reject the pair as merely touching. Surviving pairs are confirmed with
// the exact rotation-aware polygon test on the unpadded shapes.
//
// Padding lets placement rules express "near enough to count as on-top-of"
// without inflating the true polygons.
func (k *Kernel) IsOverlapping(a, b *layout.Element, padding, eps float64) bool {
	ba := k.BoundingBox(a).Expand(padding)
	bb := k.BoundingBox(b)

	if math.Min(ba.MaxX, bb.MaxX)-math.Max(ba.MinX, bb.MinX) <= eps {
		return false
	}
	if math.Min(ba.MaxY, bb.MaxY)-math.Max(ba.MinY, bb.MinY) <= eps {
		return false
	}

	ca, cb := k.Corners(a), k.Corners(b)
	return PolygonsIntersect(ca[:], cb[:])
}

// IsTouching reports adjacency within margin. Exact polygon intersection
// counts as touching; otherwise both footprint boxes are expanded by margin
// and tested for overlap on both axes, compensating for SAT's lack of
// tolerance at exact-contact boundaries where float error can separate two
// mathematically touching rectangles.
func (k *Kernel) IsTouching(a, b *layout.Element, margin float64) bool {
	ca, cb := k.Corners(a), k.Corners(b)
	if PolygonsIntersect(ca[:], cb[:]) {
		return true
	}
	return k.BoundingBox(a).Expand(margin).overlaps(k.BoundingBox(b).Expand(margin))
}
