package geometry

import (
	"math"
	"sync"

	"github.com/golang/geo/r2"

	"github.com/matzehuels/lotcheck/pkg/layout"
)

// DefaultCornerCacheSize bounds the corner memoization cache. Validation of a
// layout with hundreds of elements touches each element's corners dozens of
// times, so the cache pays for itself quickly; on overflow it is cleared
// wholesale rather than evicted entry-by-entry.
const DefaultCornerCacheSize = 2048

// cornerKey is the structural memoization key: the exact numeric fields that
// determine an element's corners. A struct key (not a concatenated string)
// gives value-equality hashing with no formatting drift.
type cornerKey struct {
	x, y, w, h, rot float64
}

// Kernel computes element geometry. The zero value is not usable - use
// NewKernel. A Kernel is safe for concurrent use.
type Kernel struct {
	mu      sync.Mutex
	limit   int
	corners map[cornerKey][4]r2.Point
}

// NewKernel creates a kernel whose corner cache holds at most cacheSize
// entries. A non-positive cacheSize selects DefaultCornerCacheSize.
func NewKernel(cacheSize int) *Kernel {
	if cacheSize <= 0 {
		cacheSize = DefaultCornerCacheSize
	}
	return &Kernel{
		limit:   cacheSize,
		corners: make(map[cornerKey][4]r2.Point, cacheSize/4),
	}
}

// Corners returns the element's four corners rotated about its center, in
// top-left, top-right, bottom-right, bottom-left winding (before rotation).
// The result is a pure function of the element's geometry tuple and is
// memoized.
func (k *Kernel) Corners(e *layout.Element) [4]r2.Point {
	if e.Rotation == 0 {
		// Unrotated corners are cheaper to build than to look up.
		return [4]r2.Point{
			{X: e.X, Y: e.Y},
			{X: e.Right(), Y: e.Y},
			{X: e.Right(), Y: e.Bottom()},
			{X: e.X, Y: e.Bottom()},
		}
	}

	key := cornerKey{x: e.X, y: e.Y, w: e.Width, h: e.Height, rot: e.Rotation}

	k.mu.Lock()
	if c, ok := k.corners[key]; ok {
		k.mu.Unlock()
		return c
	}
	k.mu.Unlock()

	c := rotatedCorners(e)

	k.mu.Lock()
	if len(k.corners) >= k.limit {
		k.corners = make(map[cornerKey][4]r2.Point, k.limit/4)
	}
	k.corners[key] = c
	k.mu.Unlock()

	return c
}

// BoundingBox returns the axis-aligned box containing the element's true
// (possibly rotated) footprint. For unrotated elements this is the element's
// own rectangle; otherwise it is computed from the rotated corners. The
// pre-rotation rectangle does NOT contain the rotated footprint of non-square
// elements, so broad-phase consumers must use this box, never the raw one.
func (k *Kernel) BoundingBox(e *layout.Element) Box {
	if e.Rotation == 0 {
		return Box{MinX: e.X, MinY: e.Y, MaxX: e.Right(), MaxY: e.Bottom()}
	}
	c := k.Corners(e)
	b := Box{MinX: c[0].X, MinY: c[0].Y, MaxX: c[0].X, MaxY: c[0].Y}
	for _, p := range c[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// CacheLen reports the current number of memoized corner tuples.
func (k *Kernel) CacheLen() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.corners)
}

// rotatedCorners rotates the element's rectangle about its center. The plane
// is y-down, so the conventional rotation matrix turns clockwise on screen.
func rotatedCorners(e *layout.Element) [4]r2.Point {
	cx, cy := e.Center()
	rad := e.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)

	base := [4]r2.Point{
		{X: e.X, Y: e.Y},
		{X: e.Right(), Y: e.Y},
		{X: e.Right(), Y: e.Bottom()},
		{X: e.X, Y: e.Bottom()},
	}

	var out [4]r2.Point
	for i, p := range base {
		dx, dy := p.X-cx, p.Y-cy
		out[i] = r2.Point{
			X: cx + dx*cos - dy*sin,
			Y: cy + dx*sin + dy*cos,
		}
	}
	return out
}
