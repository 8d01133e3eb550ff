// Package spatial provides the uniform-grid broad-phase index used by the
// validation pipeline to cut pairwise collision checking from quadratic to
// near-linear. Elements are bucketed into every fixed-size square cell their
// footprint bounding box touches; queries union the buckets under the query
// element's own box.
//
// The index is a candidate superset generator: it may return false positives
// (same cell, no actual contact) but never false negatives, because cell
// coverage is computed from the rotation-aware footprint box. Every candidate
// must still be confirmed by a narrow-phase geometric test.
//
// Cell addresses are clamped to the plane's own cell range. An element
// reaching far outside the plane therefore costs boundary cells only, never
// cells proportional to its area, and the index stays bounded on wild input.
// Clamping is monotone, so boxes sharing a cell before clamping still share
// one after it.
package spatial

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/lotcheck/pkg/geometry"
	"github.com/matzehuels/lotcheck/pkg/layout"
)

// DefaultCellSize is the grid pitch in plane units. It trades bucket fan-out
// against query breadth and is sized so that typical facility elements span
// one to four cells.
const DefaultCellSize = 100.0

// cellKey identifies one grid cell by integer column and row.
type cellKey struct {
	col, row int
}

// Grid is a uniform spatial hash over the layout plane. The zero value is not
// usable - use NewGrid. A Grid is built once per validation call and then
// only queried; it is not safe for concurrent mutation.
type Grid struct {
	cellSize float64
	maxCol   int
	maxRow   int
	cells    map[cellKey][]*layout.Element
}

// NewGrid creates an empty grid over a plane spanning [0, width] x [0, height].
// A non-positive cellSize selects DefaultCellSize.
func NewGrid(cellSize, width, height float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	g := &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]*layout.Element),
	}
	g.maxCol = g.cellClamped(math.Max(width, 0), math.MaxInt32)
	g.maxRow = g.cellClamped(math.Max(height, 0), math.MaxInt32)
	return g
}

// Insert buckets the element into every cell covered by bounds, which must be
// the element's footprint bounding box (rotation-aware; see
// geometry.Kernel.BoundingBox).
func (g *Grid) Insert(e *layout.Element, bounds geometry.Box) {
	minCol, maxCol := g.colRange(bounds)
	minRow, maxRow := g.rowRange(bounds)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			key := cellKey{col: col, row: row}
			g.cells[key] = append(g.cells[key], e)
		}
	}
}

// QueryCandidates returns every distinct element sharing at least one cell
// with bounds, excluding the query element itself. The result is sorted by ID
// so downstream passes iterate deterministically. It never fails; an empty
// region simply yields no candidates.
func (g *Grid) QueryCandidates(e *layout.Element, bounds geometry.Box) []*layout.Element {
	minCol, maxCol := g.colRange(bounds)
	minRow, maxRow := g.rowRange(bounds)

	seen := make(map[string]struct{})
	var out []*layout.Element
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, other := range g.cells[cellKey{col: col, row: row}] {
				if other.ID == e.ID {
					continue
				}
				if _, dup := seen[other.ID]; dup {
					continue
				}
				seen[other.ID] = struct{}{}
				out = append(out, other)
			}
		}
	}

	slices.SortFunc(out, func(a, b *layout.Element) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// colRange and rowRange map a box to its inclusive cell range, clamped to the
// plane's cell range so out-of-plane geometry collapses into boundary cells.
func (g *Grid) colRange(b geometry.Box) (int, int) {
	return g.cellClamped(b.MinX, g.maxCol), g.cellClamped(b.MaxX, g.maxCol)
}

func (g *Grid) rowRange(b geometry.Box) (int, int) {
	return g.cellClamped(b.MinY, g.maxRow), g.cellClamped(b.MaxY, g.maxRow)
}

// cellClamped maps a plane coordinate to its integer cell index, clamped to
// [0, limit]. Clamping happens in the float domain so arbitrarily large
// coordinates never overflow the int conversion.
func (g *Grid) cellClamped(v float64, limit int) int {
	c := math.Floor(v / g.cellSize)
	if c < 0 {
		return 0
	}
	if c > float64(limit) {
		return limit
	}
	return int(c)
}
