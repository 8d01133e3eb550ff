// Package validate implements the geometric layout validation engine: a
// deterministic pure function from a facility layout to an ordered list of
// violations.
//
// An Engine runs four independent passes over a broad-phase spatial index
// built fresh for each call:
//
//  1. Bounds - every element's rotated footprint must lie inside the plane.
//  2. Overlap - solid elements must not interpenetrate, modulo the rule
//     table's ignore and connector exceptions.
//  3. Placement - surface-bound types must sit on a road; structure types
//     must stay off roads.
//  4. Connectivity - entrances connect to ramps, ramps to roads, and a
//     drivable path must exist from every entrance to some exit.
//
// The engine never mutates its input, performs no I/O, and holds no state
// across calls beyond the geometry kernel's bounded corner cache. Same layout
// in, same violations out, in the same order - the external repair loop that
// re-validates rapidly depends on this for convergence.
//
// Unique element IDs are a precondition (see layout.Layout.Validate); the
// pairwise scan deduplicates symmetric pairs by lexicographic ID order and
// degenerates if IDs collide.
package validate
