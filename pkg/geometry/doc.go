// Package geometry is the kernel of the validation engine: rotated-rectangle
// corner computation, axis-aligned bounding-box math, exact convex-polygon
// intersection via the separating-axis theorem, and the tolerance-aware
// touching predicate.
//
// All functions are pure with one exception: a Kernel memoizes corner
// computation in a bounded cache keyed by the exact (x, y, width, height,
// rotation) tuple, since the same element's corners are recomputed many times
// during a single validation pass. The cache is mutex-guarded so independent
// engines sharing a kernel stay isolated; it clears itself on overflow and can
// never grow without bound.
//
// Points are r2.Point values (github.com/golang/geo/r2). The plane is y-down:
// a positive rotation turns clockwise on screen.
package geometry
