package validate

import (
	"fmt"

	"github.com/matzehuels/lotcheck/pkg/geometry"
	"github.com/matzehuels/lotcheck/pkg/layout"
	"github.com/matzehuels/lotcheck/pkg/rules"
	"github.com/matzehuels/lotcheck/pkg/spatial"
)

// checkOverlaps scans solid element pairs for true interpenetration. Each
// unordered pair is processed once (first ID lexicographically smaller), the
// rule table short-circuits known-exempt pairs before any exact math, and a
// bounding-circle distance pre-filter rejects far-apart candidates the grid
// bucketed together before the SAT test runs.
func (e *Engine) checkOverlaps(l *layout.Layout, grid *spatial.Grid) []layout.Violation {
	eps := e.policy.OverlapEpsilon

	var out []layout.Violation
	for i := range l.Elements {
		a := &l.Elements[i]
		if !rules.Solid(a.Type) {
			continue
		}

		for _, b := range e.candidates(grid, a, 0) {
			if !rules.Solid(b.Type) || a.ID >= b.ID {
				continue
			}

			switch e.table.Lookup(a.Type, b.Type) {
			case rules.VerdictIgnore:
				continue
			case rules.VerdictConnector:
				if e.connectorOK(a, b) {
					continue
				}
			}

			if !circlesMayOverlap(a, b) {
				continue
			}
			if !e.kernel.IsOverlapping(a, b, 0, eps) {
				continue
			}

			msg := fmt.Sprintf("%s overlaps %s", a.Type, b.Type)
			if box, ok := geometry.IntersectionBox(a, b, eps); ok {
				msg = fmt.Sprintf("%s by %.1fx%.1f units", msg, box.Width(), box.Height())
			}
			out = append(out, layout.Violation{
				ElementID: a.ID,
				TargetID:  b.ID,
				Type:      layout.ViolationOverlap,
				Message:   msg,
			})
		}
	}
	return out
}

// connectorOK reports whether a tolerant-connector pair forms a valid shallow
// connection: either no overlap deeper than the epsilon at all, or an
// intersection box thinner than the connector tolerance on at least one axis.
// Anything deeper is a crash and falls through to the exact overlap test.
func (e *Engine) connectorOK(a, b *layout.Element) bool {
	box, ok := geometry.IntersectionBox(a, b, e.policy.OverlapEpsilon)
	if !ok {
		return true
	}
	tol := e.policy.ConnectorTolerance
	return box.Width() < tol || box.Height() < tol
}

// circlesMayOverlap is the cheap distance pre-filter: two elements whose
// bounding circles (half-diagonal radii, rotation-invariant) do not meet
// cannot intersect. Squared distances avoid the square root.
func circlesMayOverlap(a, b *layout.Element) bool {
	ax, ay := a.Center()
	bx, by := b.Center()
	dx, dy := ax-bx, ay-by

	ra := (a.Width*a.Width + a.Height*a.Height) / 4
	rb := (b.Width*b.Width + b.Height*b.Height) / 4
	// (sqrt(ra)+sqrt(rb))^2 <= 2*(ra+rb) by AM-QM, so this bound never
	// rejects a truly intersecting pair.
	return dx*dx+dy*dy <= 2*(ra+rb)
}
