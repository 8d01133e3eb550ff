package validate

import (
	"fmt"

	"github.com/matzehuels/lotcheck/pkg/layout"
	"github.com/matzehuels/lotcheck/pkg/rules"
	"github.com/matzehuels/lotcheck/pkg/spatial"
)

// checkPlacement enforces the two surface constraints: road furniture
// (signs, bumps, lane lines, sidewalks, mirrors) must overlap a road within
// the policy padding, and structures (staircases, elevators, portals, ramps,
// safety equipment) must have no tolerant overlap with any road. Sidewalks
// appear only in the first set: they are expected to cross roads.
func (e *Engine) checkPlacement(l *layout.Layout, grid *spatial.Grid) []layout.Violation {
	eps := e.policy.OverlapEpsilon
	pad := e.policy.OnRoadPadding

	var out []layout.Violation
	for i := range l.Elements {
		el := &l.Elements[i]

		switch {
		case rules.MustBeOnRoad(el.Type):
			// The search box is expanded by the padding so roads the element
			// merely borders still appear as candidates.
			found := false
			for _, c := range e.candidates(grid, el, pad) {
				if c.Type == layout.TypeRoad && e.kernel.IsOverlapping(el, c, pad, eps) {
					found = true
					break
				}
			}
			if !found {
				out = append(out, layout.Violation{
					ElementID: el.ID,
					Type:      layout.ViolationPlacement,
					Message:   fmt.Sprintf("%s must be placed on a road", el.Type),
				})
			}

		case rules.MustBeOffRoad(el.Type):
			for _, c := range e.candidates(grid, el, 0) {
				if c.Type != layout.TypeRoad {
					continue
				}
				// Connector pairs (ramp/road) legitimately overlap up to the
				// connector tolerance; everything else gets the plain test.
				if e.table.Lookup(el.Type, c.Type) == rules.VerdictConnector {
					if e.connectorOK(el, c) {
						continue
					}
				} else if !e.kernel.IsOverlapping(el, c, 0, eps) {
					continue
				}
				out = append(out, layout.Violation{
					ElementID: el.ID,
					TargetID:  c.ID,
					Type:      layout.ViolationPlacement,
					Message:   fmt.Sprintf("%s must not be placed on a road", el.Type),
				})
				break
			}
		}
	}
	return out
}
