package validate

import (
	"fmt"

	"github.com/matzehuels/lotcheck/pkg/layout"
)

// checkBounds emits an out_of_bounds violation for every element whose
// rotated footprint leaves the [0,W]x[0,H] plane. Unrotated elements are
// settled by their own rectangle; rotated ones get the exact corner test.
func (e *Engine) checkBounds(l *layout.Layout) []layout.Violation {
	eps := e.policy.BoundsEpsilon

	var out []layout.Violation
	for i := range l.Elements {
		el := &l.Elements[i]

		// Cheap pre-check: an unrotated box that fits needs no corner math.
		if el.Rotation == 0 {
			if el.X >= -eps && el.Y >= -eps && el.Right() <= l.Width+eps && el.Bottom() <= l.Height+eps {
				continue
			}
			out = append(out, layout.Violation{
				ElementID: el.ID,
				Type:      layout.ViolationOutOfBounds,
				Message:   fmt.Sprintf("%s extends outside the %gx%g plane", el.Type, l.Width, l.Height),
			})
			continue
		}

		for _, c := range e.kernel.Corners(el) {
			if c.X < -eps || c.Y < -eps || c.X > l.Width+eps || c.Y > l.Height+eps {
				out = append(out, layout.Violation{
					ElementID: el.ID,
					Type:      layout.ViolationOutOfBounds,
					Message: fmt.Sprintf("%s corner (%.1f, %.1f) lies outside the %gx%g plane",
						el.Type, c.X, c.Y, l.Width, l.Height),
				})
				break
			}
		}
	}
	return out
}
