package validate

import (
	"github.com/matzehuels/lotcheck/pkg/geometry"
	"github.com/matzehuels/lotcheck/pkg/layout"
	"github.com/matzehuels/lotcheck/pkg/rules"
	"github.com/matzehuels/lotcheck/pkg/spatial"
)

// checkConnectivity verifies the layout is drivable: entrances feed into
// ramps, ramps reach roads, and a path through the navigable graph leads from
// every entrance to some exit. Exits need no direct ramp contact - they are
// covered by reachability from the entrances.
func (e *Engine) checkConnectivity(l *layout.Layout, grid *spatial.Grid) []layout.Violation {
	var entrances, exits, ramps []*layout.Element
	for i := range l.Elements {
		el := &l.Elements[i]
		switch el.Type {
		case layout.TypeEntrance:
			entrances = append(entrances, el)
		case layout.TypeExit:
			exits = append(exits, el)
		case layout.TypeRamp:
			ramps = append(ramps, el)
		}
	}

	var out []layout.Violation

	// Every entrance must meet a ramp.
	for _, en := range entrances {
		if !e.touchesType(grid, en, layout.TypeRamp) {
			out = append(out, layout.Violation{
				ElementID: en.ID,
				Type:      layout.ViolationConnectivity,
				Message:   "entrance is not connected to any ramp",
			})
		}
	}

	// Every ramp must meet a road.
	for _, r := range ramps {
		if !e.touchesType(grid, r, layout.TypeRoad) {
			out = append(out, layout.Violation{
				ElementID: r.ID,
				Type:      layout.ViolationConnectivity,
				Message:   "ramp is disconnected from any road",
			})
		}
	}

	// Drivable-path reachability from each entrance to some exit.
	if len(exits) > 0 {
		adj := e.buildNavigableGraph(l, grid)
		exitIDs := make(map[string]struct{}, len(exits))
		for _, x := range exits {
			exitIDs[x.ID] = struct{}{}
		}

		for _, en := range entrances {
			if !reachesAny(adj, en.ID, exitIDs) {
				out = append(out, layout.Violation{
					ElementID: en.ID,
					Type:      layout.ViolationConnectivity,
					Message:   "no drivable path to any exit",
				})
			}
		}
	}

	// Global cardinality.
	if len(entrances) == 0 {
		out = append(out, layout.Violation{
			ElementID: layout.GlobalID,
			Type:      layout.ViolationConnectivity,
			Message:   "layout has no entrance",
		})
	}
	if len(exits) == 0 {
		out = append(out, layout.Violation{
			ElementID: layout.GlobalID,
			Type:      layout.ViolationConnectivity,
			Message:   "layout has no exit",
		})
	}

	return out
}

// touchesType reports whether el touches at least one broad-phase candidate
// of the given type, within the policy touch margin.
func (e *Engine) touchesType(grid *spatial.Grid, el *layout.Element, t layout.ElementType) bool {
	for _, c := range e.candidates(grid, el, e.policy.TouchMargin) {
		if c.Type == t && e.kernel.IsTouching(el, c, e.policy.TouchMargin) {
			return true
		}
	}
	return false
}

// buildNavigableGraph links navigable elements (road, ramp, entrance, exit)
// whose exact polygons intersect - shared edges count, since touching
// projections are not separated by the SAT test. Each unordered pair is
// examined once via the lexicographic ID order.
func (e *Engine) buildNavigableGraph(l *layout.Layout, grid *spatial.Grid) map[string][]string {
	adj := make(map[string][]string)
	for i := range l.Elements {
		a := &l.Elements[i]
		if !rules.Navigable(a.Type) {
			continue
		}
		for _, b := range e.candidates(grid, a, 0) {
			if !rules.Navigable(b.Type) || a.ID >= b.ID {
				continue
			}
			ca, cb := e.kernel.Corners(a), e.kernel.Corners(b)
			if geometry.PolygonsIntersect(ca[:], cb[:]) {
				adj[a.ID] = append(adj[a.ID], b.ID)
				adj[b.ID] = append(adj[b.ID], a.ID)
			}
		}
	}
	return adj
}

// reachesAny runs a breadth-first search from start and reports whether any
// target ID is reachable.
func reachesAny(adj map[string][]string, start string, targets map[string]struct{}) bool {
	if _, ok := targets[start]; ok {
		return true
	}

	visited := map[string]struct{}{start: {}}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range adj[cur] {
			if _, seen := visited[next]; seen {
				continue
			}
			if _, ok := targets[next]; ok {
				return true
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return false
}
