package rules

import "github.com/matzehuels/lotcheck/pkg/layout"

// Verdict is the outcome of consulting the rule table for a type pair.
type Verdict int

const (
	// VerdictCheck means no exception applies: the pair must pass the exact
	// narrow-phase overlap test.
	VerdictCheck Verdict = iota

	// VerdictIgnore means the pair may interpenetrate freely and is never an
	// overlap violation (e.g. two wall segments meeting at a corner).
	VerdictIgnore

	// VerdictConnector means a shallow intersection is a valid connection
	// (e.g. a ramp butting into a road); only a deep intersection is a crash.
	VerdictConnector
)

// PairRule is one declarative exception: a pure predicate over an unordered
// type pair and the verdict it yields. Rules never inspect geometry.
type PairRule struct {
	Name    string
	Match   func(a, b layout.ElementType) bool
	Verdict Verdict
}

// Table is an ordered rule list; the first matching rule wins. Consulting the
// table is cheap by design - it runs before any exact intersection test.
type Table struct {
	rules []PairRule
}

// NewTable returns the product's default exception table:
//
//   - same-type wall and road pairs interpenetrate freely (walls meet at
//     corners, road segments tile into networks);
//   - ground is the base surface everything sits on and is exempt entirely;
//   - parking spaces legitimately coincide with charging stations;
//   - ramps form tolerant connectors against roads, entrances and exits.
func NewTable() *Table {
	return &Table{rules: []PairRule{
		{Name: "wall/wall", Match: same(layout.TypeWall), Verdict: VerdictIgnore},
		{Name: "road/road", Match: same(layout.TypeRoad), Verdict: VerdictIgnore},
		{Name: "ground/any", Match: either(layout.TypeGround), Verdict: VerdictIgnore},
		{Name: "parking/charging", Match: pair(layout.TypeParkingSpace, layout.TypeChargingStation), Verdict: VerdictIgnore},
		{Name: "ramp/road", Match: pair(layout.TypeRamp, layout.TypeRoad), Verdict: VerdictConnector},
		{Name: "ramp/entrance", Match: pair(layout.TypeRamp, layout.TypeEntrance), Verdict: VerdictConnector},
		{Name: "ramp/exit", Match: pair(layout.TypeRamp, layout.TypeExit), Verdict: VerdictConnector},
	}}
}

// Lookup returns the verdict for an unordered type pair. Rules are evaluated
// in declaration order; pairs no rule matches get VerdictCheck.
func (t *Table) Lookup(a, b layout.ElementType) Verdict {
	for _, r := range t.rules {
		if r.Match(a, b) || r.Match(b, a) {
			return r.Verdict
		}
	}
	return VerdictCheck
}

// same matches a pair where both sides are t.
func same(t layout.ElementType) func(a, b layout.ElementType) bool {
	return func(a, b layout.ElementType) bool { return a == t && b == t }
}

// either matches any pair containing t.
func either(t layout.ElementType) func(a, b layout.ElementType) bool {
	return func(a, b layout.ElementType) bool { return a == t || b == t }
}

// pair matches the ordered pair (x, y); Lookup tries both orders.
func pair(x, y layout.ElementType) func(a, b layout.ElementType) bool {
	return func(a, b layout.ElementType) bool { return a == x && b == y }
}

// =============================================================================
// Type-set predicates
// =============================================================================

var solidTypes = map[layout.ElementType]struct{}{
	layout.TypeParkingSpace:    {},
	layout.TypePillar:          {},
	layout.TypeWall:            {},
	layout.TypeStaircase:       {},
	layout.TypeElevator:        {},
	layout.TypeRoad:            {},
	layout.TypeRamp:            {},
	layout.TypeChargingStation: {},
	layout.TypeEntrance:        {},
	layout.TypeExit:            {},
}

var navigableTypes = map[layout.ElementType]struct{}{
	layout.TypeRoad:     {},
	layout.TypeRamp:     {},
	layout.TypeEntrance: {},
	layout.TypeExit:     {},
}

var onRoadTypes = map[layout.ElementType]struct{}{
	layout.TypeGuidanceSign: {},
	layout.TypeSidewalk:     {},
	layout.TypeSpeedBump:    {},
	layout.TypeLaneLine:     {},
	layout.TypeConvexMirror: {},
}

// offRoadTypes must have no tolerant overlap with a road. Sidewalks are
// deliberately absent: they are expected to cross roads.
var offRoadTypes = map[layout.ElementType]struct{}{
	layout.TypeStaircase:        {},
	layout.TypeElevator:         {},
	layout.TypeSafeExit:         {},
	layout.TypeFireExtinguisher: {},
	layout.TypeEntrance:         {},
	layout.TypeExit:             {},
	layout.TypeRamp:             {},
}

// Solid reports whether the type participates in the pairwise overlap scan.
func Solid(t layout.ElementType) bool {
	_, ok := solidTypes[t]
	return ok
}

// Navigable reports whether the type participates in the drivable-path graph.
func Navigable(t layout.ElementType) bool {
	_, ok := navigableTypes[t]
	return ok
}

// MustBeOnRoad reports whether the type is required to overlap a road.
func MustBeOnRoad(t layout.ElementType) bool {
	_, ok := onRoadTypes[t]
	return ok
}

// MustBeOffRoad reports whether the type is forbidden from overlapping a road.
func MustBeOffRoad(t layout.ElementType) bool {
	_, ok := offRoadTypes[t]
	return ok
}
