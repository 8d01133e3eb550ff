package validate

import (
	"github.com/matzehuels/lotcheck/pkg/geometry"
	"github.com/matzehuels/lotcheck/pkg/layout"
	"github.com/matzehuels/lotcheck/pkg/rules"
	"github.com/matzehuels/lotcheck/pkg/spatial"
)

// Engine validates layouts against a fixed policy and rule table. Engines are
// cheap to create and safe for concurrent use: the only shared state is the
// kernel's guarded corner cache, and the spatial index is rebuilt per call.
type Engine struct {
	policy rules.Policy
	table  *rules.Table
	kernel *geometry.Kernel
}

// New creates an engine. The policy is normalized, so the zero Policy selects
// all defaults.
func New(policy rules.Policy) *Engine {
	p := policy.Normalize()
	return &Engine{
		policy: p,
		table:  rules.NewTable(),
		kernel: geometry.NewKernel(p.CornerCacheSize),
	}
}

// Policy returns the engine's normalized policy.
func (e *Engine) Policy() rules.Policy { return e.policy }

// Validate checks a layout and returns every violation found, in a
// deterministic order (bounds, overlap, placement, connectivity; input
// element order within each pass). A nil or element-less layout is vacuously
// valid. The layout is never mutated and never causes a panic: degenerate
// elements simply degenerate to zero-area checks.
func (e *Engine) Validate(l *layout.Layout) []layout.Violation {
	if l == nil || len(l.Elements) == 0 {
		return nil
	}

	grid := spatial.NewGrid(e.policy.CellSize, l.Width, l.Height)
	for i := range l.Elements {
		el := &l.Elements[i]
		grid.Insert(el, e.kernel.BoundingBox(el))
	}

	var out []layout.Violation
	out = append(out, e.checkBounds(l)...)
	out = append(out, e.checkOverlaps(l, grid)...)
	out = append(out, e.checkPlacement(l, grid)...)
	out = append(out, e.checkConnectivity(l, grid)...)
	return out
}

// ValidateLayout validates with the default policy. It is the package-level
// convenience form of New(rules.Policy{}).Validate(l).
func ValidateLayout(l *layout.Layout) []layout.Violation {
	return New(rules.Policy{}).Validate(l)
}

// candidates returns the broad-phase candidates for el under its footprint
// box, optionally expanded (placement rules search slightly beyond the
// element itself).
func (e *Engine) candidates(grid *spatial.Grid, el *layout.Element, expand float64) []*layout.Element {
	b := e.kernel.BoundingBox(el)
	if expand > 0 {
		b = b.Expand(expand)
	}
	return grid.QueryCandidates(el, b)
}
