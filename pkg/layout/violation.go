package layout

import "fmt"

// ViolationType classifies a validation finding.
type ViolationType string

// The four violation categories emitted by the validation pipeline.
const (
	ViolationOutOfBounds  ViolationType = "out_of_bounds"
	ViolationOverlap      ViolationType = "overlap"
	ViolationPlacement    ViolationType = "placement_error"
	ViolationConnectivity ViolationType = "connectivity_error"
)

// GlobalID is the sentinel subject for layout-wide violations that have no
// single offending element (e.g. "no entrance exists").
const GlobalID = "global"

// Violation is a single validation finding. ElementID names the primary
// offender (or GlobalID), TargetID the other party of a pairwise finding.
// The list returned by the engine is a multiset: callers must not rely on
// ordering beyond the engine's documented pass order.
type Violation struct {
	ElementID string        `json:"elementId"`
	TargetID  string        `json:"targetId,omitempty"`
	Type      ViolationType `json:"type"`
	Message   string        `json:"message"`
}

// String renders the violation for logs and test failures.
func (v Violation) String() string {
	if v.TargetID != "" {
		return fmt.Sprintf("[%s] %s vs %s: %s", v.Type, v.ElementID, v.TargetID, v.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", v.Type, v.ElementID, v.Message)
}

// Report is the serialized result of one validation run.
type Report struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// NewReport wraps a violation list in a Report. A nil slice is normalized to
// an empty one so the JSON field is always an array.
func NewReport(violations []Violation) Report {
	if violations == nil {
		violations = []Violation{}
	}
	return Report{Valid: len(violations) == 0, Violations: violations}
}
