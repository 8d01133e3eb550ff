package layout

import (
	"fmt"
	"math"
)

// ElementType identifies the kind of a placed facility element. The set of
// types is closed: normalization of loosely-typed upstream names into this
// enumeration is the ingestion layer's job, never this module's.
type ElementType string

// The closed element type enumeration.
const (
	TypeWall             ElementType = "wall"
	TypeGround           ElementType = "ground"
	TypeRoad             ElementType = "road"
	TypeRamp             ElementType = "ramp"
	TypeParkingSpace     ElementType = "parking-space"
	TypePillar           ElementType = "pillar"
	TypeEntrance         ElementType = "entrance"
	TypeExit             ElementType = "exit"
	TypeStaircase        ElementType = "staircase"
	TypeElevator         ElementType = "elevator"
	TypeChargingStation  ElementType = "charging-station"
	TypeGuidanceSign     ElementType = "guidance-sign"
	TypeSafeExit         ElementType = "safe-exit"
	TypeFireExtinguisher ElementType = "fire-extinguisher"
	TypeSidewalk         ElementType = "sidewalk"
	TypeSpeedBump        ElementType = "speed-bump"
	TypeLaneLine         ElementType = "lane-line"
	TypeConvexMirror     ElementType = "convex-mirror"
)

// knownTypes is the membership set for IsValid.
var knownTypes = map[ElementType]struct{}{
	TypeWall: {}, TypeGround: {}, TypeRoad: {}, TypeRamp: {},
	TypeParkingSpace: {}, TypePillar: {}, TypeEntrance: {}, TypeExit: {},
	TypeStaircase: {}, TypeElevator: {}, TypeChargingStation: {},
	TypeGuidanceSign: {}, TypeSafeExit: {}, TypeFireExtinguisher: {},
	TypeSidewalk: {}, TypeSpeedBump: {}, TypeLaneLine: {}, TypeConvexMirror: {},
}

// IsValid reports whether t is a member of the closed enumeration.
func (t ElementType) IsValid() bool {
	_, ok := knownTypes[t]
	return ok
}

// Element is a placed rectangular object on the plane. X and Y locate the
// top-left corner before rotation; Rotation is applied in degrees about the
// element's center. Width and Height must be positive.
//
// IDs must be unique within a layout and are compared lexicographically by the
// validation pipeline to avoid double-counting symmetric pair checks; this
// uniqueness is a documented precondition, enforced by Layout.Validate.
type Element struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Rotation float64     `json:"rotation,omitempty"`
}

// Right returns the x coordinate of the unrotated right edge.
func (e *Element) Right() float64 { return e.X + e.Width }

// Bottom returns the y coordinate of the unrotated bottom edge.
func (e *Element) Bottom() float64 { return e.Y + e.Height }

// Center returns the rotation pivot: the center of the unrotated rectangle.
func (e *Element) Center() (cx, cy float64) {
	return e.X + e.Width/2, e.Y + e.Height/2
}

// Layout is the validation input: plane bounds plus a flat element list.
// Element order carries no semantic meaning; it only affects iteration and
// display.
type Layout struct {
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Elements []Element `json:"elements"`
}

// Validate performs the structural precondition checks the validation engine
// relies on but never re-checks itself: positive plane bounds, non-empty
// unique element IDs, positive extents, known types, and finite coordinates.
//
// A nil receiver and an element-less layout are both valid (the engine treats
// them as vacuously passing). Validate never inspects geometry beyond the
// raw numbers - geometric legality is the engine's job.
func (l *Layout) Validate() error {
	if l == nil {
		return nil
	}
	if !finite(l.Width) || !finite(l.Height) {
		return fmt.Errorf("layout bounds must be finite, got %gx%g", l.Width, l.Height)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("layout bounds must be positive, got %gx%g", l.Width, l.Height)
	}

	seen := make(map[string]int, len(l.Elements))
	for i := range l.Elements {
		e := &l.Elements[i]
		if e.ID == "" {
			return fmt.Errorf("element at index %d has empty ID", i)
		}
		if prev, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate element ID %q at indices %d and %d", e.ID, prev, i)
		}
		seen[e.ID] = i

		if !e.Type.IsValid() {
			return fmt.Errorf("element %q has unknown type %q", e.ID, e.Type)
		}
		for _, v := range [...]float64{e.X, e.Y, e.Width, e.Height, e.Rotation} {
			if !finite(v) {
				return fmt.Errorf("element %q has non-finite geometry", e.ID)
			}
		}
		if e.Width <= 0 || e.Height <= 0 {
			return fmt.Errorf("element %q must have positive extents, got %gx%g", e.ID, e.Width, e.Height)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
