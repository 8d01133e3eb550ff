package rules

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Default threshold values. These are the current product snapshot; earlier
// revisions shipped OverlapEpsilon 0.5/1.5 and ConnectorTolerance 2/8, so the
// pipeline is tested under both regimes.
const (
	DefaultCellSize           = 100.0
	DefaultOverlapEpsilon     = 1.0
	DefaultTouchMargin        = 2.0
	DefaultConnectorTolerance = 2.0
	DefaultOnRoadPadding      = 5.0
	DefaultBoundsEpsilon      = 1e-6
	DefaultCornerCacheSize    = 2048
)

// Policy bundles every tunable threshold of the validation engine. The zero
// value is usable: zero or negative fields fall back to their defaults, so a
// partial TOML file only overrides what it names.
type Policy struct {
	// CellSize is the broad-phase grid pitch in plane units.
	CellSize float64 `toml:"cell_size"`

	// OverlapEpsilon is the depth below which an axis-aligned overlap is
	// classified as touching rather than overlapping, absorbing float and
	// snapping noise.
	OverlapEpsilon float64 `toml:"overlap_epsilon"`

	// TouchMargin expands bounding boxes in the touching predicate,
	// compensating for exact-contact float error.
	TouchMargin float64 `toml:"touch_margin"`

	// ConnectorTolerance is the maximum thickness of a ramp/road (or
	// ramp/portal) intersection that still counts as a valid shallow
	// connection instead of a crash.
	ConnectorTolerance float64 `toml:"connector_tolerance"`

	// OnRoadPadding loosens the "must sit on a road" placement test.
	OnRoadPadding float64 `toml:"on_road_padding"`

	// BoundsEpsilon tolerates corners this far outside the plane.
	BoundsEpsilon float64 `toml:"bounds_epsilon"`

	// CornerCacheSize bounds the geometry kernel's memoization cache.
	CornerCacheSize int `toml:"corner_cache_size"`
}

// DefaultPolicy returns the current product snapshot of all thresholds.
func DefaultPolicy() Policy {
	return Policy{
		CellSize:           DefaultCellSize,
		OverlapEpsilon:     DefaultOverlapEpsilon,
		TouchMargin:        DefaultTouchMargin,
		ConnectorTolerance: DefaultConnectorTolerance,
		OnRoadPadding:      DefaultOnRoadPadding,
		BoundsEpsilon:      DefaultBoundsEpsilon,
		CornerCacheSize:    DefaultCornerCacheSize,
	}
}

// Normalize fills zero and negative fields with their defaults.
func (p Policy) Normalize() Policy {
	d := DefaultPolicy()
	if p.CellSize <= 0 {
		p.CellSize = d.CellSize
	}
	if p.OverlapEpsilon <= 0 {
		p.OverlapEpsilon = d.OverlapEpsilon
	}
	if p.TouchMargin <= 0 {
		p.TouchMargin = d.TouchMargin
	}
	if p.ConnectorTolerance <= 0 {
		p.ConnectorTolerance = d.ConnectorTolerance
	}
	if p.OnRoadPadding <= 0 {
		p.OnRoadPadding = d.OnRoadPadding
	}
	if p.BoundsEpsilon <= 0 {
		p.BoundsEpsilon = d.BoundsEpsilon
	}
	if p.CornerCacheSize <= 0 {
		p.CornerCacheSize = d.CornerCacheSize
	}
	return p
}

// LoadPolicy reads a TOML policy file and normalizes it. Fields absent from
// the file keep their defaults; unknown keys are rejected so typos surface.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy %s: %w", path, err)
	}

	var p Policy
	meta, err := toml.Decode(string(data), &p)
	if err != nil {
		return Policy{}, fmt.Errorf("parse policy %s: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Policy{}, fmt.Errorf("policy %s: unknown key %q", path, undec[0].String())
	}

	return p.Normalize(), nil
}
