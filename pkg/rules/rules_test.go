package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/lotcheck/pkg/layout"
)

func TestTableLookup(t *testing.T) {
	table := NewTable()

	tests := []struct {
		name string
		a, b layout.ElementType
		want Verdict
	}{
		{name: "WallWall", a: layout.TypeWall, b: layout.TypeWall, want: VerdictIgnore},
		{name: "RoadRoad", a: layout.TypeRoad, b: layout.TypeRoad, want: VerdictIgnore},
		{name: "GroundAnything", a: layout.TypeGround, b: layout.TypePillar, want: VerdictIgnore},
		{name: "ParkingGround", a: layout.TypeParkingSpace, b: layout.TypeGround, want: VerdictIgnore},
		{name: "ParkingCharging", a: layout.TypeParkingSpace, b: layout.TypeChargingStation, want: VerdictIgnore},
		{name: "ChargingParkingSwapped", a: layout.TypeChargingStation, b: layout.TypeParkingSpace, want: VerdictIgnore},
		{name: "RampRoad", a: layout.TypeRamp, b: layout.TypeRoad, want: VerdictConnector},
		{name: "RoadRampSwapped", a: layout.TypeRoad, b: layout.TypeRamp, want: VerdictConnector},
		{name: "RampEntrance", a: layout.TypeRamp, b: layout.TypeEntrance, want: VerdictConnector},
		{name: "RampExit", a: layout.TypeExit, b: layout.TypeRamp, want: VerdictConnector},
		{name: "WallRoad", a: layout.TypeWall, b: layout.TypeRoad, want: VerdictCheck},
		{name: "PillarParking", a: layout.TypePillar, b: layout.TypeParkingSpace, want: VerdictCheck},
		{name: "RampRamp", a: layout.TypeRamp, b: layout.TypeRamp, want: VerdictCheck},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Lookup(tt.a, tt.b); got != tt.want {
				t.Errorf("Lookup(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTypeSets(t *testing.T) {
	if !Solid(layout.TypePillar) || Solid(layout.TypeGuidanceSign) {
		t.Error("solid set membership wrong")
	}
	if !Navigable(layout.TypeRamp) || Navigable(layout.TypeParkingSpace) {
		t.Error("navigable set membership wrong")
	}
	if !MustBeOnRoad(layout.TypeSpeedBump) || MustBeOnRoad(layout.TypeRamp) {
		t.Error("on-road set membership wrong")
	}
	if !MustBeOffRoad(layout.TypeStaircase) {
		t.Error("off-road set membership wrong")
	}
	if MustBeOffRoad(layout.TypeSidewalk) {
		t.Error("sidewalks cross roads and must be exempt from the off-road rule")
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.CellSize != 100 || p.OverlapEpsilon != 1.0 || p.TouchMargin != 2.0 {
		t.Errorf("unexpected defaults: %+v", p)
	}
	if p != p.Normalize() {
		t.Error("defaults must be stable under Normalize")
	}
}

func TestNormalizeFillsZeroFields(t *testing.T) {
	p := Policy{OverlapEpsilon: 0.5}.Normalize()
	if p.OverlapEpsilon != 0.5 {
		t.Errorf("explicit epsilon overridden: %g", p.OverlapEpsilon)
	}
	if p.CellSize != DefaultCellSize || p.CornerCacheSize != DefaultCornerCacheSize {
		t.Errorf("zero fields not defaulted: %+v", p)
	}
}

func TestLoadPolicy(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, p Policy)
	}{
		{
			name:    "PartialOverride",
			content: "overlap_epsilon = 1.5\nconnector_tolerance = 8.0\n",
			check: func(t *testing.T, p Policy) {
				if p.OverlapEpsilon != 1.5 {
					t.Errorf("overlap_epsilon = %g, want 1.5", p.OverlapEpsilon)
				}
				if p.ConnectorTolerance != 8.0 {
					t.Errorf("connector_tolerance = %g, want 8.0", p.ConnectorTolerance)
				}
				if p.CellSize != DefaultCellSize {
					t.Errorf("cell_size = %g, want default", p.CellSize)
				}
			},
		},
		{
			name:    "Empty",
			content: "",
			check: func(t *testing.T, p Policy) {
				if p != DefaultPolicy() {
					t.Errorf("empty file should yield defaults, got %+v", p)
				}
			},
		},
		{
			name:    "UnknownKey",
			content: "overlap_epsilonn = 1.5\n",
			wantErr: true,
		},
		{
			name:    "Malformed",
			content: "overlap_epsilon = =\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "policy.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			p, err := LoadPolicy(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadPolicy: %v", err)
			}
			tt.check(t, p)
		})
	}
}

func TestLoadPolicyMissingFile(t *testing.T) {
	if _, err := LoadPolicy("nonexistent.toml"); err == nil {
		t.Error("expected error for missing file")
	}
}
