package spatial

import (
	"fmt"
	"testing"

	"github.com/matzehuels/lotcheck/pkg/geometry"
	"github.com/matzehuels/lotcheck/pkg/layout"
)

func el(id string, x, y, w, h float64) *layout.Element {
	return &layout.Element{ID: id, Type: layout.TypeParkingSpace, X: x, Y: y, Width: w, Height: h}
}

func box(e *layout.Element) geometry.Box {
	return geometry.Box{MinX: e.X, MinY: e.Y, MaxX: e.Right(), MaxY: e.Bottom()}
}

func TestQueryCandidates(t *testing.T) {
	tests := []struct {
		name   string
		others []*layout.Element
		query  *layout.Element
		want   []string
	}{
		{
			name:   "SameCell",
			others: []*layout.Element{el("b", 50, 50, 10, 10)},
			query:  el("a", 10, 10, 20, 20),
			want:   []string{"b"},
		},
		{
			name:   "FarApart",
			others: []*layout.Element{el("b", 900, 900, 10, 10)},
			query:  el("a", 10, 10, 20, 20),
			want:   nil,
		},
		{
			name: "SpanningElementDeduplicated",
			// b covers many cells; it must appear once even though the query
			// box touches several of them.
			others: []*layout.Element{el("b", 0, 0, 450, 40)},
			query:  el("a", 0, 0, 250, 40),
			want:   []string{"b"},
		},
		{
			name: "SortedByID",
			others: []*layout.Element{
				el("z", 20, 20, 10, 10),
				el("m", 40, 40, 10, 10),
				el("b", 60, 60, 10, 10),
			},
			query: el("a", 0, 0, 90, 90),
			want:  []string{"b", "m", "z"},
		},
		{
			name:   "NegativeCoordinates",
			others: []*layout.Element{el("b", -50, -50, 30, 30)},
			query:  el("a", -40, -40, 10, 10),
			want:   []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(100, 1000, 1000)
			for _, o := range tt.others {
				g.Insert(o, box(o))
			}
			g.Insert(tt.query, box(tt.query))

			got := g.QueryCandidates(tt.query, box(tt.query))

			var ids []string
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("candidates = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Fatalf("candidates = %v, want %v", ids, tt.want)
				}
			}
		})
	}
}

func TestQueryExcludesSelf(t *testing.T) {
	g := NewGrid(100, 1000, 1000)
	a := el("a", 10, 10, 20, 20)
	g.Insert(a, box(a))

	if got := g.QueryCandidates(a, box(a)); len(got) != 0 {
		t.Errorf("query must exclude the element itself, got %d candidates", len(got))
	}
}

func TestNeighborCellsReachable(t *testing.T) {
	// An element whose box ends exactly on a cell boundary still lands in the
	// next cell (floor of max coordinate), so boundary neighbors are found.
	g := NewGrid(100, 1000, 1000)
	a := el("a", 0, 0, 100, 100)
	b := el("b", 100, 100, 50, 50)
	g.Insert(a, box(a))
	g.Insert(b, box(b))

	got := g.QueryCandidates(a, box(a))
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("expected boundary neighbor b, got %v", got)
	}
}

func TestInsertClampsOversizedElements(t *testing.T) {
	g := NewGrid(100, 400, 300)

	huge := el("wall-1", 0, 0, 3e5, 5)
	g.Insert(huge, box(huge))

	// A 400x300 plane at pitch 100 has 5x4 addressable cells. An element far
	// larger than the plane may only ever occupy those, not cells in
	// proportion to its own area.
	if got := len(g.cells); got > 20 {
		t.Fatalf("cells = %d, want at most 20", got)
	}

	inPlane := el("p1", 350, 0, 30, 30)
	g.Insert(inPlane, box(inPlane))
	got := g.QueryCandidates(inPlane, box(inPlane))
	if len(got) != 1 || got[0].ID != "wall-1" {
		t.Errorf("oversized element must stay queryable, got %v", got)
	}
}

func TestOutOfPlaneElementsShareBoundaryCells(t *testing.T) {
	g := NewGrid(100, 400, 300)
	a := el("a", 1e6, 1e6, 10, 10)
	b := el("b", 1e6+5, 1e6+5, 10, 10)
	g.Insert(a, box(a))
	g.Insert(b, box(b))

	got := g.QueryCandidates(a, box(a))
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("out-of-plane overlap must remain a candidate pair, got %v", got)
	}
}

func TestGridScalesToHundreds(t *testing.T) {
	g := NewGrid(0, 1200, 1200) // default cell size

	var all []*layout.Element
	for i := 0; i < 400; i++ {
		e := el(fmt.Sprintf("p%03d", i), float64(i%20)*60, float64(i/20)*60, 25, 50)
		all = append(all, e)
		g.Insert(e, box(e))
	}

	// Every element must see its immediate grid neighborhood but nowhere near
	// the full population.
	for _, e := range all {
		got := g.QueryCandidates(e, box(e))
		if len(got) == 0 {
			t.Fatalf("%s: expected some candidates", e.ID)
		}
		if len(got) > 40 {
			t.Fatalf("%s: %d candidates, broad phase is not pruning", e.ID, len(got))
		}
	}
}
