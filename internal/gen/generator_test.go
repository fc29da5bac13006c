package gen

import (
	"errors"
	"slices"
	"testing"

	"github.com/elektrokombinacija/utm-bench/internal/core"
)

// testGrid returns a 3x3 grid with 60 m arcs.
func testGrid(t *testing.T) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(core.GridSpec{Rows: 3, Cols: 3, EdgeLength: 60})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	return g
}

// testRefs returns a reference set with offsets [0,10,20,30,40] on the
// 3x3 test grid.
func testRefs(t *testing.T) *core.ReferenceFlightSet {
	t.Helper()
	refs, err := core.NewReferenceFlightSet([]core.ReferenceFlight{
		{Offset: 0, Path: []core.NodeID{0, 1, 2}},
		{Offset: 10, Path: []core.NodeID{3, 4, 5}},
		{Offset: 20, Path: []core.NodeID{6, 7, 8}},
		{Offset: 30, Path: []core.NodeID{0, 3, 6}},
		{Offset: 40, Path: []core.NodeID{2, 5, 8}},
	})
	if err != nil {
		t.Fatalf("NewReferenceFlightSet() error = %v", err)
	}
	return refs
}

func testTiming(t *testing.T) core.TimingParams {
	t.Helper()
	p, err := core.NewTimingParams(core.DefaultTimingParams())
	if err != nil {
		t.Fatalf("NewTimingParams() error = %v", err)
	}
	return p
}

func TestGenerate_Count(t *testing.T) {
	grid, refs, timing := testGrid(t), testRefs(t), testTiming(t)

	for _, n := range []int{1, 2, 3, 7, 20} {
		flights, err := Generate(grid, refs, timing, n, DefaultShiftGranularity)
		if err != nil {
			t.Fatalf("Generate(n=%d) error = %v", n, err)
		}
		if len(flights) != 5*n {
			t.Errorf("Generate(n=%d) produced %d flights, want %d", n, len(flights), 5*n)
		}
	}
}

func TestGenerate_ConcreteScenario(t *testing.T) {
	grid, refs, timing := testGrid(t), testRefs(t), testTiming(t)

	// n=2: replica 1 shift = 1 * 60 * (2-1) = 60.
	flights, err := Generate(grid, refs, timing, 2, 60)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := []float64{0, 10, 20, 30, 40, 60, 70, 80, 90, 100}
	if len(flights) != len(want) {
		t.Fatalf("got %d flights, want %d", len(flights), len(want))
	}
	for pos, w := range want {
		if got := flights[pos].DepartureTime; got != w {
			t.Errorf("flight %d departure = %g, want %g", pos, got, w)
		}
	}

	// n=3: replica shifts are k*60*2 = 0, 120, 240 - not a prefix
	// relationship with the n=2 instance.
	flights3, err := Generate(grid, refs, timing, 3, 60)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for k, shift := range []float64{0, 120, 240} {
		if got := flights3[5*k].DepartureTime; got != shift {
			t.Errorf("n=3 replica %d anchor departure = %g, want %g", k, got, shift)
		}
	}
	if flights3[5].DepartureTime == flights[5].DepartureTime {
		t.Error("n=3 replica 1 should be shifted differently than n=2 replica 1")
	}
}

func TestGenerate_ShiftFormula(t *testing.T) {
	grid, refs, timing := testGrid(t), testRefs(t), testTiming(t)

	for _, n := range []int{1, 2, 4, 9} {
		for _, gran := range []float64{1, 30, 60, 90.5} {
			flights, err := Generate(grid, refs, timing, n, gran)
			if err != nil {
				t.Fatalf("Generate(n=%d, gran=%g) error = %v", n, gran, err)
			}
			for k := 0; k < n; k++ {
				for i := 0; i < refs.Len(); i++ {
					ref, _ := refs.Flight(i)
					want := ref.Offset + float64(k)*gran*float64(n-1)
					got := flights[5*k+i].DepartureTime
					if got != want {
						t.Fatalf("n=%d gran=%g flight 5*%d+%d departure = %g, want %g",
							n, gran, k, i, got, want)
					}
				}
			}
		}
	}
}

func TestGenerate_SingleReplicaKeepsRawOffsets(t *testing.T) {
	grid, refs, timing := testGrid(t), testRefs(t), testTiming(t)

	// With n=1 the shift is zero regardless of granularity.
	for _, gran := range []float64{1, 60, 3600} {
		flights, err := Generate(grid, refs, timing, 1, gran)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		for i, want := range []float64{0, 10, 20, 30, 40} {
			if got := flights[i].DepartureTime; got != want {
				t.Errorf("gran=%g flight %d departure = %g, want %g", gran, i, got, want)
			}
		}
	}
}

func TestGenerate_PathsCopied(t *testing.T) {
	grid, refs, timing := testGrid(t), testRefs(t), testTiming(t)

	flights, err := Generate(grid, refs, timing, 3, 60)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for pos, f := range flights {
		ref, _ := refs.Flight(pos % 5)
		if !slices.Equal(f.Path, ref.Path) {
			t.Errorf("flight %d path = %v, want %v", pos, f.Path, ref.Path)
		}
	}

	// Mutating a generated path must not affect the reference set.
	flights[0].Path[0] = 99
	ref, _ := refs.Flight(0)
	if ref.Path[0] != 0 {
		t.Error("generated flight aliases the reference path")
	}
}

func TestGenerate_OrderingAndNames(t *testing.T) {
	grid, refs, timing := testGrid(t), testRefs(t), testTiming(t)

	flights, err := Generate(grid, refs, timing, 2, 60)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for pos, f := range flights {
		wantReplica, wantRef := pos/5, pos%5
		if f.Replica != wantReplica || f.RefIndex != wantRef {
			t.Errorf("flight %d tagged (k=%d, i=%d), want (%d, %d)",
				pos, f.Replica, f.RefIndex, wantReplica, wantRef)
		}
	}

	wantNames := []string{"D1", "D2", "D3", "D4", "D5", "D6", "D7", "D8", "D9", "D10"}
	for pos, want := range wantNames {
		if flights[pos].Name != want {
			t.Errorf("flight %d name = %q, want %q", pos, flights[pos].Name, want)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	grid, refs, timing := testGrid(t), testRefs(t), testTiming(t)

	a, err := Generate(grid, refs, timing, 4, 60)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(grid, refs, timing, 4, 60)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	assertSameFlights(t, a, b)
}

func TestGenerateParallel_MatchesSerial(t *testing.T) {
	grid, refs, timing := testGrid(t), testRefs(t), testTiming(t)

	serial, err := Generate(grid, refs, timing, 16, 60)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	parallel, err := GenerateParallel(grid, refs, timing, 16, 60)
	if err != nil {
		t.Fatalf("GenerateParallel() error = %v", err)
	}

	assertSameFlights(t, serial, parallel)
}

func assertSameFlights(t *testing.T, a, b []core.FlightIntention) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("flight counts differ: %d vs %d", len(a), len(b))
	}
	for pos := range a {
		fa, fb := a[pos], b[pos]
		if fa.Name != fb.Name || fa.UID != fb.UID ||
			fa.Replica != fb.Replica || fa.RefIndex != fb.RefIndex ||
			fa.DepartureTime != fb.DepartureTime {
			t.Errorf("flight %d differs: %+v vs %+v", pos, fa, fb)
		}
		if !slices.Equal(fa.Path, fb.Path) {
			t.Errorf("flight %d paths differ: %v vs %v", pos, fa.Path, fb.Path)
		}
		if !slices.Equal(fa.Windows, fb.Windows) {
			t.Errorf("flight %d windows differ", pos)
		}
	}
}

func TestGenerate_Rejections(t *testing.T) {
	grid, refs, timing := testGrid(t), testRefs(t), testTiming(t)

	if _, err := Generate(grid, refs, timing, 0, 60); !errors.Is(err, ErrInvalidReplicationCount) {
		t.Errorf("n=0: error = %v, want ErrInvalidReplicationCount", err)
	}
	if _, err := Generate(grid, refs, timing, -3, 60); !errors.Is(err, ErrInvalidReplicationCount) {
		t.Errorf("n=-3: error = %v, want ErrInvalidReplicationCount", err)
	}
	if _, err := Generate(grid, refs, timing, 2, 0); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("granularity=0: error = %v, want ErrInvalidParameter", err)
	}
	if _, err := GenerateParallel(grid, refs, timing, 0, 60); !errors.Is(err, ErrInvalidReplicationCount) {
		t.Errorf("parallel n=0: error = %v, want ErrInvalidReplicationCount", err)
	}
}

func TestGenerate_InvalidPath(t *testing.T) {
	grid, timing := testGrid(t), testTiming(t)

	// Path 0 -> 8 jumps across the grid; not a walk.
	refs, err := core.NewReferenceFlightSet([]core.ReferenceFlight{
		{Offset: 0, Path: []core.NodeID{0, 8}},
		{Offset: 10, Path: []core.NodeID{3, 4, 5}},
		{Offset: 20, Path: []core.NodeID{6, 7, 8}},
		{Offset: 30, Path: []core.NodeID{0, 3, 6}},
		{Offset: 40, Path: []core.NodeID{2, 5, 8}},
	})
	if err != nil {
		t.Fatalf("NewReferenceFlightSet() error = %v", err)
	}

	if _, err := Generate(grid, refs, timing, 2, 60); !errors.Is(err, core.ErrInvalidPath) {
		t.Errorf("error = %v, want ErrInvalidPath", err)
	}
}

func TestGenerate_DefaultCatalogue(t *testing.T) {
	grid, err := core.NewGrid(core.DefaultGridSpec())
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	flights, err := Generate(grid, core.DefaultReferenceFlights(), testTiming(t), 2, DefaultShiftGranularity)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(flights) != 10 {
		t.Fatalf("got %d flights, want 10", len(flights))
	}

	// D2 offset 36, replica 1 shift 60.
	if got := flights[6].DepartureTime; got != 96 {
		t.Errorf("flight D7 departure = %g, want 96", got)
	}
}
