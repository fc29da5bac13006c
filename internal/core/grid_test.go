package core

import (
	"errors"
	"testing"
)

func TestNewGrid_InvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		spec GridSpec
	}{
		{"zero rows", GridSpec{Rows: 0, Cols: 8, EdgeLength: 60}},
		{"negative cols", GridSpec{Rows: 9, Cols: -1, EdgeLength: 60}},
		{"zero edge length", GridSpec{Rows: 9, Cols: 8, EdgeLength: 0}},
		{"negative edge length", GridSpec{Rows: 9, Cols: 8, EdgeLength: -60}},
	}

	for _, tt := range tests {
		_, err := NewGrid(tt.spec)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: NewGrid() error = %v, want ErrInvalidParameter", tt.name, err)
		}
	}
}

func TestGrid_Adjacency(t *testing.T) {
	g, err := NewGrid(GridSpec{Rows: 3, Cols: 3, EdgeLength: 60})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	if got := g.NumNodes(); got != 9 {
		t.Errorf("NumNodes() = %d, want 9", got)
	}

	tests := []struct {
		from, to NodeID
		want     bool
	}{
		{0, 1, true}, // right
		{1, 0, true}, // symmetric
		{0, 3, true}, // down
		{3, 0, true},
		{0, 4, false}, // diagonal
		{2, 3, false}, // row wrap
		{0, 8, false},
	}

	for _, tt := range tests {
		if got := g.HasArc(tt.from, tt.to); got != tt.want {
			t.Errorf("HasArc(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	// Corner has 2 neighbors, center has 4.
	if got := len(g.Neighbors(0)); got != 2 {
		t.Errorf("corner node: %d neighbors, want 2", got)
	}
	if got := len(g.Neighbors(4)); got != 4 {
		t.Errorf("center node: %d neighbors, want 4", got)
	}
}

func TestGrid_UniformArcLength(t *testing.T) {
	g, err := NewGrid(GridSpec{Rows: 4, Cols: 5, EdgeLength: 60})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	for id := NodeID(0); int(id) < g.NumNodes(); id++ {
		for _, a := range g.Neighbors(id) {
			if a.Length != 60 {
				t.Fatalf("arc %d->%d has length %g, want 60", a.From, a.To, a.Length)
			}
		}
	}
}

func TestGrid_NodePos(t *testing.T) {
	g, err := NewGrid(GridSpec{Rows: 9, Cols: 8, EdgeLength: 60})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	// Node 14 is row 1, col 6.
	pos := g.NodePos(14)
	if pos.X != 360 || pos.Y != 60 {
		t.Errorf("NodePos(14) = (%g, %g), want (360, 60)", pos.X, pos.Y)
	}
}

func TestGrid_ValidateWalk(t *testing.T) {
	g, err := NewGrid(GridSpec{Rows: 9, Cols: 8, EdgeLength: 60})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	tests := []struct {
		name    string
		path    []NodeID
		wantErr bool
	}{
		{"straight south", []NodeID{5, 13, 21, 29, 37}, false},
		{"winding", []NodeID{6, 14, 22, 21, 20, 28}, false},
		{"too short", []NodeID{6}, true},
		{"empty", nil, true},
		{"same start and end", []NodeID{6, 14, 6}, true},
		{"disconnected jump", []NodeID{6, 22}, true},
		{"nonexistent node", []NodeID{6, 72}, true},
		{"negative node", []NodeID{-1, 0}, true},
	}

	for _, tt := range tests {
		err := g.ValidateWalk(tt.path)
		if tt.wantErr && !errors.Is(err, ErrInvalidPath) {
			t.Errorf("%s: ValidateWalk() error = %v, want ErrInvalidPath", tt.name, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: ValidateWalk() unexpected error = %v", tt.name, err)
		}
	}
}

func TestDefaultCatalogue_ValidOnDefaultGrid(t *testing.T) {
	g, err := NewGrid(DefaultGridSpec())
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	refs := DefaultReferenceFlights()
	for i := 0; i < refs.Len(); i++ {
		f, err := refs.Flight(i)
		if err != nil {
			t.Fatalf("Flight(%d) error = %v", i, err)
		}
		if err := g.ValidateWalk(f.Path); err != nil {
			t.Errorf("reference flight %d: invalid walk: %v", i, err)
		}
	}
}
