// Package core defines the domain model for UTM benchmark instances:
// the urban grid, the timing parameters, and the flight intentions
// generated over them.
package core

import "fmt"

// NodeID is a unique grid node identifier. Nodes are numbered row-major,
// so on a grid with C columns node (r, c) has id r*C + c.
type NodeID int

// Pos is a 2D world position in meters.
type Pos struct {
	X, Y float64
}

// GridSpec describes a directed 2D grid graph with uniform edge lengths.
type GridSpec struct {
	Rows       int
	Cols       int
	EdgeLength float64 // meters, identical for every arc
}

// Validate checks the grid dimensions and edge length.
func (s GridSpec) Validate() error {
	if s.Rows < 1 || s.Cols < 1 {
		return fmt.Errorf("%w: grid dimensions must be positive, got %dx%d",
			ErrInvalidParameter, s.Rows, s.Cols)
	}
	if s.EdgeLength <= 0 {
		return fmt.Errorf("%w: edge length must be positive, got %g",
			ErrInvalidParameter, s.EdgeLength)
	}
	return nil
}

// Arc is a directed connection between two grid nodes.
type Arc struct {
	From, To NodeID
	Length   float64
}

// Grid is the traversable urban airspace graph: a 4-connected lattice
// with symmetric directed arcs. It is built once and never mutated;
// flights only query it for adjacency and coordinates.
type Grid struct {
	spec GridSpec
	adj  map[NodeID][]Arc
}

// NewGrid builds the directed grid for a spec.
func NewGrid(spec GridSpec) (*Grid, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		spec: spec,
		adj:  make(map[NodeID][]Arc, spec.Rows*spec.Cols),
	}

	addArc := func(from, to NodeID) {
		g.adj[from] = append(g.adj[from], Arc{From: from, To: to, Length: spec.EdgeLength})
	}

	for r := 0; r < spec.Rows; r++ {
		for c := 0; c < spec.Cols; c++ {
			id := NodeID(r*spec.Cols + c)
			if _, ok := g.adj[id]; !ok {
				g.adj[id] = nil
			}
			// Symmetric arcs to the right and downward neighbors.
			if c < spec.Cols-1 {
				addArc(id, id+1)
				addArc(id+1, id)
			}
			if r < spec.Rows-1 {
				down := id + NodeID(spec.Cols)
				addArc(id, down)
				addArc(down, id)
			}
		}
	}

	return g, nil
}

// Spec returns the grid's immutable spec.
func (g *Grid) Spec() GridSpec { return g.spec }

// EdgeLength returns the uniform arc length in meters.
func (g *Grid) EdgeLength() float64 { return g.spec.EdgeLength }

// NumNodes returns the node count.
func (g *Grid) NumNodes() int { return g.spec.Rows * g.spec.Cols }

// HasNode reports whether id is a node of the grid.
func (g *Grid) HasNode(id NodeID) bool {
	return id >= 0 && int(id) < g.NumNodes()
}

// HasArc reports whether a directed arc from -> to exists.
func (g *Grid) HasArc(from, to NodeID) bool {
	for _, a := range g.adj[from] {
		if a.To == to {
			return true
		}
	}
	return false
}

// Neighbors returns the arcs leaving a node.
func (g *Grid) Neighbors(id NodeID) []Arc {
	return g.adj[id]
}

// NodePos returns the world position of a node.
func (g *Grid) NodePos(id NodeID) Pos {
	r := int(id) / g.spec.Cols
	c := int(id) % g.spec.Cols
	return Pos{
		X: float64(c) * g.spec.EdgeLength,
		Y: float64(r) * g.spec.EdgeLength,
	}
}

// ValidateWalk checks that path is a connected walk over existing arcs
// with distinct start and end nodes.
func (g *Grid) ValidateWalk(path []NodeID) error {
	if len(path) < 2 {
		return fmt.Errorf("%w: walk needs at least two nodes, got %d",
			ErrInvalidPath, len(path))
	}
	for _, n := range path {
		if !g.HasNode(n) {
			return fmt.Errorf("%w: node %d does not exist on %dx%d grid",
				ErrInvalidPath, n, g.spec.Rows, g.spec.Cols)
		}
	}
	if path[0] == path[len(path)-1] {
		return fmt.Errorf("%w: start and end node must differ, both are %d",
			ErrInvalidPath, path[0])
	}
	for i := 0; i < len(path)-1; i++ {
		if !g.HasArc(path[i], path[i+1]) {
			return fmt.Errorf("%w: no arc %d -> %d",
				ErrInvalidPath, path[i], path[i+1])
		}
	}
	return nil
}
