// Package mesh provides the read-only node-adjacency view consumed by the
// block partitioning engine, plus adapters that build one from real mesh
// files or synthetic grids.
package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Adjacency is the static neighbor relation over N nodes. It is built once
// and never mutated by the block engine; only the loader/builder functions
// in this package write to it.
type Adjacency struct {
	N    int
	DMax int
	Deg  []int
	// Adj is the row-major DMax-wide neighbor matrix. Unused slots within a
	// row (index >= Deg[n]) are left at -1 and must never be dereferenced by
	// a caller that respects Deg.
	Adj []int
}

// NewAdjacency allocates an empty adjacency table for n nodes with at most
// dMax neighbors each. All slots start at -1.
func NewAdjacency(n, dMax int) *Adjacency {
	adj := make([]int, n*dMax)
	for i := range adj {
		adj[i] = -1
	}
	return &Adjacency{
		N:    n,
		DMax: dMax,
		Deg:  make([]int, n),
		Adj:  adj,
	}
}

// ErrDegreeExceedsMax is returned when adding an edge would push a node's
// degree past DMax.
var ErrDegreeExceedsMax = fmt.Errorf("mesh: node degree would exceed DMax")

// ErrNodeOutOfRange is returned when an edge references a node id outside
// [0, N).
var ErrNodeOutOfRange = fmt.Errorf("mesh: node id out of range")

// ErrEmptyAdjacency is returned by loaders that derive N from an external
// source (LoadFromGocfd) when that source describes zero vertices.
var ErrEmptyAdjacency = fmt.Errorf("mesh: adjacency has no nodes")

// AddEdge inserts the undirected edge (a, b), skipping it if already
// present. It is the programmatic builder used by tests and by the CLI's
// synthetic-mesh generator.
func (a *Adjacency) AddEdge(u, v int) error {
	if u < 0 || u >= a.N || v < 0 || v >= a.N {
		return ErrNodeOutOfRange
	}
	if u == v {
		return nil
	}
	if !a.addDirected(u, v) {
		return ErrDegreeExceedsMax
	}
	if !a.addDirected(v, u) {
		return ErrDegreeExceedsMax
	}
	return nil
}

func (a *Adjacency) addDirected(u, v int) bool {
	row := a.Adj[u*a.DMax : u*a.DMax+a.DMax]
	for i := 0; i < a.Deg[u]; i++ {
		if row[i] == v {
			return true
		}
	}
	if a.Deg[u] >= a.DMax {
		return false
	}
	row[a.Deg[u]] = v
	a.Deg[u]++
	return true
}

// Neighbors returns the (read-only) slice of live neighbor ids for node n.
func (a *Adjacency) Neighbors(n int) []int {
	return a.Adj[n*a.DMax : n*a.DMax+a.Deg[n]]
}

// NewGridAdjacency builds the 4-neighborhood adjacency of a rows x cols grid,
// node numbering row-major, matching the 4x4 example fixture used throughout
// the property tests (spec.md's own end-to-end scenarios use this shape).
func NewGridAdjacency(rows, cols int) *Adjacency {
	a := NewAdjacency(rows*cols, 4)
	idx := func(r, c int) int { return r*cols + c }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				_ = a.AddEdge(idx(r, c), idx(r, c+1))
			}
			if r+1 < rows {
				_ = a.AddEdge(idx(r, c), idx(r+1, c))
			}
		}
	}
	return a
}

// ToGonumGraph mirrors the flat adjacency matrix into a gonum undirected
// graph. It is used only as an independently-computed cross-check by
// block.Partition.CheckPhysicalAdjacency — block.Verify and the rest of the
// engine always walk the flat matrix directly.
func (a *Adjacency) ToGonumGraph() graph.Undirected {
	g := simple.NewUndirectedGraph()
	for n := 0; n < a.N; n++ {
		g.AddNode(simple.Node(n))
	}
	for n := 0; n < a.N; n++ {
		for _, nb := range a.Neighbors(n) {
			if nb < 0 {
				continue
			}
			if !g.HasEdgeBetween(int64(n), int64(nb)) {
				g.SetEdge(simple.Edge{F: simple.Node(n), T: simple.Node(nb)})
			}
		}
	}
	return g
}
