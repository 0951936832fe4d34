package datastructure

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// Edge is a directed edge. Both orientations of every undirected edge appear
// in a near-triangulation's edge list.
type Edge struct {
	From int
	To   int
}

func edgeKey(from, to int) int64 {
	return int64(from)<<32 | int64(to)
}

// Adjacency is a mutable vertex-to-neighbor-set list used while assembling a
// near-triangulation. Neighbor sets are ordered, so the edge list derived
// from an Adjacency enumerates v ascending, then neighbor ascending.
type Adjacency struct {
	sets []*treeset.Set
}

func NewAdjacency(vertexSize int) *Adjacency {
	sets := make([]*treeset.Set, vertexSize)
	for i := range sets {
		sets[i] = treeset.NewWithIntComparator()
	}
	return &Adjacency{sets: sets}
}

func (a *Adjacency) Size() int {
	return len(a.sets)
}

// AddVertex appends an isolated vertex and returns its id.
func (a *Adjacency) AddVertex() int {
	a.sets = append(a.sets, treeset.NewWithIntComparator())
	return len(a.sets) - 1
}

// AddEdge inserts the undirected edge {u, v}.
func (a *Adjacency) AddEdge(u, v int) {
	a.sets[u].Add(v)
	a.sets[v].Add(u)
}

func (a *Adjacency) Has(u, v int) bool {
	return a.sets[u].Contains(v)
}

// Degree returns the number of neighbors currently attached to v.
func (a *Adjacency) Degree(v int) int {
	return a.sets[v].Size()
}

// Neighbors returns the neighbors of v in ascending order.
func (a *Adjacency) Neighbors(v int) []int {
	values := a.sets[v].Values()
	neighbors := make([]int, len(values))
	for i, u := range values {
		neighbors[i] = u.(int)
	}
	return neighbors
}

// NearTriangulation is a planar graph in which every bounded face is a
// triangle. Vertices carry an optional degree range (nil when undecided).
// The edge list, the edge-id index and the diagonal map are fixed at
// construction; only per-vertex degrees mutate afterwards.
type NearTriangulation struct {
	vertexSize int
	degrees    []*Degree
	edges      []Edge
	edgeIds    map[int64]int
	// diagonals[e] holds the vertices forming a triangle with both endpoints
	// of e. Every edge belongs to at most two triangles.
	diagonals map[int64][]int
}

func NewNearTriangulation(adj *Adjacency, degrees []*Degree) *NearTriangulation {
	vertexSize := adj.Size()
	if len(degrees) != vertexSize {
		panic(fmt.Sprintf("degree list length %d does not match vertex count %d", len(degrees), vertexSize))
	}

	nt := &NearTriangulation{
		vertexSize: vertexSize,
		degrees:    append([]*Degree(nil), degrees...),
		edgeIds:    make(map[int64]int),
		diagonals:  make(map[int64][]int),
	}
	for v := 0; v < vertexSize; v++ {
		for _, u := range adj.Neighbors(v) {
			nt.edgeIds[edgeKey(v, u)] = len(nt.edges)
			nt.edges = append(nt.edges, Edge{From: v, To: u})
		}
	}
	for _, edge := range nt.edges {
		key := edgeKey(edge.From, edge.To)
		for _, w := range adj.Neighbors(edge.From) {
			if adj.Has(edge.To, w) {
				nt.diagonals[key] = append(nt.diagonals[key], w)
			}
		}
		if len(nt.diagonals[key]) > 2 {
			panic(fmt.Sprintf("edge (%d, %d) belongs to %d triangles", edge.From, edge.To, len(nt.diagonals[key])))
		}
	}
	return nt
}

func (nt *NearTriangulation) VertexSize() int {
	return nt.vertexSize
}

func (nt *NearTriangulation) Degrees() []*Degree {
	return nt.degrees
}

func (nt *NearTriangulation) Edges() []Edge {
	return nt.edges
}

// EdgeID returns the index of the directed edge (from, to) in Edges.
func (nt *NearTriangulation) EdgeID(from, to int) (int, bool) {
	id, ok := nt.edgeIds[edgeKey(from, to)]
	return id, ok
}

// DiagonalVertices returns the 0-2 vertices forming a triangle with e.
func (nt *NearTriangulation) DiagonalVertices(e Edge) []int {
	return nt.diagonals[edgeKey(e.From, e.To)]
}

func (nt *NearTriangulation) SetDegree(v int, degree *Degree) {
	nt.degrees[v] = degree
}

// Clone copies the mutable degree list; the structural members are immutable
// and shared with the original.
func (nt *NearTriangulation) Clone() *NearTriangulation {
	clone := *nt
	clone.degrees = append([]*Degree(nil), nt.degrees...)
	return &clone
}

// Adjacency rebuilds the neighbor-set representation from the edge list.
func (nt *NearTriangulation) Adjacency() *Adjacency {
	adj := NewAdjacency(nt.vertexSize)
	for _, e := range nt.edges {
		adj.AddEdge(e.From, e.To)
	}
	return adj
}

// Debug renders one "v degree neighbors" line per vertex.
func (nt *NearTriangulation) Debug() string {
	adj := nt.Adjacency()
	var buf strings.Builder
	for v := 0; v < nt.vertexSize; v++ {
		deg := "?"
		if nt.degrees[v] != nil {
			deg = nt.degrees[v].String()
		}
		neighbors := adj.Neighbors(v)
		parts := make([]string, len(neighbors))
		for i, u := range neighbors {
			parts[i] = fmt.Sprintf("%d", u)
		}
		fmt.Fprintf(&buf, "%d %s %s\n", v, deg, strings.Join(parts, ", "))
	}
	return buf.String()
}
