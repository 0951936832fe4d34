package datastructure

import (
	"fmt"
	"strings"
)

// CartWheel extends a wheel with the hub's second and (after
// ExtendThirdNeighbor) third neighborhoods.
type CartWheel struct {
	cartwheel   *NearTriangulation
	numNeighbor int
	// hubNeighborsNeighbors[v] lists, clockwise, the second-neighbors lying
	// between rim vertex v and its rim successors. Populated only for rim
	// vertices of fixed degree; its length is then deg(v) - 3.
	hubNeighborsNeighbors [][]int
	// thirdNeighbors[u] lists, clockwise, the extra neighbors of
	// second-neighbor u that are third-neighbors of the hub. Populated by
	// ExtendThirdNeighbor.
	thirdNeighbors [][]int
}

func NewCartWheel(numNeighbor int, hubNeighborsNeighbors [][]int, cartwheel *NearTriangulation) *CartWheel {
	return &CartWheel{
		cartwheel:             cartwheel,
		numNeighbor:           numNeighbor,
		hubNeighborsNeighbors: hubNeighborsNeighbors,
		thirdNeighbors:        make([][]int, cartwheel.VertexSize()),
	}
}

// NewCartWheelFromWheel builds the second neighborhood of wheel. Rim vertices
// of non-fixed degree (e.g. "8+") leave their side of the second ring open:
// the open-ended part of the local graph is deferred.
func NewCartWheelFromWheel(wheel *Wheel) *CartWheel {
	const hub = 0
	hubDegree := wheel.NumNeighbor()
	adj := NewAdjacency(hubDegree + 1)
	degrees := append([]*Degree(nil), wheel.NearTriangulation().Degrees()...)
	hubNeighborsNeighbors := make([][]int, hubDegree+1)

	newVertex := func() int {
		v := adj.AddVertex()
		degrees = append(degrees, nil)
		return v
	}

	// secondNeighbors[v] is the vertex adjacent to both rim vertex v and its
	// rim successor.
	secondNeighbors := make([]int, hubDegree+1)
	for v := 1; v <= hubDegree; v++ {
		u := v + 1
		if v == hubDegree {
			u = 1
		}
		adj.AddEdge(v, u)
		adj.AddEdge(hub, v)
		if !degrees[v].Fixed() && !degrees[u].Fixed() {
			// No second-neighbor between two open-degree rim vertices.
			continue
		}
		w := newVertex()
		adj.AddEdge(v, w)
		adj.AddEdge(u, w)
		secondNeighbors[v] = w
	}

	for v := 1; v <= hubDegree; v++ {
		degv := degrees[v]
		if !degv.Fixed() {
			continue
		}
		u := v - 1
		if v == 1 {
			u = hubDegree
		}
		first := secondNeighbors[u]
		last := secondNeighbors[v]
		hubNeighborsNeighbors[v] = append(hubNeighborsNeighbors[v], first)
		// Insert deg(v) - 5 fresh second-neighbors between the rim
		// second-neighbors adjacent to v.
		for count := 0; count < degv.Lower()-5; count++ {
			w := newVertex()
			adj.AddEdge(v, w)
			adj.AddEdge(first, w)
			first = w
			hubNeighborsNeighbors[v] = append(hubNeighborsNeighbors[v], w)
		}
		hubNeighborsNeighbors[v] = append(hubNeighborsNeighbors[v], last)
		adj.AddEdge(first, last)
	}

	return NewCartWheel(hubDegree, hubNeighborsNeighbors, NewNearTriangulation(adj, degrees))
}

func (cw *CartWheel) NearTriangulation() *NearTriangulation {
	return cw.cartwheel
}

func (cw *CartWheel) NumNeighbor() int {
	return cw.numNeighbor
}

func (cw *CartWheel) HubNeighborsNeighbors() [][]int {
	return cw.hubNeighborsNeighbors
}

func (cw *CartWheel) ThirdNeighbors() [][]int {
	return cw.thirdNeighbors
}

func (cw *CartWheel) SetDegree(v int, degree *Degree) {
	cw.cartwheel.SetDegree(v, degree)
}

func (cw *CartWheel) Clone() *CartWheel {
	clone := *cw
	clone.cartwheel = cw.cartwheel.Clone()
	return &clone
}

// StringMasked renders the machine-readable line
// "V E deg0 ... deg_{V-1} u0 v0 u1 v1 ...", printing "?" for every vertex
// whose showDegree entry is false.
func (cw *CartWheel) StringMasked(showDegree []bool) string {
	degrees := cw.cartwheel.Degrees()
	edges := cw.cartwheel.Edges()
	vertexSize := cw.cartwheel.VertexSize()

	parts := make([]string, 0, 2+vertexSize+2*len(edges))
	parts = append(parts, fmt.Sprintf("%d", vertexSize), fmt.Sprintf("%d", len(edges)))
	for v := 0; v < vertexSize; v++ {
		if degrees[v] != nil && showDegree[v] {
			parts = append(parts, degrees[v].String())
		} else {
			parts = append(parts, "?")
		}
	}
	for _, e := range edges {
		parts = append(parts, fmt.Sprintf("%d", e.From), fmt.Sprintf("%d", e.To))
	}
	return strings.Join(parts, " ")
}

func (cw *CartWheel) String() string {
	showDegree := make([]bool, cw.cartwheel.VertexSize())
	for i := range showDegree {
		showDegree[i] = true
	}
	return cw.StringMasked(showDegree)
}

// ExtendThirdNeighbor builds the third neighborhood. Every vertex on the
// current boundary circuit must already carry a degree; callers cap undecided
// degrees beforehand.
func (cw *CartWheel) ExtendThirdNeighbor() {
	vertexSize := cw.cartwheel.VertexSize()
	adj := NewAdjacency(vertexSize)
	degrees := append([]*Degree(nil), cw.cartwheel.Degrees()...)
	thirdNeighbors := make([][]int, vertexSize)

	newVertex := func() int {
		v := adj.AddVertex()
		degrees = append(degrees, nil)
		thirdNeighbors = append(thirdNeighbors, nil)
		return v
	}
	getDegree := func(v int) Degree {
		if degrees[v] == nil {
			panic(fmt.Sprintf("vertex %d has no degree while extending the third neighborhood", v))
		}
		return *degrees[v]
	}

	// Densify up to the second neighborhood: complete every triangle the
	// diagonal map knows about.
	for _, edge := range cw.cartwheel.Edges() {
		for _, v := range cw.cartwheel.DiagonalVertices(edge) {
			adj.AddEdge(v, edge.From)
			adj.AddEdge(v, edge.To)
			adj.AddEdge(edge.From, edge.To)
		}
	}

	// The boundary circuit: rim vertices of open degree stand in for
	// themselves, fixed rim vertices contribute their interior
	// second-neighbors (plus the terminal one when the next rim vertex is
	// open).
	hubDegree := cw.numNeighbor
	var circuit []int
	for v := 1; v <= hubDegree; v++ {
		degv := getDegree(v)
		if !degv.Fixed() {
			circuit = append(circuit, v)
			continue
		}
		ring := cw.hubNeighborsNeighbors[v]
		for i := 0; i < len(ring)-1; i++ {
			circuit = append(circuit, ring[i])
		}
		vAfter := v + 1
		if v == hubDegree {
			vAfter = 1
		}
		if !getDegree(vAfter).Fixed() {
			circuit = append(circuit, ring[len(ring)-1])
		}
	}

	// circuitNeighbor[v] is the third-ring vertex adjacent to both circuit
	// vertex v and its circuit successor.
	circuitNeighbor := make([]int, vertexSize)
	for i := range circuitNeighbor {
		circuitNeighbor[i] = -1
	}
	deg0 := getDegree(circuit[0])
	for cidx := 0; cidx < len(circuit); cidx++ {
		v := circuit[cidx]
		u := circuit[0]
		if cidx != len(circuit)-1 {
			u = circuit[cidx+1]
		}
		degv := getDegree(v)
		degu := getDegree(u)
		// Closing steps can find the degree of u or of the circuit start
		// already consumed; they then reuse ring vertices instead of
		// creating new ones.
		if cidx == len(circuit)-2 &&
			degu.Fixed() && adj.Degree(u) == degu.Lower()-1 &&
			deg0.Fixed() && adj.Degree(circuit[0]) == deg0.Lower() {
			circuitNeighbor[v] = circuitNeighbor[circuit[0]]
			adj.AddEdge(v, circuitNeighbor[v])
			adj.AddEdge(u, circuitNeighbor[v])
			continue
		}
		if degv.Fixed() && adj.Degree(v) == degv.Lower() {
			if cidx == 0 {
				panic("circuit start has its degree consumed before any ring vertex exists")
			}
			circuitNeighbor[v] = circuitNeighbor[circuit[cidx-1]]
			adj.AddEdge(u, circuitNeighbor[v])
			continue
		}
		if degu.Fixed() && adj.Degree(u) == degu.Lower() {
			if cidx != len(circuit)-1 {
				panic(fmt.Sprintf("degree of circuit vertex %d consumed before the closing step", u))
			}
			circuitNeighbor[v] = circuitNeighbor[circuit[0]]
			adj.AddEdge(v, circuitNeighbor[v])
			continue
		}
		if !degv.Fixed() && !degu.Fixed() {
			// No ring vertex between two open-degree circuit vertices.
			continue
		}
		w := newVertex()
		circuitNeighbor[v] = w
		adj.AddEdge(u, circuitNeighbor[v])
		adj.AddEdge(v, circuitNeighbor[v])
	}

	// Fill in enough fresh vertices for every fixed-degree circuit vertex to
	// reach its degree.
	for cidx := 0; cidx < len(circuit); cidx++ {
		v := circuit[cidx]
		degv := getDegree(v)
		if !degv.Fixed() {
			continue
		}
		u := circuit[len(circuit)-1]
		if cidx != 0 {
			u = circuit[cidx-1]
		}
		first := circuitNeighbor[u]
		last := circuitNeighbor[v]
		thirdNeighbors[v] = append(thirdNeighbors[v], first)
		if first == last {
			continue
		}
		numVertex := degv.Lower() - adj.Degree(v)
		if numVertex < 0 {
			panic(fmt.Sprintf("vertex %d exceeds its degree %d while extending the third neighborhood", v, degv.Lower()))
		}
		for count := 0; count < numVertex; count++ {
			w := newVertex()
			adj.AddEdge(first, w)
			adj.AddEdge(v, w)
			thirdNeighbors[v] = append(thirdNeighbors[v], w)
			first = w
		}
		thirdNeighbors[v] = append(thirdNeighbors[v], last)
		adj.AddEdge(first, last)
	}

	cw.cartwheel = NewNearTriangulation(adj, degrees)
	cw.thirdNeighbors = thirdNeighbors
}
