package datastructure

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWheelEdgesAreSorted(t *testing.T) {
	wheel := NewWheelFromHubDegree(5)
	edges := wheel.NearTriangulation().Edges()
	// Both orientations of every undirected edge appear: hub-rim and rim
	// cycle edges of a degree-5 wheel make 2 * (5 + 5) directed edges.
	require.Len(t, edges, 20)
	for i := 1; i < len(edges); i++ {
		prev, cur := edges[i-1], edges[i]
		less := prev.From < cur.From || (prev.From == cur.From && prev.To < cur.To)
		require.True(t, less, "edges %v and %v out of order", prev, cur)
	}
	for _, e := range edges {
		id, ok := wheel.NearTriangulation().EdgeID(e.From, e.To)
		require.True(t, ok)
		require.Equal(t, e, edges[id])
		_, ok = wheel.NearTriangulation().EdgeID(e.To, e.From)
		require.True(t, ok)
	}
}

func TestWheelDiagonals(t *testing.T) {
	wheel := NewWheelFromHubDegree(6)
	nt := wheel.NearTriangulation()
	for _, e := range nt.Edges() {
		require.LessOrEqual(t, len(nt.DiagonalVertices(e)), 2)
	}
	// The hub-rim edge (0, 1) forms triangles with rim vertices 2 and 6.
	require.ElementsMatch(t, []int{2, 6}, nt.DiagonalVertices(Edge{From: 0, To: 1}))
	// The rim edge (1, 2) forms a triangle with the hub only.
	require.ElementsMatch(t, []int{0}, nt.DiagonalVertices(Edge{From: 1, To: 2}))
}

func TestNearTriangulationRejectsOverfullEdges(t *testing.T) {
	// K4 plus a vertex adjacent to everything gives an edge in three
	// triangles, which a near-triangulation cannot have.
	adj := NewAdjacency(5)
	for u := 0; u < 5; u++ {
		for v := u + 1; v < 5; v++ {
			adj.AddEdge(u, v)
		}
	}
	require.Panics(t, func() {
		NewNearTriangulation(adj, make([]*Degree, 5))
	})
}

func TestCloneIsolatesDegrees(t *testing.T) {
	wheel := NewWheelFromHubDegree(5)
	clone := wheel.Clone()
	deg := NewFixedDegree(6)
	clone.SetDegree(1, &deg)
	require.Nil(t, wheel.NearTriangulation().Degrees()[1])
	require.NotNil(t, clone.NearTriangulation().Degrees()[1])
}

func TestWheelString(t *testing.T) {
	wheel := NewWheelFromHubDegree(5)
	deg5 := NewFixedDegree(5)
	deg8p := NewDegree(8, 1000)
	wheel.SetDegree(1, &deg5)
	wheel.SetDegree(3, &deg8p)
	require.Equal(t, "5 5 ? 8+ ? ?", wheel.String())
}
