package embedding

import (
	"testing"

	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

func TestIsIsomorphicReflexiveAndSymmetric(t *testing.T) {
	wheels := []*datastructure.Wheel{
		uniformWheel(5, 5),
		rimWheel([]string{"5", "6", "7", "5", "5"}),
		rimWheel([]string{"6", "6", "7", "8+", "5"}),
	}
	for i, a := range wheels {
		require.True(t, IsIsomorphic(a, a), "wheel %d not isomorphic to itself", i)
		for _, b := range wheels {
			require.Equal(t, IsIsomorphic(a, b), IsIsomorphic(b, a))
		}
	}
}

func TestIsIsomorphicModuloRotation(t *testing.T) {
	a := rimWheel([]string{"5", "6", "7", "5", "5"})
	rotated := rimWheel([]string{"6", "7", "5", "5", "5"})
	reflected := rimWheel([]string{"5", "5", "7", "6", "5"})
	other := rimWheel([]string{"5", "6", "6", "5", "5"})
	require.True(t, IsIsomorphic(a, rotated))
	require.True(t, IsIsomorphic(a, reflected))
	require.False(t, IsIsomorphic(a, other))
}

func TestIsIsomorphicDistinguishesHubDegree(t *testing.T) {
	require.False(t, IsIsomorphic(uniformWheel(5, 5), uniformWheel(6, 5)))
}

func TestMakeUnique(t *testing.T) {
	a := rimWheel([]string{"5", "6", "7", "5", "5"})
	rotated := rimWheel([]string{"6", "7", "5", "5", "5"})
	other := rimWheel([]string{"5", "6", "6", "5", "5"})
	unique := MakeUnique([]*datastructure.Wheel{a, rotated, other, a})
	require.Len(t, unique, 2)
	// The first representative of each class survives.
	require.Same(t, a, unique[0])
	require.Same(t, other, unique[1])

	// Applying MakeUnique twice changes nothing, and the members are
	// pairwise non-isomorphic.
	again := MakeUnique(unique)
	require.Equal(t, unique, again)
	for i := range again {
		for j := i + 1; j < len(again); j++ {
			require.False(t, IsIsomorphic(again[i], again[j]))
		}
	}
}

func TestUniqueWithChargeKeepsMax(t *testing.T) {
	a := rimWheel([]string{"5", "6", "7", "5", "5"})
	rotated := rimWheel([]string{"6", "7", "5", "5", "5"})
	other := rimWheel([]string{"5", "6", "6", "5", "5"})
	wheels, charges := UniqueWithCharge(
		[]*datastructure.Wheel{a, rotated, other},
		[]int{1, 3, 2},
	)
	require.Len(t, wheels, 2)
	require.Equal(t, []int{3, 2}, charges)
}

func TestMakeUniquePinned(t *testing.T) {
	// Pinned at edge (0, 1), a rotation is no longer a duplicate unless it
	// agrees as seen from that edge.
	a := rimWheel([]string{"5", "6", "7", "5", "5"})
	rotated := rimWheel([]string{"6", "7", "5", "5", "5"})
	eid, ok := a.NearTriangulation().EdgeID(0, 1)
	require.True(t, ok)
	unique := MakeUniquePinned([]*datastructure.Wheel{a, rotated, a.Clone()}, eid)
	require.Len(t, unique, 2)
}
