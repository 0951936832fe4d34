package discharging

import (
	"testing"

	"github.com/edge-coloring/projective-discharging/pkg"
	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

func TestCandidateDegrees(t *testing.T) {
	require.Equal(t, []datastructure.Degree{
		datastructure.NewFixedDegree(5),
		datastructure.NewFixedDegree(6),
		datastructure.NewFixedDegree(7),
		datastructure.NewDegree(8, pkg.MAX_DEGREE),
	}, CandidateDegrees(8))
}

func TestSearchNoConfGraphs(t *testing.T) {
	conf := loadConf(t, pairConf)
	confs := []*catalog.Configuration{conf}
	possible := []datastructure.Degree{
		datastructure.NewFixedDegree(5),
		datastructure.NewFixedDegree(6),
	}

	wheel := datastructure.NewWheelFromHubDegree(5)
	graphs := SearchNoConfGraphs(wheel, 1, possible, confs)

	// The hub has degree 5, so any degree-5 rim vertex completes the pair;
	// only the all-6 rim survives.
	require.Len(t, graphs, 1)
	for _, g := range graphs {
		require.False(t, ContainsAnyConfiguration(g, confs))
		for _, deg := range g.NearTriangulation().Degrees() {
			require.NotNil(t, deg)
		}
	}
	require.Equal(t, "5 6 6 6 6 6", graphs[0].String())

	// The input wheel is untouched.
	require.Equal(t, "5 ? ? ? ? ?", wheel.String())
}

func TestSearchNoConfGraphsPrunesContainingBase(t *testing.T) {
	conf := loadConf(t, pairConf)
	graphs := SearchNoConfGraphs(uniformWheel(5, 5), 1, CandidateDegrees(8), []*catalog.Configuration{conf})
	require.Empty(t, graphs)
}

func TestDecideDegreeBySendCasesNoRules(t *testing.T) {
	// Without rules there is nothing to branch on, and the net exchange 0
	// stays above threshold -10, so nothing is pruned: exactly the input
	// cartwheel comes back.
	cartwheel := datastructure.NewCartWheelFromWheel(uniformWheel(5, 5))
	res := DecideDegreeBySendCases(cartwheel, nil, nil, 8, -10, true, testLogger())
	require.Len(t, res, 1)
	require.Equal(t, cartwheel.String(), res[0].String())
}

func TestDecideDegreeBySendCasesSingleRule(t *testing.T) {
	// The rule fires with certainty on every hub-incident edge of the
	// uniform 5-wheel and decides no further degrees, so branching only ever
	// produces duplicates of the input: the zero-commitment duplicate is
	// merged into its sibling carrying the rule amount, and one cartwheel
	// survives.
	rule := loadRule(t, edgeRule)
	cartwheel := datastructure.NewCartWheelFromWheel(uniformWheel(5, 5))
	res := DecideDegreeBySendCases(cartwheel, []*catalog.Rule{rule}, nil, 6, -10, true, testLogger())
	require.Len(t, res, 1)
	require.Equal(t, cartwheel.String(), res[0].String())
}

func TestDecideDegreeBySendCasesPrunesContainedConf(t *testing.T) {
	conf := loadConf(t, pairConf)
	cartwheel := datastructure.NewCartWheelFromWheel(uniformWheel(5, 5))
	res := DecideDegreeBySendCases(cartwheel, nil, []*catalog.Configuration{conf}, 8, -10, true, testLogger())
	require.Empty(t, res)
}

func TestDecideDegreeBySendCasesChargeBoundPrunes(t *testing.T) {
	// No rules move any charge, so the optimistic net exchange is 0; a
	// threshold of 10 prunes everything.
	cartwheel := datastructure.NewCartWheelFromWheel(uniformWheel(5, 5))
	res := DecideDegreeBySendCases(cartwheel, nil, nil, 8, 10, true, testLogger())
	require.Empty(t, res)
}
