package discharging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// A pair of adjacent degree-5 vertices inside a 6-ring; after ring elision
// the pattern is a single edge with both endpoints of degree 5.
const pairConf = `two adjacent vertices of degree 5
8 6
7 5 1 2 3 8 6
8 5 3 4 5 6 7
`

// A degree-5 vertex sends 2 units of charge to an adjacent degree-5 vertex.
const edgeRule = `a degree-5 vertex sends 2 to an adjacent degree-5 vertex
2 1 2 2
1 5 2
2 5 1
`

// The full degree-5 wheel as a rule: charge moves from the hub to its first
// neighbor. Matching it onto a uniform degree-5 wheel produces two mirror
// correspondences occupying the same vertices.
const wheelRule = `a 5-wheel hub sends 3 along a spoke
6 1 2 3
1 5 2 3 4 5 6
2 5 1 3 6
3 5 1 2 4
4 5 1 3 5
5 5 1 4 6
6 5 1 2 5
`

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func loadConf(t *testing.T, content string) *catalog.Configuration {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "test.conf")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	conf, err := catalog.ReadConfFile(filename)
	require.NoError(t, err)
	return conf
}

func loadRule(t *testing.T, content string) *catalog.Rule {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "test.rule")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	rule, err := catalog.ReadRuleFile(filename)
	require.NoError(t, err)
	return rule
}

func uniformWheel(hubDegree, deg int) *datastructure.Wheel {
	wheel := datastructure.NewWheelFromHubDegree(hubDegree)
	for v := 1; v <= hubDegree; v++ {
		d := datastructure.NewFixedDegree(deg)
		wheel.SetDegree(v, &d)
	}
	return wheel
}
