package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const edgeRule = `a degree-5 vertex sends 2 to an adjacent degree-5 vertex
2 1 2 2
1 5 2
2 5 1
`

const triangleRule = `sender inside a triangle
3 1 2 1
1 6+ 2 3
2 5 1 3
3 8- 1 2
`

func TestReadRuleFile(t *testing.T) {
	rule, err := ReadRuleFile(writeFile(t, "edge.rule", edgeRule))
	require.NoError(t, err)
	require.Equal(t, 2, rule.Amount())
	require.Equal(t, 2, rule.NearTriangulation().VertexSize())
	sendEdge := rule.NearTriangulation().Edges()[rule.SendEdgeID()]
	require.Equal(t, 0, sendEdge.From)
	require.Equal(t, 1, sendEdge.To)
}

func TestReadRuleFileDegreeSpecs(t *testing.T) {
	rule, err := ReadRuleFile(writeFile(t, "triangle.rule", triangleRule))
	require.NoError(t, err)
	degrees := rule.NearTriangulation().Degrees()
	require.Equal(t, "6+", degrees[0].String())
	require.Equal(t, "5", degrees[1].String())
	require.Equal(t, "8-", degrees[2].String())
	require.Equal(t, 1, rule.Amount())
}

func TestReadRuleFileErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "missing send edge", content: "c\n3 1 3 2\n1 5 2\n2 5 1 3\n3 5 2\n"},
		{name: "bad header", content: "c\n2 1 2\n1 5 2\n2 5 1\n"},
		{name: "bad degree spec", content: "c\n2 1 2 2\n1 x 2\n2 5 1\n"},
		{name: "out of order vertex", content: "c\n2 1 2 2\n2 5 1\n1 5 2\n"},
		{name: "missing vertex line", content: "c\n2 1 2 2\n1 5 2\n"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRuleFile(writeFile(t, "bad.rule", tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoadCatalogDirectories(t *testing.T) {
	logger := testLogger(t)
	dir := t.TempDir()
	require.NoError(t, writeInDir(dir, "a.conf", pairConf))
	require.NoError(t, writeInDir(dir, "b.conf", diamondConf))
	require.NoError(t, writeInDir(dir, "r.rule", edgeRule))
	require.NoError(t, writeInDir(dir, "ignore.txt", "not a catalog file\n"))

	confs, err := LoadConfigurations(dir, logger)
	require.NoError(t, err)
	require.Len(t, confs, 2)
	// Directory order is preserved.
	require.Equal(t, 6, confs[0].RingSize())
	require.Equal(t, 8, confs[1].RingSize())

	rules, err := LoadRules(dir, logger)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.Equal(t, 2, rules[0].Amount())
}

func TestLoadCatalogMissingDirectory(t *testing.T) {
	logger := testLogger(t)
	_, err := LoadConfigurations("/nonexistent-dir", logger)
	require.Error(t, err)
	_, err = LoadRules("/nonexistent-dir", logger)
	require.Error(t, err)
}
