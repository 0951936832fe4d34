package discharging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

func TestEnumerateSendCases(t *testing.T) {
	rule := loadRule(t, edgeRule)
	outDir := t.TempDir()

	enumerator := NewSendEnumerator(nil, []*catalog.Rule{rule}, 6, false, outDir, testLogger())
	count, err := enumerator.Enumerate(datastructure.NewFixedDegree(5), datastructure.NewFixedDegree(5))
	require.NoError(t, err)

	// Every neighborhood projects onto the same two-vertex case: a degree-5
	// vertex sending 2 to its degree-5 neighbor.
	require.Equal(t, 1, count)
	data, err := os.ReadFile(filepath.Join(outDir, "from5to5_00000.rule"))
	require.NoError(t, err)
	require.Equal(t, "from 5 to 5 amount 2\n2 1 2 2\n1 5 2\n2 5 1\n", string(data))

	// The emitted file is itself a valid rule.
	emitted, err := catalog.ReadRuleFile(filepath.Join(outDir, "from5to5_00000.rule"))
	require.NoError(t, err)
	require.Equal(t, 2, emitted.Amount())
}

func TestEnumerateSendCasesNoOutput(t *testing.T) {
	// A degree-6 receiver never matches the 5-to-5 rule, so no case fires.
	rule := loadRule(t, edgeRule)
	enumerator := NewSendEnumerator(nil, []*catalog.Rule{rule}, 6, false, "", testLogger())
	count, err := enumerator.Enumerate(datastructure.NewFixedDegree(5), datastructure.NewFixedDegree(6))
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestEnumerateRequiresFixedSendDegree(t *testing.T) {
	enumerator := NewSendEnumerator(nil, nil, 6, false, "", testLogger())
	_, err := enumerator.Enumerate(datastructure.NewDegree(5, 1000), datastructure.NewFixedDegree(5))
	require.Error(t, err)
}
