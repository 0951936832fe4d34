package discharging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	conf := loadConf(t, pairConf)
	rule := loadRule(t, edgeRule)
	outDir := filepath.Join(t.TempDir(), "wheels")

	generator := NewGenerator([]*catalog.Configuration{conf}, []*catalog.Rule{rule}, 6, testLogger())
	n, err := generator.Generate(5, outDir)
	require.NoError(t, err)

	// Candidate rim degrees are 5 and 6+. The degree-5 hub completes the
	// adjacent-pair configuration with any degree-5 rim vertex, so only the
	// all-6+ rim survives.
	require.Equal(t, 1, n)
	wheel, err := datastructure.ReadWheelFile(filepath.Join(outDir, "5_0.wheel"))
	require.NoError(t, err)
	require.Equal(t, "5 6+ 6+ 6+ 6+ 6+", wheel.String())
}

func TestGenerateNothingWhenHubCannotOvercharge(t *testing.T) {
	// A degree-7 hub starts at -10 and the only send case delivers to a
	// degree-5 vertex, so nothing reaches the hub and nothing is emitted.
	conf := loadConf(t, pairConf)
	rule := loadRule(t, edgeRule)
	outDir := filepath.Join(t.TempDir(), "wheels")

	generator := NewGenerator([]*catalog.Configuration{conf}, []*catalog.Rule{rule}, 6, testLogger())
	n, err := generator.Generate(7, outDir)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRotatedLess(t *testing.T) {
	require.False(t, rotatedLess([]int{0, 0, 0}, 1))
	require.True(t, rotatedLess([]int{1, 0, 1}, 1))
	require.False(t, rotatedLess([]int{0, 1, 1}, 1))
	require.True(t, rotatedLess([]int{1, 1, 0}, 2))
}
