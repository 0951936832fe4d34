package discharging

import (
	"testing"

	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

func TestAmountChargeToSendTight(t *testing.T) {
	rule := loadRule(t, edgeRule)
	wheel := uniformWheel(5, 5)

	lower, upper, related := AmountChargeToSend(wheel, 1, 2, rule)
	require.Equal(t, 2, lower)
	require.Equal(t, 2, upper)
	for v, r := range related {
		require.Equal(t, v == 1 || v == 2, r, "vertex %d", v)
	}
}

func TestAmountChargeToSendFromHub(t *testing.T) {
	rule := loadRule(t, edgeRule)
	wheel := uniformWheel(5, 5)

	lower, upper, related := AmountChargeToSend(wheel, 0, 1, rule)
	require.Equal(t, 2, lower)
	require.Equal(t, 2, upper)
	require.True(t, related[0])
	require.True(t, related[1])
}

func TestAmountChargeToSendPossible(t *testing.T) {
	rule := loadRule(t, edgeRule)
	wheel := datastructure.NewWheelFromHubDegree(5)
	deg5 := datastructure.NewFixedDegree(5)
	wheel.SetDegree(1, &deg5)

	// The sender's degree is still undecided: the rule may or may not fire.
	lower, upper, related := AmountChargeToSend(wheel, 2, 1, rule)
	require.Equal(t, 0, lower)
	require.Equal(t, 2, upper)
	for _, r := range related {
		require.False(t, r)
	}
}

func TestAmountChargeToSendNoMatch(t *testing.T) {
	rule := loadRule(t, edgeRule)
	wheel := uniformWheel(5, 6)

	lower, upper, related := AmountChargeToSend(wheel, 1, 2, rule)
	require.Equal(t, 0, lower)
	require.Equal(t, 0, upper)
	for _, r := range related {
		require.False(t, r)
	}
}

func TestAmountChargeToSendDropsSymmetricDuplicate(t *testing.T) {
	// The 5-wheel rule matches a uniform 5-wheel in two mirror-image ways
	// occupying exactly the same vertices; only one may count, so the rule
	// fires once for its amount of 3, not twice.
	rule := loadRule(t, wheelRule)
	wheel := uniformWheel(5, 5)

	lower, upper, related := AmountChargeToSend(wheel, 0, 1, rule)
	require.Equal(t, 3, lower)
	require.Equal(t, 3, upper)
	for v, r := range related {
		require.True(t, r, "vertex %d", v)
	}
}

func TestChargeInitial(t *testing.T) {
	require.Equal(t, 10, ChargeInitial(5))
	require.Equal(t, 0, ChargeInitial(6))
	require.Equal(t, -10, ChargeInitial(7))
}
