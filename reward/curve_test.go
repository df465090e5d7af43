package reward

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestEvaluateNonPositiveRsharesIsZero(t *testing.T) {
	require.True(t, Evaluate(0, CurveQuadratic, 2_000_000).IsZero())
	require.True(t, Evaluate(-100, CurveLinear, 2_000_000).IsZero())
}

func TestEvaluateLinearPassesThrough(t *testing.T) {
	got := Evaluate(12_345, CurveLinear, 2_000_000)
	require.Equal(t, uint256.NewInt(12_345), got)
}

func TestEvaluatePowerScalesByContentConstant(t *testing.T) {
	got := Evaluate(10_000, CurvePower, 15_000)
	require.Equal(t, uint256.NewInt(15_000), got)
}

func TestEvaluateQuadraticGrowsWithRshares(t *testing.T) {
	small := Evaluate(1_000, CurveQuadratic, 2_000_000)
	large := Evaluate(1_000_000, CurveQuadratic, 2_000_000)
	require.True(t, large.Gt(small))
}

func TestEvaluateUnknownCurveFallsBackToQuadratic(t *testing.T) {
	known := Evaluate(50_000, CurveQuadratic, 2_000_000)
	unknown := Evaluate(50_000, "bogus", 2_000_000)
	require.Equal(t, known, unknown)
}
