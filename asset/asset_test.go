package asset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssetAddOverflowsAndMismatchedSymbols(t *testing.T) {
	a := Asset{Amount: 100, Symbol: LIQUID}
	b := Asset{Amount: 50, Symbol: LIQUID}
	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, int64(150), sum.Amount)

	_, err = a.Add(Asset{Amount: 50, Symbol: DOLLAR})
	require.Error(t, err)

	_, err = Asset{Amount: MaxAmount, Symbol: LIQUID}.Add(Asset{Amount: 1, Symbol: LIQUID})
	require.Error(t, err)
}

func TestAssetStringRendersDecimalPoint(t *testing.T) {
	require.Equal(t, "10.000 LIQUID", Asset{Amount: 10_000, Symbol: LIQUID}.String())
	require.Equal(t, "500000.000000 VESTS", Asset{Amount: 500_000_000_000, Symbol: VESTS}.String())
}

func TestAssetLessThanGreaterThanRequireSameSymbol(t *testing.T) {
	require.True(t, Asset{Amount: 1, Symbol: LIQUID}.LessThan(Asset{Amount: 2, Symbol: LIQUID}))
	require.False(t, Asset{Amount: 1, Symbol: LIQUID}.LessThan(Asset{Amount: 2, Symbol: DOLLAR}))
	require.True(t, Asset{Amount: 2, Symbol: LIQUID}.GreaterThan(Asset{Amount: 1, Symbol: LIQUID}))
}

func TestParseSymbolRoundTrips(t *testing.T) {
	s, err := ParseSymbol("DOLLAR")
	require.NoError(t, err)
	require.Equal(t, DOLLAR, s)

	_, err = ParseSymbol("BOGUS")
	require.Error(t, err)
}

func TestVestingSharePriceDegenerateCase(t *testing.T) {
	price := VestingSharePrice(0, 0)
	got, err := price.Mul(Asset{Amount: 100, Symbol: LIQUID})
	require.NoError(t, err)
	require.Equal(t, int64(100_000_000), got.Amount)
	require.Equal(t, VESTS, got.Symbol)
}

func TestVestingSharePriceFromPool(t *testing.T) {
	// 1,000 LIQUID backing 2,000,000 VESTS -> 1 LIQUID converts to 2,000 VESTS.
	price := VestingSharePrice(2_000_000, 1_000)
	got, err := price.Mul(Asset{Amount: 1, Symbol: LIQUID})
	require.NoError(t, err)
	require.Equal(t, int64(2_000), got.Amount)
}

func TestPriceMulRejectsWrongBaseSymbol(t *testing.T) {
	price, err := NewPrice(Asset{Amount: 10, Symbol: LIQUID}, Asset{Amount: 15, Symbol: DOLLAR})
	require.NoError(t, err)
	_, err = price.Mul(Asset{Amount: 1, Symbol: DOLLAR})
	require.Error(t, err)
}

func TestPriceLessThanAndEqualCrossMultiply(t *testing.T) {
	cheap, err := NewPrice(Asset{Amount: 10, Symbol: LIQUID}, Asset{Amount: 15, Symbol: DOLLAR})
	require.NoError(t, err)
	dear, err := NewPrice(Asset{Amount: 10, Symbol: LIQUID}, Asset{Amount: 20, Symbol: DOLLAR})
	require.NoError(t, err)
	require.True(t, cheap.LessThan(dear))
	require.False(t, dear.LessThan(cheap))

	same, err := NewPrice(Asset{Amount: 20, Symbol: LIQUID}, Asset{Amount: 30, Symbol: DOLLAR})
	require.NoError(t, err)
	require.True(t, cheap.Equal(same))
}
