package asset

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Price is an exchange rate expressed as a base/quote asset pair, e.g.
// "1.000 DOLLAR : 1.250 LIQUID" for a DOLLAR/LIQUID feed. Multiplying an
// Asset in the base symbol by a Price yields an Asset in the quote symbol,
// and vice-versa for the inverse.
type Price struct {
	Base  Asset
	Quote Asset
}

// NewPrice builds a Price, rejecting non-positive sides and same-symbol pairs.
func NewPrice(base, quote Asset) (Price, error) {
	if base.Amount <= 0 || quote.Amount <= 0 {
		return Price{}, fmt.Errorf("asset: price sides must be positive")
	}
	if base.Symbol == quote.Symbol {
		return Price{}, fmt.Errorf("asset: price requires two distinct symbols")
	}
	return Price{Base: base, Quote: quote}, nil
}

// Invert swaps base and quote.
func (p Price) Invert() Price {
	return Price{Base: p.Quote, Quote: p.Base}
}

// IsNull reports whether the price carries no information (zero value).
func (p Price) IsNull() bool {
	return p.Base.Amount == 0 || p.Quote.Amount == 0
}

// Mul converts an amount denominated in p.Base into p.Quote, rounding down:
// result = amount * quote.Amount / base.Amount, computed with a u256
// intermediate so the multiplication cannot overflow int64.
func (p Price) Mul(amount Asset) (Asset, error) {
	if amount.Symbol != p.Base.Symbol {
		return Asset{}, fmt.Errorf("asset: price base is %s, got %s", p.Base.Symbol, amount.Symbol)
	}
	if p.Base.Amount == 0 {
		return Asset{}, fmt.Errorf("asset: division by zero price")
	}
	num := new(uint256.Int).Mul(uint256.NewInt(uint64(amount.Amount)), uint256.NewInt(uint64(p.Quote.Amount)))
	den := uint256.NewInt(uint64(p.Base.Amount))
	result := new(uint256.Int).Div(num, den)
	if !result.IsUint64() || result.Uint64() > uint64(MaxAmount) {
		return Asset{}, fmt.Errorf("asset: price conversion overflow")
	}
	return Asset{Amount: int64(result.Uint64()), Symbol: p.Quote.Symbol}, nil
}

// Reciprocal computes an amount denominated in p.Quote converted back to
// p.Base via the inverse ratio: amount * base.Amount / quote.Amount.
func (p Price) Reciprocal(amount Asset) (Asset, error) {
	return p.Invert().Mul(amount)
}

// LessThan compares two prices of the same market by cross-multiplying,
// avoiding any floating point. a < b iff a.quote*b.base < b.quote*a.base
// when both are expressed over the same base/quote symbol pair.
func (p Price) LessThan(o Price) bool {
	left := new(uint256.Int).Mul(uint256.NewInt(uint64(p.Quote.Amount)), uint256.NewInt(uint64(o.Base.Amount)))
	right := new(uint256.Int).Mul(uint256.NewInt(uint64(o.Quote.Amount)), uint256.NewInt(uint64(p.Base.Amount)))
	return left.Lt(right)
}

// Equal reports cross-multiplied equality between two same-pair prices.
func (p Price) Equal(o Price) bool {
	left := new(uint256.Int).Mul(uint256.NewInt(uint64(p.Quote.Amount)), uint256.NewInt(uint64(o.Base.Amount)))
	right := new(uint256.Int).Mul(uint256.NewInt(uint64(o.Quote.Amount)), uint256.NewInt(uint64(p.Base.Amount)))
	return left.Eq(right)
}

// VestingSharePrice derives the global VESTS/LIQUID conversion rate from the
// dynamic global totals. The degenerate empty-pool case is seeded at one
// LIQUID unit (0.001 LIQUID) to 1,000,000 VESTS units (1.000000 VESTS).
func VestingSharePrice(totalVestingShares, totalVestingFundLiquid int64) Price {
	if totalVestingShares == 0 || totalVestingFundLiquid == 0 {
		one, _ := NewPrice(Asset{Amount: 1, Symbol: LIQUID}, Asset{Amount: 1_000_000, Symbol: VESTS})
		return one
	}
	base := Asset{Amount: totalVestingFundLiquid, Symbol: LIQUID}
	quote := Asset{Amount: totalVestingShares, Symbol: VESTS}
	return Price{Base: base, Quote: quote}
}
