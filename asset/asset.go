package asset

import "fmt"

// MaxAmount is the largest representable amount, 2^62 - 1, matching the
// spec's MAX_SATOSHIS bound across all three symbols.
const MaxAmount int64 = 4_611_686_018_427_387_903

// Asset is a fixed-point amount in the least-significant unit of Symbol.
type Asset struct {
	Amount int64
	Symbol Symbol
}

// New constructs an Asset, rejecting amounts outside [0, MaxAmount]. Negative
// intermediate results are legal internally (e.g. deltas) and use NewSigned.
func New(amount int64, symbol Symbol) (Asset, error) {
	if amount < 0 || amount > MaxAmount {
		return Asset{}, fmt.Errorf("asset: amount %d out of range [0, %d]", amount, MaxAmount)
	}
	return Asset{Amount: amount, Symbol: symbol}, nil
}

// Zero returns the additive identity for symbol.
func Zero(symbol Symbol) Asset {
	return Asset{Amount: 0, Symbol: symbol}
}

// IsZero reports whether the amount is exactly zero.
func (a Asset) IsZero() bool { return a.Amount == 0 }

// Sign returns -1, 0 or 1 matching the sign of the amount.
func (a Asset) Sign() int {
	switch {
	case a.Amount < 0:
		return -1
	case a.Amount > 0:
		return 1
	default:
		return 0
	}
}

func (a Asset) requireSameSymbol(b Asset) error {
	if a.Symbol != b.Symbol {
		return fmt.Errorf("asset: symbol mismatch %s vs %s", a.Symbol, b.Symbol)
	}
	return nil
}

// Add returns a+b, checking for overflow past MaxAmount.
func (a Asset) Add(b Asset) (Asset, error) {
	if err := a.requireSameSymbol(b); err != nil {
		return Asset{}, err
	}
	sum := a.Amount + b.Amount
	if sum > MaxAmount || (b.Amount > 0 && sum < a.Amount) {
		return Asset{}, fmt.Errorf("asset: %s overflow adding %d + %d", a.Symbol, a.Amount, b.Amount)
	}
	return Asset{Amount: sum, Symbol: a.Symbol}, nil
}

// Sub returns a-b. The result may be negative; callers enforce
// non-negativity invariants at the account-balance boundary, not here.
func (a Asset) Sub(b Asset) (Asset, error) {
	if err := a.requireSameSymbol(b); err != nil {
		return Asset{}, err
	}
	return Asset{Amount: a.Amount - b.Amount, Symbol: a.Symbol}, nil
}

// LessThan reports whether a < b for same-symbol assets.
func (a Asset) LessThan(b Asset) bool {
	return a.Symbol == b.Symbol && a.Amount < b.Amount
}

// GreaterThan reports whether a > b for same-symbol assets.
func (a Asset) GreaterThan(b Asset) bool {
	return a.Symbol == b.Symbol && a.Amount > b.Amount
}

// Min returns the lesser of a and b.
func Min(a, b Asset) Asset {
	if a.LessThan(b) {
		return a
	}
	return b
}

// String renders the amount with the symbol's decimal point, e.g. "1.500 LIQUID".
func (a Asset) String() string {
	p := int64(1)
	for i := uint8(0); i < a.Symbol.Precision(); i++ {
		p *= 10
	}
	whole := a.Amount / p
	frac := a.Amount % p
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%0*d %s", whole, a.Symbol.Precision(), frac, a.Symbol)
}
