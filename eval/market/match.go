// Package market implements the limit order book, DOLLAR conversion and
// witness price-feed evaluators of spec §4.5.
package market

import (
	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
)

// A limit order escrows its full AmountToSell out of the seller's balance
// at creation time (ForSale only ever shrinks), so matching only ever
// credits what each side receives — never debits again.

// matchResult reports what happened to the incoming order after running
// against the resting book: how much of it is still unmatched, and
// whether it filled completely.
type matchResult struct {
	remaining int64
	filled    bool
}

// matchNewOrder repeatedly crosses a new order against the best resting
// order on the opposite side of the same market until either side is
// exhausted or the two sides no longer cross. Both sides settle at the
// resting (maker) order's price, per the usual price-time-priority book.
func matchNewOrder(db *state.Database, newSeller string, newOrderID uint32, sellPrice asset.Price, forSale int64) (matchResult, error) {
	sellSym := sellPrice.Base.Symbol
	wantSym := sellPrice.Quote.Symbol

	for forSale > 0 {
		oppID, opp, found := db.BestOpposingOrder(wantSym)
		if !found {
			break
		}
		oppInverted := opp.SellPrice.Invert() // reoriented to Base=sellSym, Quote=wantSym
		if oppInverted.LessThan(sellPrice) {
			// The best resting offer still demands more per unit than this
			// order is willing to give; nothing deeper in the book can
			// cross it either, since the index is sorted best-price-first.
			break
		}

		sellNeededForOpp, err := opp.SellPrice.Mul(asset.Asset{Amount: opp.ForSale, Symbol: wantSym})
		if err != nil {
			return matchResult{}, err
		}

		if forSale >= sellNeededForOpp.Amount {
			// Opposing order fills completely; new order pays exactly what
			// it owed to clear it and keeps trading any leftover.
			if err := credit(db, newSeller, asset.Asset{Amount: opp.ForSale, Symbol: wantSym}); err != nil {
				return matchResult{}, err
			}
			if err := credit(db, opp.Seller, sellNeededForOpp); err != nil {
				return matchResult{}, err
			}
			if err := db.RemoveLimitOrder(oppID); err != nil {
				return matchResult{}, err
			}
			db.Events.Emit(types.FillOrderEvent{
				OpenOwner:      opp.Seller,
				OpenOrderID:    opp.OrderID,
				OpenPays:       asset.Asset{Amount: opp.ForSale, Symbol: wantSym},
				CurrentOwner:   newSeller,
				CurrentOrderID: newOrderID,
				CurrentPays:    sellNeededForOpp,
			})
			forSale -= sellNeededForOpp.Amount
			continue
		}

		// New order exhausts here; opposing order partially fills and stays
		// on the book for its remainder.
		sellGiven := asset.Asset{Amount: forSale, Symbol: sellSym}
		wantReceived, err := oppInverted.Mul(sellGiven)
		if err != nil {
			return matchResult{}, err
		}
		if err := credit(db, newSeller, wantReceived); err != nil {
			return matchResult{}, err
		}
		if err := credit(db, opp.Seller, sellGiven); err != nil {
			return matchResult{}, err
		}
		if _, err := db.ModifyLimitOrder(oppID, func(o types.LimitOrder) types.LimitOrder {
			o.ForSale -= wantReceived.Amount
			return o
		}); err != nil {
			return matchResult{}, err
		}
		db.Events.Emit(types.FillOrderEvent{
			OpenOwner:      opp.Seller,
			OpenOrderID:    opp.OrderID,
			OpenPays:       wantReceived,
			CurrentOwner:   newSeller,
			CurrentOrderID: newOrderID,
			CurrentPays:    sellGiven,
		})
		forSale = 0
	}

	return matchResult{remaining: forSale, filled: forSale == 0}, nil
}

// credit fully precomputes the credited account value before installing it,
// per §5's rule against failing from inside a Modify closure.
func credit(db *state.Database, account string, amount asset.Asset) error {
	a, err := db.MustGetAccount(account)
	if err != nil {
		return err
	}
	if err := a.Credit(amount); err != nil {
		return err
	}
	_, err = db.ModifyAccount(account, func(types.Account) types.Account { return a })
	return err
}
