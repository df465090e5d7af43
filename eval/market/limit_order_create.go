package market

import (
	"fmt"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyLimitOrderCreate implements limit_order_create: AmountToSell is
// escrowed out of Owner's balance immediately, then matched against the
// book at the implied AmountToSell/MinToReceive rate. Any unmatched
// remainder rests on the book unless FillOrKill demands otherwise.
func ApplyLimitOrderCreate(db *state.Database, ctx *op.Context, tx op.LimitOrderCreate) error {
	price, err := asset.NewPrice(tx.AmountToSell, tx.MinToReceive)
	if err != nil {
		return fmt.Errorf("limit_order_create: %w", errs.ErrOutOfRange)
	}
	return applyCreate(db, ctx, tx.Owner, tx.OrderID, tx.AmountToSell, price, tx.FillOrKill, tx.Expiration)
}

// ApplyLimitOrderCreate2 implements limit_order_create2: identical to
// limit_order_create except the exchange rate is given directly rather
// than derived from a min-to-receive amount.
func ApplyLimitOrderCreate2(db *state.Database, ctx *op.Context, tx op.LimitOrderCreate2) error {
	if tx.ExchangeRate.Base.Symbol != tx.AmountToSell.Symbol {
		return fmt.Errorf("limit_order_create2: %w", errs.ErrWrongSymbol)
	}
	return applyCreate(db, ctx, tx.Owner, tx.OrderID, tx.AmountToSell, tx.ExchangeRate, tx.FillOrKill, tx.Expiration)
}

func applyCreate(db *state.Database, ctx *op.Context, owner string, orderID uint32, amountToSell asset.Asset, price asset.Price, fillOrKill bool, expiration uint32) error {
	if err := ctx.RequireAuthority(db, owner, authority.Active); err != nil {
		return err
	}
	if amountToSell.Symbol != asset.LIQUID && amountToSell.Symbol != asset.DOLLAR {
		return fmt.Errorf("limit_order_create: %w", errs.ErrWrongSymbol)
	}
	if amountToSell.Sign() <= 0 {
		return fmt.Errorf("limit_order_create: %w", errs.ErrOutOfRange)
	}
	if expiration <= ctx.HeadBlockTime || expiration-ctx.HeadBlockTime > chain.MaxLimitOrderExpirationSeconds {
		return fmt.Errorf("limit_order_create: %w", errs.ErrOutOfRange)
	}
	if _, _, ok := db.GetLimitOrder(owner, orderID); ok {
		return fmt.Errorf("limit_order_create: %w", errs.ErrOrderExists)
	}

	seller, err := db.MustGetAccount(owner)
	if err != nil {
		return fmt.Errorf("limit_order_create: %w", errs.ErrAccountNotFound)
	}
	if err := seller.Debit(amountToSell); err != nil {
		return fmt.Errorf("limit_order_create: %w", errs.ErrInsufficientFunds)
	}

	session := db.Begin()
	if _, err := db.ModifyAccount(owner, func(types.Account) types.Account { return seller }); err != nil {
		session.Rollback()
		return err
	}

	result, err := matchNewOrder(db, owner, orderID, price, amountToSell.Amount)
	if err != nil {
		session.Rollback()
		return err
	}
	if fillOrKill && !result.filled {
		session.Rollback()
		return fmt.Errorf("limit_order_create: %w", errs.ErrFillOrKill)
	}
	if result.remaining > 0 {
		if _, err := db.CreateLimitOrder(types.LimitOrder{
			Seller:     owner,
			OrderID:    orderID,
			ForSale:    result.remaining,
			SellPrice:  price,
			Created:    ctx.HeadBlockTime,
			Expiration: expiration,
		}); err != nil {
			session.Rollback()
			return err
		}
	}
	session.Commit()
	return nil
}
