package market

import (
	"fmt"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyLimitOrderCancel implements limit_order_cancel: the unfilled
// remainder is refunded to the owner and the order row removed.
func ApplyLimitOrderCancel(db *state.Database, ctx *op.Context, tx op.LimitOrderCancel) error {
	if err := ctx.RequireAuthority(db, tx.Owner, authority.Active); err != nil {
		return err
	}
	order, id, ok := db.GetLimitOrder(tx.Owner, tx.OrderID)
	if !ok {
		return fmt.Errorf("limit_order_cancel: %w", errs.ErrOrderNotFound)
	}

	owner, err := db.MustGetAccount(tx.Owner)
	if err != nil {
		return fmt.Errorf("limit_order_cancel: %w", errs.ErrAccountNotFound)
	}
	refund := order.SellPrice.Base.Symbol
	if err := owner.Credit(asset.Asset{Amount: order.ForSale, Symbol: refund}); err != nil {
		return fmt.Errorf("limit_order_cancel: %w", err)
	}

	session := db.Begin()
	if _, err := db.ModifyAccount(tx.Owner, func(types.Account) types.Account { return owner }); err != nil {
		session.Rollback()
		return err
	}
	if err := db.RemoveLimitOrder(id); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
