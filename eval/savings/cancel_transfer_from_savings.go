package savings

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyCancelTransferFromSavings implements cancel_transfer_from_savings:
// refunds the pending withdrawal's amount back into From's own savings
// balance and removes the request.
func ApplyCancelTransferFromSavings(db *state.Database, ctx *op.Context, tx op.CancelTransferFromSavings) error {
	if err := ctx.RequireAuthority(db, tx.From, authority.Active); err != nil {
		return err
	}
	withdraw, id, ok := db.GetSavingsWithdraw(tx.From, tx.RequestID)
	if !ok {
		return fmt.Errorf("cancel_transfer_from_savings: %w", errs.ErrOrderNotFound)
	}

	from, err := db.MustGetAccount(tx.From)
	if err != nil {
		return fmt.Errorf("cancel_transfer_from_savings: %w", errs.ErrAccountNotFound)
	}
	if err := creditSavings(&from, withdraw.Amount); err != nil {
		return fmt.Errorf("cancel_transfer_from_savings: %w", err)
	}
	if from.SavingsWithdrawRequests > 0 {
		from.SavingsWithdrawRequests--
	}

	session := db.Begin()
	if _, err := db.ModifyAccount(tx.From, func(types.Account) types.Account { return from }); err != nil {
		session.Rollback()
		return err
	}
	if err := db.RemoveSavingsWithdraw(id); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
