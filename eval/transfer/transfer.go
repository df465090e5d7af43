// Package transfer implements the transfer and claim_reward_balance
// evaluators (§6's plain balance-moving operations).
package transfer

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// Apply moves Amount from From's liquid or dollar balance to To's, requiring
// active authority from From. VESTS cannot move this way: only
// delegate_vesting_shares redistributes stake.
//
// Per §5, every precondition that can fail is checked before any write: the
// debited and credited account values are fully computed first, and the
// Modify closures that follow simply install them.
func Apply(db *state.Database, ctx *op.Context, tx op.Transfer) error {
	if err := ctx.RequireAuthority(db, tx.From, authority.Active); err != nil {
		return err
	}
	if tx.Amount.Sign() <= 0 {
		return fmt.Errorf("transfer: %w", errs.ErrOutOfRange)
	}

	from, err := db.MustGetAccount(tx.From)
	if err != nil {
		return fmt.Errorf("transfer: %w", errs.ErrAccountNotFound)
	}
	to, err := db.MustGetAccount(tx.To)
	if err != nil {
		return fmt.Errorf("transfer: %w", errs.ErrAccountNotFound)
	}

	if err := from.Debit(tx.Amount); err != nil {
		return fmt.Errorf("transfer: %w", errs.ErrInsufficientFunds)
	}
	if err := to.Credit(tx.Amount); err != nil {
		return err
	}

	session := db.Begin()
	if _, err := db.ModifyAccount(tx.From, func(types.Account) types.Account { return from }); err != nil {
		session.Rollback()
		return err
	}
	if _, err := db.ModifyAccount(tx.To, func(types.Account) types.Account { return to }); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
