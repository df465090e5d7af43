// Package vesting implements the stake-delegation and withdrawal
// evaluators of §4.3: transfer_to_vesting, withdraw_vesting,
// set_withdraw_vesting_route, delegate_vesting_shares,
// account_witness_proxy and account_witness_vote.
package vesting

import (
	"fmt"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// Apply implements transfer_to_vesting (create_vesting in spec prose):
// converts From's LIQUID to VESTS at the global vesting_share_price and
// credits To with the resulting shares.
func Apply(db *state.Database, ctx *op.Context, tx op.TransferToVesting) error {
	if err := ctx.RequireAuthority(db, tx.From, authority.Active); err != nil {
		return err
	}
	if tx.Amount.Symbol != asset.LIQUID || tx.Amount.Sign() <= 0 {
		return fmt.Errorf("transfer_to_vesting: %w", errs.ErrOutOfRange)
	}

	from, err := db.MustGetAccount(tx.From)
	if err != nil {
		return fmt.Errorf("transfer_to_vesting: %w", errs.ErrAccountNotFound)
	}
	to, err := db.MustGetAccount(tx.To)
	if err != nil {
		return fmt.Errorf("transfer_to_vesting: %w", errs.ErrAccountNotFound)
	}
	if err := from.Debit(tx.Amount); err != nil {
		return fmt.Errorf("transfer_to_vesting: %w", errs.ErrInsufficientFunds)
	}

	vested, err := db.Globals.VestingSharePrice().Mul(tx.Amount)
	if err != nil {
		return fmt.Errorf("transfer_to_vesting: %w", err)
	}
	newShares, err := to.VestingShares.Add(vested)
	if err != nil {
		return err
	}
	to.VestingShares = newShares

	session := db.Begin()
	if _, err := db.ModifyAccount(tx.From, func(types.Account) types.Account { return from }); err != nil {
		session.Rollback()
		return err
	}
	if _, err := db.ModifyAccount(tx.To, func(types.Account) types.Account { return to }); err != nil {
		session.Rollback()
		return err
	}
	db.Globals.TotalVestingFundLiquid, _ = db.Globals.TotalVestingFundLiquid.Add(tx.Amount)
	db.Globals.TotalVestingShares, _ = db.Globals.TotalVestingShares.Add(vested)
	session.Commit()
	return nil
}
