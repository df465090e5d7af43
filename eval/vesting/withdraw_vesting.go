package vesting

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

// ApplyWithdrawVesting implements withdraw_vesting: VestingShares == 0
// clears any existing plan; otherwise installs a 13-week linear withdraw
// schedule whose first tick fires one interval from now. The weekly
// execution itself is housekeeping's job, not this evaluator's.
func ApplyWithdrawVesting(db *state.Database, ctx *op.Context, tx op.WithdrawVesting) error {
	if err := ctx.RequireAuthority(db, tx.Account, authority.Active); err != nil {
		return err
	}
	if tx.VestingShares.Symbol != asset.VESTS {
		return fmt.Errorf("withdraw_vesting: %w", errs.ErrWrongSymbol)
	}

	acct, err := db.MustGetAccount(tx.Account)
	if err != nil {
		return fmt.Errorf("withdraw_vesting: %w", errs.ErrAccountNotFound)
	}
	if tx.VestingShares.Amount < 0 || tx.VestingShares.Amount > acct.FreeVestingShares() {
		return fmt.Errorf("withdraw_vesting: %w", errs.ErrInsufficientFunds)
	}

	updated := acct
	if tx.VestingShares.Amount == 0 {
		updated.VestingWithdrawRate = asset.Zero(asset.VESTS)
		updated.NextVestingWithdrawal = chain.MaximumTime
		updated.ToWithdraw = 0
		updated.Withdrawn = 0
	} else {
		rate := tx.VestingShares.Amount / chain.VestingWithdrawIntervals
		if tx.VestingShares.Amount%chain.VestingWithdrawIntervals != 0 {
			rate++
		}
		if rate < 1 {
			rate = 1
		}
		updated.VestingWithdrawRate = asset.Asset{Amount: rate, Symbol: asset.VESTS}
		updated.NextVestingWithdrawal = ctx.HeadBlockTime + chain.VestingWithdrawIntervalSeconds
		updated.ToWithdraw = tx.VestingShares.Amount
		updated.Withdrawn = 0
	}

	session := db.Begin()
	if _, err := db.ModifyAccount(tx.Account, func(types.Account) types.Account { return updated }); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
