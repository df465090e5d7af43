package transfer

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyClaimRewardBalance moves an account's pending reward balances into
// its spendable liquid/dollar/vesting balances. Each of the three amounts
// must not exceed the corresponding reward balance.
func ApplyClaimRewardBalance(db *state.Database, ctx *op.Context, tx op.ClaimRewardBalance) error {
	if err := ctx.RequireAuthority(db, tx.Account, authority.Posting); err != nil {
		return err
	}

	acct, err := db.MustGetAccount(tx.Account)
	if err != nil {
		return fmt.Errorf("claim_reward_balance: %w", errs.ErrAccountNotFound)
	}

	if acct.RewardLiquid.LessThan(tx.RewardLiquid) {
		return fmt.Errorf("claim_reward_balance: %w", errs.ErrInsufficientFunds)
	}
	if acct.RewardDollar.LessThan(tx.RewardDollar) {
		return fmt.Errorf("claim_reward_balance: %w", errs.ErrInsufficientFunds)
	}
	if acct.RewardVestingBalance.LessThan(tx.RewardVesting) {
		return fmt.Errorf("claim_reward_balance: %w", errs.ErrInsufficientFunds)
	}

	liquidLeft, err := acct.RewardLiquid.Sub(tx.RewardLiquid)
	if err != nil {
		return err
	}
	dollarLeft, err := acct.RewardDollar.Sub(tx.RewardDollar)
	if err != nil {
		return err
	}
	vestingLeft, err := acct.RewardVestingBalance.Sub(tx.RewardVesting)
	if err != nil {
		return err
	}
	newLiquid, err := acct.Liquid.Add(tx.RewardLiquid)
	if err != nil {
		return err
	}
	newDollar, err := acct.Dollar.Add(tx.RewardDollar)
	if err != nil {
		return err
	}
	newVestingShares, err := acct.VestingShares.Add(tx.RewardVesting)
	if err != nil {
		return err
	}

	updated := acct
	updated.RewardLiquid = liquidLeft
	updated.RewardDollar = dollarLeft
	updated.RewardVestingBalance = vestingLeft
	updated.Liquid = newLiquid
	updated.Dollar = newDollar
	updated.VestingShares = newVestingShares

	session := db.Begin()
	if _, err := db.ModifyAccount(tx.Account, func(types.Account) types.Account { return updated }); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
