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
	"github.com/velanet/corechain/store"
)

// ApplyDelegateVestingShares implements delegate_vesting_shares.
// tx.VestingShares is the target total delegation from Delegator to
// Delegatee, not a delta; the three cases (new / increase / decrease) are
// distinguished by comparing it against any existing delegation.
func ApplyDelegateVestingShares(db *state.Database, ctx *op.Context, tx op.DelegateVestingShares) error {
	if err := ctx.RequireAuthority(db, tx.Delegator, authority.Active); err != nil {
		return err
	}
	if tx.VestingShares.Symbol != asset.VESTS || tx.VestingShares.Sign() < 0 {
		return fmt.Errorf("delegate_vesting_shares: %w", errs.ErrWrongSymbol)
	}
	if tx.Delegator == tx.Delegatee {
		return fmt.Errorf("delegate_vesting_shares: %w", errs.ErrOutOfRange)
	}
	if !db.AccountExists(tx.Delegatee) {
		return fmt.Errorf("delegate_vesting_shares: %w", errs.ErrAccountNotFound)
	}

	delegator, err := db.MustGetAccount(tx.Delegator)
	if err != nil {
		return fmt.Errorf("delegate_vesting_shares: %w", errs.ErrAccountNotFound)
	}
	delegatee, err := db.MustGetAccount(tx.Delegatee)
	if err != nil {
		return fmt.Errorf("delegate_vesting_shares: %w", errs.ErrAccountNotFound)
	}

	vestingPrice := db.Globals.VestingSharePrice()
	creationFee := db.Schedule.MedianProps.AccountCreationFee
	if creationFee.Symbol == (asset.Symbol{}) {
		creationFee = asset.Zero(asset.LIQUID)
	}
	minDelegationFee, err := asset.New(creationFee.Amount/3, creationFee.Symbol)
	if err != nil {
		return err
	}
	minDelegation, err := vestingPrice.Mul(minDelegationFee)
	if err != nil {
		return fmt.Errorf("delegate_vesting_shares: %w", err)
	}
	minUpdateFee, err := asset.New(creationFee.Amount/30, creationFee.Symbol)
	if err != nil {
		return err
	}
	minUpdate, err := vestingPrice.Mul(minUpdateFee)
	if err != nil {
		return fmt.Errorf("delegate_vesting_shares: %w", err)
	}

	existing, hasExisting := db.GetVestingDelegation(tx.Delegator, tx.Delegatee)

	session := db.Begin()

	switch {
	case !hasExisting:
		if tx.VestingShares.Amount == 0 {
			session.Rollback()
			return fmt.Errorf("delegate_vesting_shares: %w", errs.ErrOutOfRange)
		}
		if tx.VestingShares.LessThan(minDelegation) {
			session.Rollback()
			return fmt.Errorf("delegate_vesting_shares: below minimum: %w", errs.ErrOutOfRange)
		}
		if delegator.FreeVestingShares() < tx.VestingShares.Amount {
			session.Rollback()
			return fmt.Errorf("delegate_vesting_shares: %w", errs.ErrInsufficientFunds)
		}
		if err := db.CreateVestingDelegation(types.VestingDelegation{
			Delegator:         tx.Delegator,
			Delegatee:         tx.Delegatee,
			VestingShares:     tx.VestingShares,
			MinDelegationTime: ctx.HeadBlockTime + chain.CreateAccountDelegationTime,
		}); err != nil {
			session.Rollback()
			return err
		}
		delegator.DelegatedVestingShares, _ = delegator.DelegatedVestingShares.Add(tx.VestingShares)
		delegatee.ReceivedVestingShares, _ = delegatee.ReceivedVestingShares.Add(tx.VestingShares)

	case tx.VestingShares.GreaterThan(existing.VestingShares):
		delta, err := tx.VestingShares.Sub(existing.VestingShares)
		if err != nil {
			session.Rollback()
			return err
		}
		if delta.LessThan(minUpdate) {
			session.Rollback()
			return fmt.Errorf("delegate_vesting_shares: increase below minimum update: %w", errs.ErrOutOfRange)
		}
		if delegator.FreeVestingShares() < delta.Amount {
			session.Rollback()
			return fmt.Errorf("delegate_vesting_shares: %w", errs.ErrInsufficientFunds)
		}
		if _, err := db.ModifyVestingDelegation(tx.Delegator, tx.Delegatee, func(d types.VestingDelegation) types.VestingDelegation {
			d.VestingShares = tx.VestingShares
			return d
		}); err != nil {
			session.Rollback()
			return err
		}
		delegator.DelegatedVestingShares, _ = delegator.DelegatedVestingShares.Add(delta)
		delegatee.ReceivedVestingShares, _ = delegatee.ReceivedVestingShares.Add(delta)

	default:
		delta, err := existing.VestingShares.Sub(tx.VestingShares)
		if err != nil {
			session.Rollback()
			return err
		}
		if tx.VestingShares.Amount != 0 && tx.VestingShares.LessThan(minDelegation) {
			session.Rollback()
			return fmt.Errorf("delegate_vesting_shares: remainder below minimum: %w", errs.ErrOutOfRange)
		}
		expiration := ctx.HeadBlockTime + chain.DelegationReturnPeriodSeconds
		if existing.MinDelegationTime > expiration {
			expiration = existing.MinDelegationTime
		}
		if tx.VestingShares.Amount == 0 {
			db.RemoveVestingDelegation(tx.Delegator, tx.Delegatee)
		} else if _, err := db.ModifyVestingDelegation(tx.Delegator, tx.Delegatee, func(d types.VestingDelegation) types.VestingDelegation {
			d.VestingShares = tx.VestingShares
			return d
		}); err != nil {
			session.Rollback()
			return err
		}
		db.VestingDelegationExpirations.Create(func(store.ObjectID) types.VestingDelegationExpiration {
			return types.VestingDelegationExpiration{
				Delegator:     tx.Delegator,
				VestingShares: delta,
				Expiration:    expiration,
			}
		})
		delegatee.ReceivedVestingShares, _ = delegatee.ReceivedVestingShares.Sub(delta)
	}

	if _, err := db.ModifyAccount(tx.Delegator, func(types.Account) types.Account { return delegator }); err != nil {
		session.Rollback()
		return err
	}
	if _, err := db.ModifyAccount(tx.Delegatee, func(types.Account) types.Account { return delegatee }); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
