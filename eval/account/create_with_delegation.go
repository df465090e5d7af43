package account

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

// ApplyCreateWithDelegation implements account_create_with_delegation: in
// addition to account_create's checks, the creator must have enough freely
// available vesting shares to cover Delegation, and the combined fee +
// delegation value must meet the modifier-scaled target delegation.
func ApplyCreateWithDelegation(db *state.Database, ctx *op.Context, tx op.AccountCreateWithDelegation) error {
	if err := ctx.RequireAuthority(db, tx.Creator, authority.Active); err != nil {
		return err
	}
	if tx.Fee.Symbol != asset.LIQUID || tx.Delegation.Symbol != asset.VESTS {
		return fmt.Errorf("account_create_with_delegation: %w", errs.ErrWrongSymbol)
	}
	if err := validateNewAccount(db, tx.NewAccountName, tx.Owner, tx.Active, tx.Posting); err != nil {
		return err
	}

	creator, err := db.MustGetAccount(tx.Creator)
	if err != nil {
		return fmt.Errorf("account_create_with_delegation: %w", errs.ErrAccountNotFound)
	}
	if creator.FreeVestingShares() < tx.Delegation.Amount {
		return fmt.Errorf("account_create_with_delegation: insufficient free vesting: %w", errs.ErrInsufficientFunds)
	}

	vestingPrice := db.Globals.VestingSharePrice()
	feeAsVests, err := vestingPrice.Mul(tx.Fee)
	if err != nil {
		return fmt.Errorf("account_create_with_delegation: %w", err)
	}
	targetDelegationVests := feeAsVests.Amount * chain.CreateAccountWithModifier * chain.CreateAccountDelegationRatio
	if feeAsVests.Amount+tx.Delegation.Amount < targetDelegationVests {
		return fmt.Errorf("account_create_with_delegation: fee+delegation below target: %w", errs.ErrOutOfRange)
	}

	if err := creator.Debit(tx.Fee); err != nil {
		return fmt.Errorf("account_create_with_delegation: %w", errs.ErrInsufficientFunds)
	}

	recoveryAccount := tx.Creator
	if tx.Creator == TempAccount {
		recoveryAccount = ""
	}

	var vested asset.Asset
	if tx.Fee.Amount > 0 {
		vested = feeAsVests
	} else {
		vested = asset.Zero(asset.VESTS)
	}

	newAccount := zeroBalances(tx.NewAccountName)
	newAccount.MemoKey = tx.MemoKey
	newAccount.RecoveryAccount = recoveryAccount
	newAccount.Created = ctx.HeadBlockTime
	newAccount.VestingShares = vested
	newAccount.ReceivedVestingShares = tx.Delegation

	session := db.Begin()
	if err := db.CreateAccount(newAccount); err != nil {
		session.Rollback()
		return err
	}
	if err := db.CreateAccountAuthority(newAuthority(tx.NewAccountName, tx.Owner, tx.Active, tx.Posting)); err != nil {
		session.Rollback()
		return err
	}
	creator.DelegatedVestingShares, _ = creator.DelegatedVestingShares.Add(tx.Delegation)
	if _, err := db.ModifyAccount(tx.Creator, func(types.Account) types.Account { return creator }); err != nil {
		session.Rollback()
		return err
	}
	db.VestingDelegations.Create(func(store.ObjectID) types.VestingDelegation {
		return types.VestingDelegation{
			Delegator:         tx.Creator,
			Delegatee:         tx.NewAccountName,
			VestingShares:     tx.Delegation,
			MinDelegationTime: ctx.HeadBlockTime + chain.CreateAccountDelegationTime,
		}
	})
	db.Globals.TotalVestingFundLiquid, _ = db.Globals.TotalVestingFundLiquid.Add(tx.Fee)
	db.Globals.TotalVestingShares, _ = db.Globals.TotalVestingShares.Add(vested)
	session.Commit()
	return nil
}
