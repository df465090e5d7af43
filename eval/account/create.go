// Package account implements the account-lifecycle evaluators of §4.2:
// create, create_with_delegation, update, claim/create_claimed_account,
// recovery, change_recovery_account and decline_voting_rights.
package account

import (
	"fmt"

	"github.com/velanet/corechain/acctname"
	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// TempAccount is the distinguished funding account whose created accounts
// get no recovery partner by default.
const TempAccount = acctname.TempAccount

func zeroBalances(name string) types.Account {
	return types.Account{
		Name:                 name,
		Liquid:               asset.Zero(asset.LIQUID),
		SavingsLiquid:        asset.Zero(asset.LIQUID),
		Dollar:               asset.Zero(asset.DOLLAR),
		SavingsDollar:        asset.Zero(asset.DOLLAR),
		RewardLiquid:         asset.Zero(asset.LIQUID),
		RewardDollar:         asset.Zero(asset.DOLLAR),
		RewardVestingBalance: asset.Zero(asset.VESTS),
		VestingShares:          asset.Zero(asset.VESTS),
		ReceivedVestingShares:  asset.Zero(asset.VESTS),
		DelegatedVestingShares: asset.Zero(asset.VESTS),
		VestingWithdrawRate:    asset.Zero(asset.VESTS),
		NextVestingWithdrawal:  0xFFFFFFFF,
		VotingPower:            10000,
		CanVote:                true,
	}
}

func newAuthority(account string, owner, active, posting authority.Authority) types.AccountAuthority {
	return types.AccountAuthority{
		Account: account,
		Owner:   owner,
		Active:  active,
		Posting: posting,
	}
}

func validateNewAccount(db *state.Database, name string, owner, active, posting authority.Authority) error {
	if err := acctname.ValidAccountName(name); err != nil {
		return fmt.Errorf("account_create: %w", err)
	}
	if db.AccountExists(name) {
		return fmt.Errorf("account_create: %w", errs.ErrAccountExists)
	}
	exists := db.AccountExists
	if err := owner.Validate(exists); err != nil {
		return fmt.Errorf("account_create: owner: %w", err)
	}
	if err := active.Validate(exists); err != nil {
		return fmt.Errorf("account_create: active: %w", err)
	}
	if err := posting.Validate(exists); err != nil {
		return fmt.Errorf("account_create: posting: %w", err)
	}
	return nil
}

// ApplyCreate implements account_create: deduct Fee from Creator, vest it
// into the new account, and install the requested authorities.
func ApplyCreate(db *state.Database, ctx *op.Context, tx op.AccountCreate) error {
	if err := ctx.RequireAuthority(db, tx.Creator, authority.Active); err != nil {
		return err
	}
	if tx.Fee.Symbol != asset.LIQUID {
		return fmt.Errorf("account_create: %w", errs.ErrWrongSymbol)
	}
	if tx.Fee.LessThan(db.Schedule.MedianProps.AccountCreationFee) {
		return fmt.Errorf("account_create: fee below witness median: %w", errs.ErrOutOfRange)
	}
	if err := validateNewAccount(db, tx.NewAccountName, tx.Owner, tx.Active, tx.Posting); err != nil {
		return err
	}

	creator, err := db.MustGetAccount(tx.Creator)
	if err != nil {
		return fmt.Errorf("account_create: %w", errs.ErrAccountNotFound)
	}
	if err := creator.Debit(tx.Fee); err != nil {
		return fmt.Errorf("account_create: %w", errs.ErrInsufficientFunds)
	}

	recoveryAccount := tx.Creator
	if tx.Creator == TempAccount {
		recoveryAccount = ""
	}

	vestingPrice := db.Globals.VestingSharePrice()
	var vested asset.Asset
	if tx.Fee.Amount > 0 {
		vested, err = vestingPrice.Mul(tx.Fee)
		if err != nil {
			return fmt.Errorf("account_create: %w", err)
		}
	} else {
		vested = asset.Zero(asset.VESTS)
	}

	newAccount := zeroBalances(tx.NewAccountName)
	newAccount.MemoKey = tx.MemoKey
	newAccount.RecoveryAccount = recoveryAccount
	newAccount.Created = ctx.HeadBlockTime
	newAccount.Mined = false
	newAccount.VestingShares = vested

	session := db.Begin()
	if err := db.CreateAccount(newAccount); err != nil {
		session.Rollback()
		return err
	}
	if err := db.CreateAccountAuthority(newAuthority(tx.NewAccountName, tx.Owner, tx.Active, tx.Posting)); err != nil {
		session.Rollback()
		return err
	}
	if _, err := db.ModifyAccount(tx.Creator, func(types.Account) types.Account { return creator }); err != nil {
		session.Rollback()
		return err
	}
	db.Globals.TotalVestingFundLiquid, _ = db.Globals.TotalVestingFundLiquid.Add(tx.Fee)
	db.Globals.TotalVestingShares, _ = db.Globals.TotalVestingShares.Add(vested)
	session.Commit()
	return nil
}
