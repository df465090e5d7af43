package account

import (
	"fmt"
	"math"

	"github.com/velanet/corechain/acctname"
	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyClaimAccount implements claim_account: burns Fee to the null
// account and increments Creator's pending_claimed_accounts counter,
// explicitly checked against overflow per §4.2.
func ApplyClaimAccount(db *state.Database, ctx *op.Context, tx op.ClaimAccount) error {
	if err := ctx.RequireAuthority(db, tx.Creator, authority.Active); err != nil {
		return err
	}
	if tx.Fee.Symbol != asset.LIQUID {
		return fmt.Errorf("claim_account: %w", errs.ErrWrongSymbol)
	}
	if tx.Fee.LessThan(db.Schedule.MedianProps.AccountCreationFee) {
		return fmt.Errorf("claim_account: fee below witness median: %w", errs.ErrOutOfRange)
	}

	creator, err := db.MustGetAccount(tx.Creator)
	if err != nil {
		return fmt.Errorf("claim_account: %w", errs.ErrAccountNotFound)
	}
	if creator.PendingClaimedAccounts == math.MaxUint32 {
		return fmt.Errorf("claim_account: %w", errs.ErrCounterOverflow)
	}
	if err := creator.Debit(tx.Fee); err != nil {
		return fmt.Errorf("claim_account: %w", errs.ErrInsufficientFunds)
	}
	creator.PendingClaimedAccounts++

	null, nullErr := db.MustGetAccount(acctname.NullAccount)
	if nullErr != nil {
		return fmt.Errorf("claim_account: %w", errs.ErrAccountNotFound)
	}
	if err := null.Credit(tx.Fee); err != nil {
		return err
	}

	session := db.Begin()
	if _, modErr := db.ModifyAccount(tx.Creator, func(types.Account) types.Account { return creator }); modErr != nil {
		session.Rollback()
		return modErr
	}
	if _, modErr := db.ModifyAccount(acctname.NullAccount, func(types.Account) types.Account { return null }); modErr != nil {
		session.Rollback()
		return modErr
	}
	session.Commit()
	return nil
}

// ApplyCreateClaimedAccount implements create_claimed_account: decrements
// Creator's pending_claimed_accounts and materializes NewAccountName with
// zero fee.
func ApplyCreateClaimedAccount(db *state.Database, ctx *op.Context, tx op.CreateClaimedAccount) error {
	if err := ctx.RequireAuthority(db, tx.Creator, authority.Active); err != nil {
		return err
	}
	if err := validateNewAccount(db, tx.NewAccountName, tx.Owner, tx.Active, tx.Posting); err != nil {
		return err
	}

	creator, err := db.MustGetAccount(tx.Creator)
	if err != nil {
		return fmt.Errorf("create_claimed_account: %w", errs.ErrAccountNotFound)
	}
	if creator.PendingClaimedAccounts == 0 {
		return fmt.Errorf("create_claimed_account: no claimed accounts available: %w", errs.ErrOutOfRange)
	}
	creator.PendingClaimedAccounts--

	recoveryAccount := tx.Creator
	if tx.Creator == TempAccount {
		recoveryAccount = ""
	}

	newAccount := zeroBalances(tx.NewAccountName)
	newAccount.MemoKey = tx.MemoKey
	newAccount.RecoveryAccount = recoveryAccount
	newAccount.Created = ctx.HeadBlockTime

	session := db.Begin()
	if err := db.CreateAccount(newAccount); err != nil {
		session.Rollback()
		return err
	}
	if err := db.CreateAccountAuthority(newAuthority(tx.NewAccountName, tx.Owner, tx.Active, tx.Posting)); err != nil {
		session.Rollback()
		return err
	}
	if _, modErr := db.ModifyAccount(tx.Creator, func(types.Account) types.Account { return creator }); modErr != nil {
		session.Rollback()
		return modErr
	}
	session.Commit()
	return nil
}
