package account

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/crypto"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// authoritiesEqual compares two authorities field-by-field; recover_account
// must match the presented authority against an archived one exactly, not
// merely by an equivalent weight distribution.
func authoritiesEqual(a, b authority.Authority) bool {
	if a.WeightThreshold != b.WeightThreshold {
		return false
	}
	if len(a.Accounts) != len(b.Accounts) || len(a.Keys) != len(b.Keys) {
		return false
	}
	for name, weight := range a.Accounts {
		if b.Accounts[name] != weight {
			return false
		}
	}
	for key, weight := range a.Keys {
		if b.Keys[key] != weight {
			return false
		}
	}
	return true
}

// keyWeightSatisfied checks a presented, not-currently-installed authority
// (recent_owner_authority carries no account name to resolve sub-accounts
// against) purely against its own key members.
func keyWeightSatisfied(a *authority.Authority, providedKeys map[crypto.PublicKey]struct{}) bool {
	var total uint64
	for key, weight := range a.Keys {
		if _, present := providedKeys[key]; present {
			total += uint64(weight)
		}
	}
	return total >= uint64(a.WeightThreshold)
}

// ApplyRequestAccountRecovery implements request_account_recovery: only
// AccountToRecover's current recovery_account may file one, and a later
// request against the same account supersedes an earlier one outright.
func ApplyRequestAccountRecovery(db *state.Database, ctx *op.Context, tx op.RequestAccountRecovery) error {
	if err := ctx.RequireAuthority(db, tx.RecoveryAccount, authority.Active); err != nil {
		return err
	}
	target, err := db.MustGetAccount(tx.AccountToRecover)
	if err != nil {
		return fmt.Errorf("request_account_recovery: %w", errs.ErrAccountNotFound)
	}
	if target.RecoveryAccount != tx.RecoveryAccount {
		return fmt.Errorf("request_account_recovery: %w", errs.ErrMissingOwnerAuth)
	}
	if err := tx.NewOwnerAuthority.Validate(db.AccountExists); err != nil {
		return fmt.Errorf("request_account_recovery: new owner: %w", err)
	}

	session := db.Begin()
	db.PutAccountRecoveryRequest(types.AccountRecoveryRequest{
		AccountToRecover:  tx.AccountToRecover,
		NewOwnerAuthority: tx.NewOwnerAuthority,
		Expiration:        ctx.HeadBlockTime + chain.AccountRecoveryRequestExpiry,
	})
	session.Commit()
	return nil
}

// ApplyRecoverAccount implements recover_account: the presented
// RecentOwnerAuthority must match a pending request and an owner authority
// that was valid within the OWNER_AUTH_RECOVERY_PERIOD lookback window,
// proving the signer controlled the account before it was compromised.
func ApplyRecoverAccount(db *state.Database, ctx *op.Context, tx op.RecoverAccount) error {
	request, ok := db.GetAccountRecoveryRequest(tx.AccountToRecover)
	if !ok {
		return fmt.Errorf("recover_account: no pending request: %w", errs.ErrOutOfRange)
	}
	if request.Expiration <= ctx.HeadBlockTime {
		return fmt.Errorf("recover_account: request expired: %w", errs.ErrDeadlineExpired)
	}
	if !authoritiesEqual(request.NewOwnerAuthority, tx.NewOwnerAuthority) {
		return fmt.Errorf("recover_account: new owner authority mismatch: %w", errs.ErrOutOfRange)
	}
	if !keyWeightSatisfied(&tx.RecentOwnerAuthority, ctx.ProvidedKeys) {
		return fmt.Errorf("recover_account: recent owner: %w", errs.ErrMissingOwnerAuth)
	}

	lookback := uint32(0)
	if ctx.HeadBlockTime > chain.OwnerAuthRecoveryPeriodSecs {
		lookback = ctx.HeadBlockTime - chain.OwnerAuthRecoveryPeriodSecs
	}
	current, ok := db.GetAccountAuthority(tx.AccountToRecover)
	if !ok {
		return fmt.Errorf("recover_account: %w", errs.ErrAccountNotFound)
	}
	matched := authoritiesEqual(current.Owner, tx.RecentOwnerAuthority)
	if !matched {
		for _, h := range db.OwnerAuthorityHistoryFor(tx.AccountToRecover, lookback) {
			if authoritiesEqual(h.PreviousOwner, tx.RecentOwnerAuthority) {
				matched = true
				break
			}
		}
	}
	if !matched {
		return fmt.Errorf("recover_account: %w", errs.ErrImpossibleAuthority)
	}

	session := db.Begin()
	db.ArchiveOwnerAuthority(types.OwnerAuthorityHistory{
		Account:       tx.AccountToRecover,
		PreviousOwner: current.Owner,
		LastValidTime: ctx.HeadBlockTime,
	})
	if _, err := db.ModifyAccountAuthority(tx.AccountToRecover, func(a types.AccountAuthority) types.AccountAuthority {
		a.Owner = tx.NewOwnerAuthority
		a.LastOwnerUpdate = ctx.HeadBlockTime
		return a
	}); err != nil {
		session.Rollback()
		return err
	}
	if _, err := db.ModifyAccount(tx.AccountToRecover, func(a types.Account) types.Account {
		a.LastAccountRecovery = ctx.HeadBlockTime
		return a
	}); err != nil {
		session.Rollback()
		return err
	}
	db.RemoveAccountRecoveryRequest(tx.AccountToRecover)
	session.Commit()
	return nil
}

// ApplyChangeRecoveryAccount implements change_recovery_account: the new
// partner only takes effect OWNER_AUTH_RECOVERY_PERIOD later, so a
// compromised owner key can't immediately hand recovery to an attacker.
func ApplyChangeRecoveryAccount(db *state.Database, ctx *op.Context, tx op.ChangeRecoveryAccount) error {
	if err := ctx.RequireAuthority(db, tx.AccountToRecover, authority.Owner); err != nil {
		return err
	}
	if !db.AccountExists(tx.NewRecoveryAccount) {
		return fmt.Errorf("change_recovery_account: %w", errs.ErrAccountNotFound)
	}

	session := db.Begin()
	db.PutChangeRecoveryAccountRequest(types.ChangeRecoveryAccountRequest{
		AccountToRecover: tx.AccountToRecover,
		RecoveryAccount:  tx.NewRecoveryAccount,
		Effective:        ctx.HeadBlockTime + chain.OwnerAuthRecoveryPeriodSecs,
	})
	session.Commit()
	return nil
}
