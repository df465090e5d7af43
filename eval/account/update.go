package account

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyUpdate implements account_update: TEMP cannot be updated; an owner
// change is rate-limited to once per OWNER_UPDATE_LIMIT and archives the
// superseded authority for later recovery.
func ApplyUpdate(db *state.Database, ctx *op.Context, tx op.AccountUpdate) error {
	if tx.Account == TempAccount {
		return fmt.Errorf("account_update: %w", errs.ErrOperationDisabled)
	}
	level := authority.Active
	if tx.Owner != nil {
		level = authority.Owner
	}
	if err := ctx.RequireAuthority(db, tx.Account, level); err != nil {
		return err
	}

	exists := db.AccountExists
	if tx.Owner != nil {
		if err := tx.Owner.Validate(exists); err != nil {
			return fmt.Errorf("account_update: owner: %w", err)
		}
	}
	if tx.Active != nil {
		if err := tx.Active.Validate(exists); err != nil {
			return fmt.Errorf("account_update: active: %w", err)
		}
	}
	if tx.Posting != nil {
		if err := tx.Posting.Validate(exists); err != nil {
			return fmt.Errorf("account_update: posting: %w", err)
		}
	}

	current, ok := db.GetAccountAuthority(tx.Account)
	if !ok {
		return fmt.Errorf("account_update: %w", errs.ErrAccountNotFound)
	}

	if tx.Owner != nil {
		if ctx.HeadBlockTime-current.LastOwnerUpdate < chain.OwnerUpdateLimitSeconds {
			return fmt.Errorf("account_update: owner changed too recently: %w", errs.ErrRateLimited)
		}
	}

	session := db.Begin()
	if tx.Owner != nil {
		db.ArchiveOwnerAuthority(types.OwnerAuthorityHistory{
			Account:       tx.Account,
			PreviousOwner: current.Owner,
			LastValidTime: ctx.HeadBlockTime,
		})
	}
	if _, modErr := db.ModifyAccountAuthority(tx.Account, func(a types.AccountAuthority) types.AccountAuthority {
		if tx.Owner != nil {
			a.Owner = *tx.Owner
			a.LastOwnerUpdate = ctx.HeadBlockTime
		}
		if tx.Active != nil {
			a.Active = *tx.Active
		}
		if tx.Posting != nil {
			a.Posting = *tx.Posting
		}
		return a
	}); modErr != nil {
		session.Rollback()
		return modErr
	}
	if _, modErr := db.ModifyAccount(tx.Account, func(a types.Account) types.Account {
		if tx.MemoKey != "" {
			a.MemoKey = tx.MemoKey
		}
		return a
	}); modErr != nil {
		session.Rollback()
		return modErr
	}
	session.Commit()
	return nil
}
