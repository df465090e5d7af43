package account

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyDeclineVotingRights implements decline_voting_rights: Decline=true
// files a deferred request effective OWNER_AUTH_RECOVERY_PERIOD later,
// giving the account a window to reverse course; Decline=false cancels a
// still-pending request.
func ApplyDeclineVotingRights(db *state.Database, ctx *op.Context, tx op.DeclineVotingRights) error {
	if err := ctx.RequireAuthority(db, tx.Account, authority.Owner); err != nil {
		return err
	}
	if !db.AccountExists(tx.Account) {
		return fmt.Errorf("decline_voting_rights: %w", errs.ErrAccountNotFound)
	}
	_, pending := db.GetDeclineVotingRightsRequest(tx.Account)

	if tx.Decline {
		if pending {
			return fmt.Errorf("decline_voting_rights: %w", errs.ErrOutOfRange)
		}
		session := db.Begin()
		if err := db.PutDeclineVotingRightsRequest(types.DeclineVotingRightsRequest{
			Account:   tx.Account,
			Effective: ctx.HeadBlockTime + chain.OwnerAuthRecoveryPeriodSecs,
		}); err != nil {
			session.Rollback()
			return err
		}
		session.Commit()
		return nil
	}

	if !pending {
		return fmt.Errorf("decline_voting_rights: no pending request: %w", errs.ErrOutOfRange)
	}
	session := db.Begin()
	db.RemoveDeclineVotingRightsRequest(tx.Account)
	session.Commit()
	return nil
}
