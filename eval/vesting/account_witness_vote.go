package vesting

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyAccountWitnessVote implements account_witness_vote: a direct
// (non-proxying) account may hold at most MAX_ACCOUNT_WITNESS_VOTES
// concurrent witness votes; Approve toggles membership and adjusts the
// witness's vote tally by the voter's effective proxied weight.
func ApplyAccountWitnessVote(db *state.Database, ctx *op.Context, tx op.AccountWitnessVote) error {
	if err := ctx.RequireAuthority(db, tx.Account, authority.Active); err != nil {
		return err
	}
	acct, err := db.MustGetAccount(tx.Account)
	if err != nil {
		return fmt.Errorf("account_witness_vote: %w", errs.ErrAccountNotFound)
	}
	if acct.Proxy != "" {
		return fmt.Errorf("account_witness_vote: %w", errs.ErrOutOfRange)
	}
	if !db.WitnessExists(tx.Witness) {
		return fmt.Errorf("account_witness_vote: %w", errs.ErrAccountNotFound)
	}

	alreadyVoted := false
	idx := -1
	for i, w := range acct.WitnessVotes {
		if w == tx.Witness {
			alreadyVoted = true
			idx = i
			break
		}
	}
	if tx.Approve == alreadyVoted {
		return fmt.Errorf("account_witness_vote: %w", errs.ErrOutOfRange)
	}
	if tx.Approve && len(acct.WitnessVotes) >= chain.MaxAccountWitnessVotes {
		return fmt.Errorf("account_witness_vote: %w", errs.ErrOutOfRange)
	}

	weight := acct.VestingShares.Amount
	for i := 0; i < types.MaxProxyDepth; i++ {
		weight += acct.ProxiedVSFVotes[i]
	}
	delta := weight
	if !tx.Approve {
		delta = -weight
	}

	updated := acct
	if tx.Approve {
		updated.WitnessVotes = append(append([]string{}, acct.WitnessVotes...), tx.Witness)
	} else {
		votes := append([]string{}, acct.WitnessVotes...)
		updated.WitnessVotes = append(votes[:idx], votes[idx+1:]...)
	}

	session := db.Begin()
	if _, err := db.ModifyWitness(tx.Witness, func(wt types.Witness) types.Witness {
		wt.Votes += delta
		return wt
	}); err != nil {
		session.Rollback()
		return err
	}
	if _, err := db.ModifyAccount(tx.Account, func(types.Account) types.Account { return updated }); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
