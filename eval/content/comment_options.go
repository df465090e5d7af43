package content

import (
	"fmt"
	"sort"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyCommentOptions implements comment_options: every tightenable field
// may only move monotonically down, and beneficiaries lock in exactly
// once, only before the comment has received any vote weight.
func ApplyCommentOptions(db *state.Database, ctx *op.Context, tx op.CommentOptions) error {
	if err := ctx.RequireAuthority(db, tx.Author, authority.Posting); err != nil {
		return err
	}
	comment, id, ok := db.GetComment(tx.Author, tx.Permlink)
	if !ok {
		return fmt.Errorf("comment_options: %w", errs.ErrCommentNotFound)
	}
	if comment.CashedOut(chain.MaximumTime) {
		return fmt.Errorf("comment_options: %w", errs.ErrAlreadyCashedOut)
	}

	if tx.MaxAcceptedPayout.Symbol != comment.MaxAcceptedPayout.Symbol {
		return fmt.Errorf("comment_options: %w", errs.ErrWrongSymbol)
	}
	if tx.MaxAcceptedPayout.GreaterThan(comment.MaxAcceptedPayout) {
		return fmt.Errorf("comment_options: %w", errs.ErrOptionsWidened)
	}
	if tx.PercentDollars > comment.PercentDollars {
		return fmt.Errorf("comment_options: %w", errs.ErrOptionsWidened)
	}
	if comment.AllowVotes && !tx.AllowVotes {
		// tightening: allowed
	} else if !comment.AllowVotes && tx.AllowVotes {
		return fmt.Errorf("comment_options: %w", errs.ErrOptionsWidened)
	}
	if comment.AllowCurationRewards && !tx.AllowCurationRewards {
		// tightening: allowed
	} else if !comment.AllowCurationRewards && tx.AllowCurationRewards {
		return fmt.Errorf("comment_options: %w", errs.ErrOptionsWidened)
	}

	var beneficiaries []types.Beneficiary
	settingBeneficiaries := len(tx.Beneficiaries) > 0
	if settingBeneficiaries {
		if len(comment.Beneficiaries) > 0 {
			return fmt.Errorf("comment_options: %w", errs.ErrBeneficiariesLocked)
		}
		if comment.AbsRshares != 0 {
			return fmt.Errorf("comment_options: %w", errs.ErrBeneficiariesLocked)
		}
		if len(tx.Beneficiaries) > types.MaxBeneficiaries {
			return fmt.Errorf("comment_options: %w", errs.ErrOutOfRange)
		}
		var totalWeight uint32
		seen := make(map[string]bool, len(tx.Beneficiaries))
		beneficiaries = make([]types.Beneficiary, len(tx.Beneficiaries))
		for i, b := range tx.Beneficiaries {
			if seen[b.Account] {
				return fmt.Errorf("comment_options: duplicate beneficiary: %w", errs.ErrOutOfRange)
			}
			seen[b.Account] = true
			if !db.AccountExists(b.Account) {
				return fmt.Errorf("comment_options: %w", errs.ErrAccountNotFound)
			}
			totalWeight += uint32(b.Weight)
			beneficiaries[i] = types.Beneficiary{Account: b.Account, Weight: b.Weight}
		}
		if totalWeight > chain.Percent100 {
			return fmt.Errorf("comment_options: %w", errs.ErrOutOfRange)
		}
		if !sort.SliceIsSorted(beneficiaries, func(i, j int) bool {
			return beneficiaries[i].Account < beneficiaries[j].Account
		}) {
			return fmt.Errorf("comment_options: beneficiaries must be sorted: %w", errs.ErrOutOfRange)
		}
	}

	session := db.Begin()
	if _, err := db.ModifyComment(id, func(c types.Comment) types.Comment {
		c.MaxAcceptedPayout = tx.MaxAcceptedPayout
		c.PercentDollars = tx.PercentDollars
		c.AllowVotes = tx.AllowVotes
		c.AllowCurationRewards = tx.AllowCurationRewards
		if settingBeneficiaries {
			c.Beneficiaries = beneficiaries
		}
		return c
	}); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
