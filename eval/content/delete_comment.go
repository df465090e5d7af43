package content

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyDeleteComment implements delete_comment: only a childless comment
// with non-positive net rshares may be removed outright, matching the real chain's
// refusal to delete anything that already carries payout weight or that
// other comments reference as a parent.
func ApplyDeleteComment(db *state.Database, ctx *op.Context, tx op.DeleteComment) error {
	if err := ctx.RequireAuthority(db, tx.Author, authority.Posting); err != nil {
		return err
	}
	comment, id, ok := db.GetComment(tx.Author, tx.Permlink)
	if !ok {
		return fmt.Errorf("delete_comment: %w", errs.ErrCommentNotFound)
	}
	if comment.Children > 0 {
		return fmt.Errorf("delete_comment: comment has replies: %w", errs.ErrOutOfRange)
	}
	if comment.NetRshares > 0 {
		return fmt.Errorf("delete_comment: comment has net positive votes: %w", errs.ErrOutOfRange)
	}

	session := db.Begin()
	if err := db.RemoveComment(id); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
