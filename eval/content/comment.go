package content

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

// defaultMaxAcceptedPayout is the ceiling a freshly-created comment starts
// with before comment_options can tighten it further: 1,000,000.000
// DOLLAR, effectively unlimited for any real post.
var defaultMaxAcceptedPayout = asset.Asset{Amount: 1_000_000_000, Symbol: asset.DOLLAR}

// ApplyComment implements comment: a post (empty ParentAuthor) or a reply.
// On create it rate-limits against the author's last root/reply post,
// bumps the direct parent's children count, touches active on the parent
// and on the root post, and opens the cashout clock. Intermediate
// ancestors between the parent and the root are not touched. On edit, parent and permlink are immutable and only the
// off-chain content fields (title/body/metadata, not tracked in
// consensus state) are expected to change.
func ApplyComment(db *state.Database, ctx *op.Context, tx op.Comment) error {
	if err := ctx.RequireAuthority(db, tx.Author, authority.Posting); err != nil {
		return err
	}
	if !validPermlink(tx.Permlink) {
		return fmt.Errorf("comment: %w", errs.ErrInvalidPermlink)
	}
	if err := validateUTF8Fields(tx.Title, tx.Body, tx.JSONMetadata); err != nil {
		return fmt.Errorf("comment: %w", err)
	}
	if err := validateJSONMetadata(tx.JSONMetadata); err != nil {
		return fmt.Errorf("comment: %w", err)
	}
	if !db.AccountExists(tx.Author) {
		return fmt.Errorf("comment: %w", errs.ErrAccountNotFound)
	}

	existing, existingID, isEdit := db.GetComment(tx.Author, tx.Permlink)

	if isEdit {
		if existing.ParentAuthor != tx.ParentAuthor || existing.ParentPermlink != tx.ParentPermlink {
			return fmt.Errorf("comment: %w", errs.ErrOutOfRange)
		}
		session := db.Begin()
		if _, err := db.ModifyComment(existingID, func(c types.Comment) types.Comment {
			c.LastUpdate = ctx.HeadBlockTime
			c.Active = ctx.HeadBlockTime
			return c
		}); err != nil {
			session.Rollback()
			return err
		}
		session.Commit()
		return nil
	}

	author, err := db.MustGetAccount(tx.Author)
	if err != nil {
		return fmt.Errorf("comment: %w", errs.ErrAccountNotFound)
	}

	isRoot := tx.ParentAuthor == ""
	if isRoot {
		if ctx.HeadBlockTime-author.LastRootPost <= chain.MinRootCommentIntervalSeconds {
			return fmt.Errorf("comment: %w", errs.ErrRateLimited)
		}
	} else {
		if ctx.HeadBlockTime-author.LastPost < chain.MinReplyIntervalSeconds {
			return fmt.Errorf("comment: %w", errs.ErrRateLimited)
		}
	}

	var parent types.Comment
	var parentID store.ObjectID
	var rootID store.ObjectID
	depth := uint16(0)
	if !isRoot {
		var ok bool
		parent, parentID, ok = db.GetComment(tx.ParentAuthor, tx.ParentPermlink)
		if !ok {
			return fmt.Errorf("comment: %w", errs.ErrCommentNotFound)
		}
		if parent.Depth >= chain.MaxCommentDepth {
			return fmt.Errorf("comment: %w", errs.ErrDepthLimit)
		}
		depth = parent.Depth + 1
		if parent.IsRoot() {
			rootID = parentID
		} else {
			rootID = store.ObjectID(parent.RootComment)
		}
	}

	cashoutWindow := ctx.CashoutWindowSeconds
	if cashoutWindow == 0 {
		cashoutWindow = chain.CashoutWindowSecondsLive
	}

	newComment := types.Comment{
		Author:         tx.Author,
		Permlink:       tx.Permlink,
		ParentAuthor:   tx.ParentAuthor,
		ParentPermlink: tx.ParentPermlink,
		Depth:          depth,
		Created:        ctx.HeadBlockTime,
		LastUpdate:     ctx.HeadBlockTime,
		Active:         ctx.HeadBlockTime,
		CashoutTime:    ctx.HeadBlockTime + cashoutWindow,
		MaxCashoutTime: chain.MaximumTime,
		AllowVotes:     true,
		AllowCurationRewards: true,
		PercentDollars:    chain.Percent100 / 2,
		MaxAcceptedPayout: defaultMaxAcceptedPayout,
	}
	if !isRoot {
		newComment.RootComment = uint64(rootID)
	}

	session := db.Begin()
	if _, err := db.CreateComment(newComment); err != nil {
		session.Rollback()
		return err
	}

	if !isRoot {
		if _, err := db.ModifyComment(parentID, func(c types.Comment) types.Comment {
			c.Children++
			c.Active = ctx.HeadBlockTime
			return c
		}); err != nil {
			session.Rollback()
			return err
		}
		if parentID != rootID {
			if _, err := db.ModifyComment(rootID, func(c types.Comment) types.Comment {
				c.Active = ctx.HeadBlockTime
				return c
			}); err != nil {
				session.Rollback()
				return err
			}
		}
	}

	updatedAuthor := author
	updatedAuthor.LastPost = ctx.HeadBlockTime
	if isRoot {
		updatedAuthor.LastRootPost = ctx.HeadBlockTime
	}
	if _, err := db.ModifyAccount(tx.Author, func(types.Account) types.Account { return updatedAuthor }); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
