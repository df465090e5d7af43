package content

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
	"github.com/velanet/corechain/reward"
	"github.com/velanet/corechain/store"
)

// maxVoteDenomSeconds is the spec's max_vote_denom expressed in the same
// seconds unit used_power's raw numerator is scaled into (·SecondsPerDay)
// before dividing, avoiding a separate days conversion: max_vote_denom =
// vote_power_reserve_rate · VOTE_REGENERATION_SECONDS.
func maxVoteDenomSeconds(db *state.Database) uint64 {
	return uint64(db.Globals.VotePowerReserveRate) * uint64(chain.VoteRegenerationSeconds)
}

// effectiveVestingShares is the non-negative stake a vote draws its weight
// from; Account.EffectiveVestingShares can be negative transiently between
// a delegation and its settlement, which a vote must never be valued at.
func effectiveVestingShares(a types.Account) int64 {
	shares := a.EffectiveVestingShares()
	if shares < 0 {
		return 0
	}
	return shares
}

// regeneratePower computes the voter's current voting power, linearly
// regenerated since LastVoteTime at 100%/VoteRegenerationSeconds, capped
// at full power.
func regeneratePower(a types.Account, now uint32) uint16 {
	if now <= a.LastVoteTime {
		return a.VotingPower
	}
	elapsed := uint64(now - a.LastVoteTime)
	regen := elapsed * uint64(chain.Percent100) / uint64(chain.VoteRegenerationSeconds)
	power := uint64(a.VotingPower) + regen
	if power > uint64(chain.Percent100) {
		power = uint64(chain.Percent100)
	}
	return uint16(power)
}

// ApplyVote implements vote: a voter's opinion of a comment expressed as a
// signed percentage of their available voting power. Re-voting the same
// comment adjusts the previously cast rshares rather than adding to them.
func ApplyVote(db *state.Database, ctx *op.Context, tx op.Vote) error {
	if tx.Weight < -10_000 || tx.Weight > 10_000 {
		return fmt.Errorf("vote: %w", errs.ErrOutOfRange)
	}
	if err := ctx.RequireAuthority(db, tx.Voter, authority.Posting); err != nil {
		return err
	}
	voter, err := db.MustGetAccount(tx.Voter)
	if err != nil {
		return fmt.Errorf("vote: %w", errs.ErrAccountNotFound)
	}
	comment, commentID, ok := db.GetComment(tx.Author, tx.Permlink)
	if !ok {
		return fmt.Errorf("vote: %w", errs.ErrCommentNotFound)
	}

	frozen := comment.CashedOut(chain.MaximumTime)

	existingVote, voteID, hasVoted := db.GetCommentVote(commentID, tx.Voter)
	if frozen {
		// A comment past its cashout time no longer earns rshares, but the
		// vote itself is still recorded for history: it just can't be
		// changed again afterward.
		session := db.Begin()
		if hasVoted {
			if _, err := db.ModifyCommentVote(voteID, func(v types.CommentVote) types.CommentVote {
				v.NumChanges = types.CashedOutSentinel
				return v
			}); err != nil {
				session.Rollback()
				return err
			}
		} else if err := db.CreateCommentVote(types.CommentVote{
			Comment:     uint64(commentID),
			Voter:       tx.Voter,
			Rshares:     0,
			VotePercent: tx.Weight,
			Weight:      0,
			LastUpdate:  ctx.HeadBlockTime,
			NumChanges:  types.CashedOutSentinel,
		}); err != nil {
			session.Rollback()
			return err
		}
		session.Commit()
		return nil
	}

	if tx.Weight > 0 && !comment.AllowVotes {
		return fmt.Errorf("vote: %w", errs.ErrOptionsWidened)
	}
	if hasVoted {
		if existingVote.NumChanges == types.CashedOutSentinel {
			return fmt.Errorf("vote: %w", errs.ErrAlreadyCashedOut)
		}
		if existingVote.NumChanges >= chain.MaxVoteChanges {
			return fmt.Errorf("vote: %w", errs.ErrVoteChangeLimit)
		}
	} else {
		if effectiveVestingShares(voter) < chain.MinVoteVestingShares {
			return fmt.Errorf("vote: %w", errs.ErrOutOfRange)
		}
	}
	if ctx.HeadBlockTime-voter.LastVoteTime < chain.MinVoteIntervalSeconds {
		return fmt.Errorf("vote: %w", errs.ErrRateLimited)
	}
	if tx.Weight > 0 && comment.CashoutTime-ctx.HeadBlockTime <= chain.UpvoteLockoutSeconds {
		return fmt.Errorf("vote: %w", errs.ErrDeadlineExpired)
	}

	power := regeneratePower(voter, ctx.HeadBlockTime)

	absWeight := tx.Weight
	if absWeight < 0 {
		absWeight = -absWeight
	}
	denom := maxVoteDenomSeconds(db)
	if denom == 0 {
		return fmt.Errorf("vote: %w", errs.ErrOutOfRange)
	}
	usedPowerRaw := (uint64(power) * uint64(absWeight) / uint64(chain.Percent100)) * uint64(chain.SecondsPerDay)
	usedPower := (usedPowerRaw + denom - 1) / denom
	if usedPower > uint64(power) {
		usedPower = uint64(power)
	}
	newPower := uint64(power) - usedPower
	if newPower > uint64(chain.Percent100) {
		newPower = 0
	}

	effective := effectiveVestingShares(voter)
	rsharesRaw := effective * int64(usedPower) / int64(chain.Percent100)
	absRshares := rsharesRaw - chain.VoteDustThreshold
	if absRshares < 0 {
		absRshares = 0
	}
	if !hasVoted && (tx.Weight == 0 || absRshares == 0) {
		return fmt.Errorf("vote: %w", errs.ErrOutOfRange)
	}

	rshares := absRshares
	if tx.Weight < 0 {
		rshares = -rshares
	} else if tx.Weight == 0 {
		rshares = 0
	}

	var oldRshares int64
	var oldAbsRshares int64
	var oldPositiveRshares int64
	if hasVoted {
		oldRshares = existingVote.Rshares
		if oldRshares < 0 {
			oldAbsRshares = -oldRshares
		} else {
			oldAbsRshares = oldRshares
		}
		if oldRshares > 0 {
			oldPositiveRshares = oldRshares
		}
	}
	var newPositiveRshares int64
	if rshares > 0 {
		newPositiveRshares = rshares
	}

	netVotesDelta := int32(0)
	switch {
	case !hasVoted && rshares != 0:
		if rshares > 0 {
			netVotesDelta = 1
		} else {
			netVotesDelta = -1
		}
	case hasVoted:
		oldSign, newSign := sign64(oldRshares), sign64(rshares)
		netVotesDelta = int32(newSign - oldSign)
	}

	// Curation weight only accrues on a fresh, positive vote: a re-vote's
	// weight is always zero regardless of direction.
	var curationWeight uint64
	if !hasVoted && rshares > 0 && comment.AllowCurationRewards {
		fundName := "comment"
		if comment.IsRoot() {
			fundName = "post"
		}
		if fund, ok := db.GetRewardFund(fundName); ok && fund.PercentCurationRewards > 0 {
			wOld := reward.Evaluate(comment.VoteRshares, fund.CurationRewardCurve, fund.ContentConstant)
			wNew := reward.Evaluate(comment.VoteRshares+rshares, fund.CurationRewardCurve, fund.ContentConstant)
			delta := new(uint256.Int).Sub(wNew, wOld)
			age := ctx.HeadBlockTime - comment.Created
			window := uint32(chain.ReverseAuctionWindow)
			if age > window {
				age = window
			}
			delta.Mul(delta, uint256.NewInt(uint64(age)))
			delta.Div(delta, uint256.NewInt(uint64(window)))
			if delta.IsUint64() {
				curationWeight = delta.Uint64()
			}
		}
	}

	session := db.Begin()
	if _, err := db.ModifyComment(commentID, func(c types.Comment) types.Comment {
		c.NetRshares += rshares - oldRshares
		c.AbsRshares += absRshares - oldAbsRshares
		c.VoteRshares += newPositiveRshares - oldPositiveRshares
		c.NetVotes += netVotesDelta
		c.TotalVoteWeight += curationWeight
		return c
	}); err != nil {
		session.Rollback()
		return err
	}
	if !comment.IsRoot() {
		deltaAbs := absRshares - oldAbsRshares
		if deltaAbs != 0 {
			rootID := store.ObjectID(comment.RootComment)
			if _, err := db.ModifyComment(rootID, func(c types.Comment) types.Comment {
				c.ChildrenAbsRshares += deltaAbs
				return c
			}); err != nil {
				session.Rollback()
				return err
			}
		}
	}

	if hasVoted {
		if _, err := db.ModifyCommentVote(voteID, func(v types.CommentVote) types.CommentVote {
			v.Rshares = rshares
			v.VotePercent = tx.Weight
			v.Weight = curationWeight
			v.LastUpdate = ctx.HeadBlockTime
			v.NumChanges++
			return v
		}); err != nil {
			session.Rollback()
			return err
		}
	} else {
		if err := db.CreateCommentVote(types.CommentVote{
			Comment:     uint64(commentID),
			Voter:       tx.Voter,
			Rshares:     rshares,
			VotePercent: tx.Weight,
			Weight:      curationWeight,
			LastUpdate:  ctx.HeadBlockTime,
			NumChanges:  0,
		}); err != nil {
			session.Rollback()
			return err
		}
	}

	if _, err := db.ModifyAccount(tx.Voter, func(a types.Account) types.Account {
		a.VotingPower = uint16(newPower)
		a.LastVoteTime = ctx.HeadBlockTime
		return a
	}); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}

func sign64(v int64) int64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
