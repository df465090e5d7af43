package types

import "github.com/velanet/corechain/asset"

// MaxCommentDepth bounds how deep a reply chain may nest.
const MaxCommentDepth = 0xFFFF

// MaxBeneficiaries is the runtime cap on a comment's beneficiary list.
// Consensus reserves 127 slots in the wire format for headroom, but no
// evaluator will accept more than this many.
const MaxBeneficiaries = 8

// Beneficiary is one entry of a comment's locked-in payout split.
type Beneficiary struct {
	Account string
	Weight  uint16
}

// Comment is a post or reply. RootComment and ParentAuthor/ParentPermlink
// are references by id/name, never by pointer, per §3's ownership model.
type Comment struct {
	Author   string
	Permlink string

	ParentAuthor   string
	ParentPermlink string
	RootComment    uint64
	Depth          uint16

	Created    uint32
	LastUpdate uint32
	Active     uint32

	CashoutTime    uint32
	LastPayout     uint32
	MaxCashoutTime uint32

	NetRshares         int64
	AbsRshares         int64
	VoteRshares        int64
	ChildrenAbsRshares int64

	Children        uint32
	NetVotes        int32
	TotalVoteWeight uint64

	RewardWeight       uint16
	MaxAcceptedPayout  asset.Asset
	PercentDollars     uint16
	AllowVotes         bool
	AllowCurationRewards bool

	Beneficiaries []Beneficiary
}

// IsRoot reports whether this comment is a top-level post.
func (c *Comment) IsRoot() bool {
	return c.ParentAuthor == ""
}

// CashedOut reports whether this comment has already been paid, per the
// MAXIMUM-cashout-time sentinel convention.
func (c *Comment) CashedOut(maximumTime uint32) bool {
	return c.CashoutTime == maximumTime
}

// CommentVote records one voter's current vote on one comment. The pair
// (comment id, voter) is the table's unique key.
type CommentVote struct {
	Comment uint64
	Voter   string

	Rshares     int64
	VotePercent int16
	Weight      uint64
	LastUpdate  uint32
	NumChanges  int8
}

// CashedOutSentinel is the NumChanges value marking a vote as rejecting any
// further change because its comment has already paid out.
const CashedOutSentinel int8 = -1
