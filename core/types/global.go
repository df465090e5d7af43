package types

import (
	"github.com/holiman/uint256"

	"github.com/velanet/corechain/asset"
)

// DynamicGlobalProperties is the single per-chain row of head-block-scoped
// totals: supplies, the vesting pool, and the DOLLAR print-rate ramp. It is
// an ordinary object in the store, not a process global, per §9's design
// note.
type DynamicGlobalProperties struct {
	HeadBlockNumber uint32
	HeadBlockTime   uint32

	CurrentSupply       asset.Asset
	CurrentDollarSupply asset.Asset
	VirtualSupply       asset.Asset

	TotalVestingFundLiquid asset.Asset
	TotalVestingShares     asset.Asset

	DollarPrintRate uint16

	MaximumBlockSize uint32

	// VotePowerReserveRate sets how fast voting power drains per vote:
	// max_vote_denom = VotePowerReserveRate * VoteRegenerationSeconds /
	// SecondsPerDay. Genesis-seeded, not witness-voted.
	VotePowerReserveRate uint32
}

// VestingSharePrice derives the current global VESTS/LIQUID exchange rate
// from the totals tracked here.
func (g *DynamicGlobalProperties) VestingSharePrice() asset.Price {
	return asset.VestingSharePrice(g.TotalVestingShares.Amount, g.TotalVestingFundLiquid.Amount)
}

// WitnessSchedule is the singleton row holding the currently active
// producer rotation and the median consensus parameters voted in by that
// rotation.
type WitnessSchedule struct {
	CurrentShuffledWitnesses []string
	NumScheduledWitnesses    uint8

	MedianProps WitnessProps
}

// FeedHistoryRingLength is the number of hourly samples retained, 12*7 = 84,
// i.e. three and a half days of history.
const FeedHistoryRingLength = 12 * 7

// FeedHistory is the singleton row tracking the rolling median DOLLAR/LIQUID
// exchange rate used to value comment payouts and conversions.
type FeedHistory struct {
	CurrentMedianHistory asset.Price
	PriceHistory         []asset.Price
	LastUpdate           uint32
}

// RewardFund is one of the named payout pools ("post" or "comment") the
// cashout housekeeping task draws from.
type RewardFund struct {
	Name string

	RewardBalance asset.Asset
	RecentClaims  uint256.Int

	LastUpdate uint32

	ContentConstant         int64
	PercentCurationRewards  uint16
	PercentContentRewards   uint16
	AuthorRewardCurve       string
	CurationRewardCurve     string
}
