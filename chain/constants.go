// Package chain collects the consensus-wide named constants (§6) and the
// runtime Config that parameterizes the handful of values the spec
// allows to vary by deployment (hardfork level, testnet cashout window).
package chain

import "time"

// Consensus-wide named constants, authoritative per spec §6. Time-valued
// constants are expressed in seconds to match the wire's u32 second fields.
const (
	BlockIntervalSeconds = 3
	MaxWitnesses         = 21
	MaxVotedWitnesses    = 20
	MaxProxyDepth        = 4

	VestingWithdrawIntervals       = 13
	VestingWithdrawIntervalSeconds = 7 * 24 * 60 * 60

	MaxWithdrawRoutes = 10

	SavingsWithdrawTimeSeconds   = 3 * 24 * 60 * 60
	SavingsWithdrawRequestLimit = 100

	VoteRegenerationSeconds = 5 * 24 * 60 * 60
	SecondsPerDay           = 24 * 60 * 60
	MaxVoteChanges          = 5
	ReverseAuctionWindow    = 30 * 60
	MinVoteIntervalSeconds  = 3
	MinVoteVestingShares    = 1_000_000
	VoteDustThreshold       = 1_000

	// DefaultVotePowerReserveRate seeds DynamicGlobalProperties.VotePowerReserveRate
	// at genesis: max_vote_denom = rate * VoteRegenerationSeconds / SecondsPerDay,
	// chosen so a full-power, full-weight vote costs exactly 2.5% of voting
	// power (max_vote_denom == 40), matching the spec's worked vote scenario.
	DefaultVotePowerReserveRate = 8

	MinRootCommentIntervalSeconds = 5 * 60
	MinReplyIntervalSeconds       = 3

	CashoutWindowSecondsLive = 7 * 24 * 60 * 60
	CashoutWindowSecondsTest = 24 * 60 * 60
	UpvoteLockoutSeconds     = 12 * 60 * 60

	MaxAccountWitnessVotes = 30
	Percent100             = 10_000

	MaxLimitOrderExpirationSeconds = 28 * 24 * 60 * 60
	ConversionDelaySeconds         = 302_400

	DelegationReturnPeriodSeconds = 10 * 24 * 60 * 60
	OwnerUpdateLimitSeconds       = 60 * 60
	OwnerAuthRecoveryPeriodSecs   = 30 * 24 * 60 * 60
	AccountRecoveryRequestExpiry  = 24 * 60 * 60

	MaxAuthorityMembership = 40
	MaxSigCheckDepth       = 2
	MaxSigCheckAccounts    = 125

	MaxSatoshis = 4_611_686_018_427_387_903

	CreateAccountWithModifier     = 30
	CreateAccountDelegationRatio  = 5
	CreateAccountDelegationTime   = 3 * 24 * 60 * 60

	MaxCommentDepth = 0xFFFF

	MaxTimeUntilExpiration = 60 * 60

	MinBlockSizeLimit  = 65536
	SoftMaxBlockSize   = 2 * 1024 * 1024
	MinAccountCreationFeeAmount = 1

	ZBDStartPercent = 200  // basis points, 2%
	ZBDStopPercent  = 500  // basis points, 5%
	MaxFeedAgeSeconds = 24 * 60 * 60
	FeedUpdateIntervalSeconds = 60 * 60

	RecentClaimsDecaySeconds = 15 * 24 * 60 * 60

	DollarMinCompoundingIntervalSeconds = 30 * 24 * 60 * 60
	SecondsPerYear                      = 365 * 24 * 60 * 60
)

// MinFeeds is the minimum number of fresh witness feeds required to compute
// a new median, floor(MAX_WITNESSES/3).
const MinFeeds = MaxWitnesses / 3

// MaximumTime is used as the "never" sentinel for cashout_time,
// next_vesting_withdrawal and similar fields.
const MaximumTime uint32 = 0xFFFFFFFF

// VestingWithdrawInterval returns the weekly tick duration as a
// time.Duration for housekeeping callers that work in time.Duration.
func VestingWithdrawInterval() time.Duration {
	return VestingWithdrawIntervalSeconds * time.Second
}
