package chain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestVotePowerReserveRateMatchesWorkedVoteCost pins the relationship
// DefaultVotePowerReserveRate is derived from: at full voting power and
// full weight, a vote must cost exactly 2.5% of voting power
// (max_vote_denom == 40), per spec.md's worked vote scenario.
func TestVotePowerReserveRateMatchesWorkedVoteCost(t *testing.T) {
	maxVoteDenom := DefaultVotePowerReserveRate * VoteRegenerationSeconds / SecondsPerDay
	require.Equal(t, 40, maxVoteDenom)
}

func TestMinFeedsIsOneThirdOfMaxWitnesses(t *testing.T) {
	require.Equal(t, MaxWitnesses/3, MinFeeds)
}

func TestVestingWithdrawIntervalMatchesSeconds(t *testing.T) {
	require.Equal(t, VestingWithdrawIntervalSeconds, int(VestingWithdrawInterval().Seconds()))
}
