package content

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/crypto"
	"github.com/velanet/corechain/op"
)

const genesisTime uint32 = 1_700_000_000

func singleKeyAuthority(key crypto.PublicKey) authority.Authority {
	a := authority.New(1)
	a.Keys[key] = 1
	return *a
}

func seedVoter(t *testing.T, db *state.Database, name string, vestingShares int64, key crypto.PublicKey) {
	t.Helper()
	require.NoError(t, db.CreateAccount(types.Account{
		Name:          name,
		VestingShares: asset.Asset{Amount: vestingShares, Symbol: asset.VESTS},
		VotingPower:   chain.Percent100,
		CanVote:       true,
		Created:       genesisTime,
	}))
	auth := singleKeyAuthority(key)
	require.NoError(t, db.CreateAccountAuthority(types.AccountAuthority{
		Account: name,
		Owner:   auth,
		Active:  auth,
		Posting: auth,
	}))
}

// TestApplyVoteScenarioS2 runs the spec's worked self-vote scenario: Alice
// posts, waits 5 seconds, then votes her own post at full weight. The
// voting-power drain and resulting rshares must match the spec's worked
// numbers exactly (voting_power_after=9750, rshares=V/40-1000).
func TestApplyVoteScenarioS2(t *testing.T) {
	db := state.NewDatabase()
	db.Globals.VotePowerReserveRate = chain.DefaultVotePowerReserveRate

	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	const vestingShares = 500_000 * 1_000_000
	seedVoter(t, db, "alice", vestingShares, aliceKey.PubKey())

	postCtx := &op.Context{
		HeadBlockTime:        genesisTime,
		CashoutWindowSeconds: chain.CashoutWindowSecondsLive,
		ProvidedKeys:         map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.NoError(t, ApplyComment(db, postCtx, op.Comment{
		Author:   "alice",
		Permlink: "test",
	}))

	voteTime := genesisTime + 5
	voteCtx := &op.Context{
		HeadBlockTime: voteTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.NoError(t, ApplyVote(db, voteCtx, op.Vote{
		Voter:    "alice",
		Author:   "alice",
		Permlink: "test",
		Weight:   10_000,
	}))

	voter, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, uint16(9750), voter.VotingPower)
	require.Equal(t, voteTime, voter.LastVoteTime)

	comment, commentID, ok := db.GetComment("alice", "test")
	require.True(t, ok)
	expectedRshares := int64(vestingShares)/40 - 1_000
	require.Equal(t, expectedRshares, comment.NetRshares)

	vote, _, ok := db.GetCommentVote(commentID, "alice")
	require.True(t, ok)
	require.Equal(t, expectedRshares, vote.Rshares)
}
