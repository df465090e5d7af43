package genesis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/core/state"
)

const testSigningKey = "02" + "11111111111111111111111111111111111111111111111111111111111111"

func writeDoc(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadParsesDocument(t *testing.T) {
	path := writeDoc(t, `
chain_id: corechain-test
initial_time: 1700000000
accounts:
  - name: alice
    memo_key: deadbeef
    owner:
      threshold: 1
      members:
        - account: alice
          weight: 1
    active:
      threshold: 1
      members:
        - account: alice
          weight: 1
    posting:
      threshold: 1
      members:
        - account: alice
          weight: 1
    liquid_amount: 1000000
    vesting_shares_amount: 500000000
    can_vote: true
witnesses: []
reward_funds: []
`)
	doc, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "corechain-test", doc.ChainID)
	require.Len(t, doc.Accounts, 1)
	require.Equal(t, "alice", doc.Accounts[0].Name)
	require.Equal(t, int64(1000000), doc.Accounts[0].LiquidAmount)
}

func TestApplySeedsAccountsAndGlobals(t *testing.T) {
	doc := &Document{
		ChainID:     "corechain-test",
		InitialTime: 1700000000,
		Accounts: []AccountEntry{
			{
				Name:    "alice",
				MemoKey: "deadbeef",
				Owner: AuthorityEntry{Threshold: 1, Members: []KeyWeight{
					{Account: "alice", Weight: 1},
				}},
				Active: AuthorityEntry{Threshold: 1, Members: []KeyWeight{
					{Account: "alice", Weight: 1},
				}},
				Posting: AuthorityEntry{Threshold: 1, Members: []KeyWeight{
					{Account: "alice", Weight: 1},
				}},
				LiquidAmount:        1_000_000,
				VestingSharesAmount: 500_000_000,
				CanVote:             true,
			},
		},
	}

	db := state.NewDatabase()
	require.NoError(t, Apply(db, doc))

	acct, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, asset.Asset{Amount: 1_000_000, Symbol: asset.LIQUID}, acct.Liquid)
	require.True(t, acct.CanVote)

	_, ok = db.GetAccountAuthority("alice")
	require.True(t, ok)

	postFund, ok := db.GetRewardFund("post")
	require.True(t, ok)
	require.Equal(t, int64(2_000_000_000_000), postFund.ContentConstant)

	commentFund, ok := db.GetRewardFund("comment")
	require.True(t, ok)
	require.Equal(t, uint16(2500), commentFund.PercentCurationRewards)

	require.Equal(t, int64(1_000_000), db.Globals.CurrentSupply.Amount)
	require.Equal(t, int64(500_000_000), db.Globals.TotalVestingShares.Amount)
	require.Equal(t, uint32(1700000000), db.Globals.HeadBlockTime)
}

func TestApplyRewardFundOverride(t *testing.T) {
	doc := &Document{
		InitialTime: 1700000000,
		RewardFunds: []RewardFundEntry{
			{
				Name:                   "post",
				ContentConstant:        1,
				PercentCurationRewards: 5000,
				PercentContentRewards:  10_000,
				AuthorRewardCurve:      "quadratic",
				CurationRewardCurve:    "linear",
			},
		},
	}
	db := state.NewDatabase()
	require.NoError(t, Apply(db, doc))

	fund, ok := db.GetRewardFund("post")
	require.True(t, ok)
	require.Equal(t, int64(1), fund.ContentConstant)
	require.Equal(t, uint16(5000), fund.PercentCurationRewards)
}

func TestApplyUnknownRewardFundNameFails(t *testing.T) {
	doc := &Document{
		RewardFunds: []RewardFundEntry{{Name: "bogus"}},
	}
	db := state.NewDatabase()
	require.Error(t, Apply(db, doc))
}
