package transfer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
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

func seedHolder(t *testing.T, db *state.Database, name string, liquid int64, key crypto.PublicKey) {
	t.Helper()
	require.NoError(t, db.CreateAccount(types.Account{
		Name:    name,
		Liquid:  asset.Asset{Amount: liquid, Symbol: asset.LIQUID},
		CanVote: true,
		Created: genesisTime,
	}))
	auth := singleKeyAuthority(key)
	require.NoError(t, db.CreateAccountAuthority(types.AccountAuthority{
		Account: name,
		Owner:   auth,
		Active:  auth,
		Posting: auth,
	}))
}

func TestApplyTransferMovesLiquidBalance(t *testing.T) {
	db := state.NewDatabase()
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	bobKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	seedHolder(t, db, "alice", 1_000, aliceKey.PubKey())
	seedHolder(t, db, "bob", 0, bobKey.PubKey())

	ctx := &op.Context{
		HeadBlockTime: genesisTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.NoError(t, Apply(db, ctx, op.Transfer{
		From: "alice", To: "bob",
		Amount: asset.Asset{Amount: 400, Symbol: asset.LIQUID},
		Memo:   "rent",
	}))

	alice, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(600), alice.Liquid.Amount)
	bob, ok := db.GetAccount("bob")
	require.True(t, ok)
	require.Equal(t, int64(400), bob.Liquid.Amount)
}

func TestApplyTransferRejectsInsufficientFunds(t *testing.T) {
	db := state.NewDatabase()
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	bobKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	seedHolder(t, db, "alice", 100, aliceKey.PubKey())
	seedHolder(t, db, "bob", 0, bobKey.PubKey())

	ctx := &op.Context{
		HeadBlockTime: genesisTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.Error(t, Apply(db, ctx, op.Transfer{
		From: "alice", To: "bob",
		Amount: asset.Asset{Amount: 200, Symbol: asset.LIQUID},
	}))

	alice, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(100), alice.Liquid.Amount)
}

func TestApplyClaimRewardBalanceMovesRewardsToSpendable(t *testing.T) {
	db := state.NewDatabase()
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	require.NoError(t, db.CreateAccount(types.Account{
		Name:                 "alice",
		RewardLiquid:         asset.Asset{Amount: 500, Symbol: asset.LIQUID},
		RewardDollar:         asset.Asset{Amount: 200, Symbol: asset.DOLLAR},
		RewardVestingBalance: asset.Asset{Amount: 1_000_000, Symbol: asset.VESTS},
		CanVote:              true,
		Created:              genesisTime,
	}))
	auth := singleKeyAuthority(aliceKey.PubKey())
	require.NoError(t, db.CreateAccountAuthority(types.AccountAuthority{
		Account: "alice", Owner: auth, Active: auth, Posting: auth,
	}))

	ctx := &op.Context{
		HeadBlockTime: genesisTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.NoError(t, ApplyClaimRewardBalance(db, ctx, op.ClaimRewardBalance{
		Account:       "alice",
		RewardLiquid:  asset.Asset{Amount: 500, Symbol: asset.LIQUID},
		RewardDollar:  asset.Asset{Amount: 200, Symbol: asset.DOLLAR},
		RewardVesting: asset.Asset{Amount: 1_000_000, Symbol: asset.VESTS},
	}))

	alice, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(500), alice.Liquid.Amount)
	require.Equal(t, int64(200), alice.Dollar.Amount)
	require.Equal(t, int64(1_000_000), alice.VestingShares.Amount)
	require.Equal(t, int64(0), alice.RewardLiquid.Amount)
	require.Equal(t, int64(0), alice.RewardDollar.Amount)
	require.Equal(t, int64(0), alice.RewardVestingBalance.Amount)
}

func TestApplyClaimRewardBalanceRejectsOverclaim(t *testing.T) {
	db := state.NewDatabase()
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	require.NoError(t, db.CreateAccount(types.Account{
		Name:         "alice",
		RewardLiquid: asset.Asset{Amount: 100, Symbol: asset.LIQUID},
		CanVote:      true,
		Created:      genesisTime,
	}))
	auth := singleKeyAuthority(aliceKey.PubKey())
	require.NoError(t, db.CreateAccountAuthority(types.AccountAuthority{
		Account: "alice", Owner: auth, Active: auth, Posting: auth,
	}))

	ctx := &op.Context{
		HeadBlockTime: genesisTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.Error(t, ApplyClaimRewardBalance(db, ctx, op.ClaimRewardBalance{
		Account:      "alice",
		RewardLiquid: asset.Asset{Amount: 200, Symbol: asset.LIQUID},
	}))
}
