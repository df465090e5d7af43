package vesting

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

func seedDelegator(t *testing.T, db *state.Database, name string, vestingShares int64, key crypto.PublicKey) {
	t.Helper()
	require.NoError(t, db.CreateAccount(types.Account{
		Name:          name,
		VestingShares: asset.Asset{Amount: vestingShares, Symbol: asset.VESTS},
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

// TestDelegateVestingSharesScenarioS6 runs the spec's worked delegation
// decrease-to-zero scenario: Alice delegates 10,000,000 VESTS to Bob, then
// re-delegates zero. The delegation object is removed immediately, an
// expiration object holds the returned shares until
// DELEGATION_RETURN_PERIOD, Alice's delegated-out total stays charged
// until that expiry, and Bob's received total drops immediately.
func TestDelegateVestingSharesScenarioS6(t *testing.T) {
	db := state.NewDatabase()
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	bobKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)

	const delegateAmount = 10_000_000 * 1_000_000
	seedDelegator(t, db, "alice", 20_000_000*1_000_000, aliceKey.PubKey())
	seedDelegator(t, db, "bob", 0, bobKey.PubKey())

	ctx := &op.Context{
		HeadBlockTime: genesisTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.NoError(t, ApplyDelegateVestingShares(db, ctx, op.DelegateVestingShares{
		Delegator:     "alice",
		Delegatee:     "bob",
		VestingShares: asset.Asset{Amount: delegateAmount, Symbol: asset.VESTS},
	}))

	alice, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(delegateAmount), alice.DelegatedVestingShares.Amount)
	bob, ok := db.GetAccount("bob")
	require.True(t, ok)
	require.Equal(t, int64(delegateAmount), bob.ReceivedVestingShares.Amount)

	_, hasDelegation := db.GetVestingDelegation("alice", "bob")
	require.True(t, hasDelegation)

	laterCtx := &op.Context{
		HeadBlockTime: genesisTime + 100,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.NoError(t, ApplyDelegateVestingShares(db, laterCtx, op.DelegateVestingShares{
		Delegator:     "alice",
		Delegatee:     "bob",
		VestingShares: asset.Zero(asset.VESTS),
	}))

	_, hasDelegation = db.GetVestingDelegation("alice", "bob")
	require.False(t, hasDelegation)

	alice, ok = db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(delegateAmount), alice.DelegatedVestingShares.Amount)

	bob, ok = db.GetAccount("bob")
	require.True(t, ok)
	require.Equal(t, int64(0), bob.ReceivedVestingShares.Amount)

	dueIDs := db.VestingDelegationExpirationsDueBy(genesisTime + 100 + chain.DelegationReturnPeriodSeconds)
	require.Len(t, dueIDs, 1)
	found, ok := db.VestingDelegationExpirations.Get(dueIDs[0])
	require.True(t, ok)
	require.Equal(t, int64(delegateAmount), found.VestingShares.Amount)
	require.Equal(t, genesisTime+100+chain.DelegationReturnPeriodSeconds, found.Expiration)
	require.Equal(t, "alice", found.Delegator)
}
