package escrow

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

func seedParty(t *testing.T, db *state.Database, name string, liquid int64, key crypto.PublicKey) {
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

// TestEscrowLifecycleScenarioS4 runs the spec's worked escrow lifecycle:
// Alice opens an escrow to Bob through agent Sam, both approve
// (paying Sam's fee on ratification), Alice disputes it, and Sam releases
// the balance to Bob.
func TestEscrowLifecycleScenarioS4(t *testing.T) {
	db := state.NewDatabase()
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	bobKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	samKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)

	seedParty(t, db, "alice", 2_000, aliceKey.PubKey())
	seedParty(t, db, "bob", 0, bobKey.PubKey())
	seedParty(t, db, "sam", 0, samKey.PubKey())

	ratificationDeadline := genesisTime + 100
	expiration := genesisTime + 200

	aliceCtx := &op.Context{
		HeadBlockTime: genesisTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.NoError(t, ApplyEscrowTransfer(db, aliceCtx, op.EscrowTransfer{
		From:                 "alice",
		To:                   "bob",
		Agent:                "sam",
		EscrowID:             1,
		LiquidAmount:         asset.Asset{Amount: 1_000, Symbol: asset.LIQUID},
		DollarAmount:         asset.Zero(asset.DOLLAR),
		Fee:                  asset.Asset{Amount: 100, Symbol: asset.LIQUID},
		RatificationDeadline: ratificationDeadline,
		Expiration:           expiration,
	}))

	alice, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(900), alice.Liquid.Amount)

	bobCtx := &op.Context{
		HeadBlockTime: genesisTime + 10,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{bobKey.PubKey(): {}},
	}
	require.NoError(t, ApplyEscrowApprove(db, bobCtx, op.EscrowApprove{
		From: "alice", To: "bob", Agent: "sam", Who: "bob", EscrowID: 1, Approve: true,
	}))

	samCtx := &op.Context{
		HeadBlockTime: genesisTime + 20,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{samKey.PubKey(): {}},
	}
	require.NoError(t, ApplyEscrowApprove(db, samCtx, op.EscrowApprove{
		From: "alice", To: "bob", Agent: "sam", Who: "sam", EscrowID: 1, Approve: true,
	}))

	sam, ok := db.GetAccount("sam")
	require.True(t, ok)
	require.Equal(t, int64(100), sam.Liquid.Amount)

	esc, _, ok := db.GetEscrow(1)
	require.True(t, ok)
	require.True(t, esc.Ratified())

	disputeCtx := &op.Context{
		HeadBlockTime: genesisTime + 30,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.NoError(t, ApplyEscrowDispute(db, disputeCtx, op.EscrowDispute{
		From: "alice", To: "bob", Agent: "sam", Who: "alice", EscrowID: 1,
	}))

	esc, _, ok = db.GetEscrow(1)
	require.True(t, ok)
	require.True(t, esc.Disputed)

	releaseCtx := &op.Context{
		HeadBlockTime: genesisTime + 40,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{samKey.PubKey(): {}},
	}
	require.NoError(t, ApplyEscrowRelease(db, releaseCtx, op.EscrowRelease{
		From: "alice", To: "bob", Agent: "sam", Who: "sam", Receiver: "bob", EscrowID: 1,
		LiquidAmount: asset.Asset{Amount: 1_000, Symbol: asset.LIQUID},
		DollarAmount: asset.Zero(asset.DOLLAR),
	}))

	bob, ok := db.GetAccount("bob")
	require.True(t, ok)
	require.Equal(t, int64(1_000), bob.Liquid.Amount)

	_, _, ok = db.GetEscrow(1)
	require.False(t, ok)
}
