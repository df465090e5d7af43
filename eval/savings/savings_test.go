package savings

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

func seedSaver(t *testing.T, db *state.Database, name string, liquid int64, key crypto.PublicKey) {
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

// TestSavingsRoundTripScenarioS5 runs the spec's worked savings round
// trip: Alice moves 1.000 LIQUID into her own savings balance, then
// requests it back out, which opens a pending withdrawal maturing
// SAVINGS_WITHDRAW_TIME later (settled by housekeeping, covered
// separately).
func TestSavingsRoundTripScenarioS5(t *testing.T) {
	db := state.NewDatabase()
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	seedSaver(t, db, "alice", 10_000, aliceKey.PubKey())

	ctx := &op.Context{
		HeadBlockTime: genesisTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}

	require.NoError(t, ApplyTransferToSavings(db, ctx, op.TransferToSavings{
		From:   "alice",
		To:     "alice",
		Amount: asset.Asset{Amount: 1_000, Symbol: asset.LIQUID},
	}))

	alice, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(9_000), alice.Liquid.Amount)
	require.Equal(t, int64(1_000), alice.SavingsLiquid.Amount)

	require.NoError(t, ApplyTransferFromSavings(db, ctx, op.TransferFromSavings{
		From:      "alice",
		RequestID: 7,
		To:        "alice",
		Amount:    asset.Asset{Amount: 1_000, Symbol: asset.LIQUID},
	}))

	alice, ok = db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(0), alice.SavingsLiquid.Amount)
	require.Equal(t, uint8(1), alice.SavingsWithdrawRequests)

	withdraw, _, ok := db.GetSavingsWithdraw("alice", 7)
	require.True(t, ok)
	require.Equal(t, genesisTime+chain.SavingsWithdrawTimeSeconds, withdraw.Complete)
	require.Equal(t, "alice", withdraw.To)
	require.Equal(t, int64(1_000), withdraw.Amount.Amount)
}
