package market

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

func seedTrader(t *testing.T, db *state.Database, name string, liquid, dollar int64, key crypto.PublicKey) {
	t.Helper()
	require.NoError(t, db.CreateAccount(types.Account{
		Name:    name,
		Liquid:  asset.Asset{Amount: liquid, Symbol: asset.LIQUID},
		Dollar:  asset.Asset{Amount: dollar, Symbol: asset.DOLLAR},
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

// TestLimitOrderCreateScenarioS3 runs the spec's worked partial-fill
// scenario: Alice rests a 10 LIQUID : 15 DOLLAR sell order, then Bob's
// smaller opposing order fills completely against it, leaving Alice's
// order open for its remainder at the same price and emitting a
// fill_order virtual event for the matched leg.
func TestLimitOrderCreateScenarioS3(t *testing.T) {
	db := state.NewDatabase()

	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	bobKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	seedTrader(t, db, "alice", 10_000, 0, aliceKey.PubKey())
	seedTrader(t, db, "bob", 0, 7_500, bobKey.PubKey())

	aliceCtx := &op.Context{
		HeadBlockTime: genesisTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.NoError(t, ApplyLimitOrderCreate(db, aliceCtx, op.LimitOrderCreate{
		Owner:        "alice",
		OrderID:      1,
		AmountToSell: asset.Asset{Amount: 10_000, Symbol: asset.LIQUID},
		MinToReceive: asset.Asset{Amount: 15_000, Symbol: asset.DOLLAR},
		Expiration:   genesisTime + chain.MaxLimitOrderExpirationSeconds,
	}))

	bobCtx := &op.Context{
		HeadBlockTime: genesisTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{bobKey.PubKey(): {}},
	}
	require.NoError(t, ApplyLimitOrderCreate(db, bobCtx, op.LimitOrderCreate{
		Owner:        "bob",
		OrderID:      1,
		AmountToSell: asset.Asset{Amount: 7_500, Symbol: asset.DOLLAR},
		MinToReceive: asset.Asset{Amount: 5_000, Symbol: asset.LIQUID},
		Expiration:   genesisTime + 24*60*60,
	}))

	alice, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(7_500), alice.Dollar.Amount)

	bob, ok := db.GetAccount("bob")
	require.True(t, ok)
	require.Equal(t, int64(5_000), bob.Liquid.Amount)
	require.Equal(t, int64(0), bob.Dollar.Amount)

	_, _, bobOrderOpen := db.GetLimitOrder("bob", 1)
	require.False(t, bobOrderOpen)

	remaining, _, ok := db.GetLimitOrder("alice", 1)
	require.True(t, ok)
	require.Equal(t, int64(5_000), remaining.ForSale)
	require.Equal(t, int64(10_000), remaining.SellPrice.Base.Amount)
	require.Equal(t, int64(15_000), remaining.SellPrice.Quote.Amount)

	events := db.Events.Events()
	require.Len(t, events, 1)
	fill, ok := events[0].(types.FillOrderEvent)
	require.True(t, ok)
	require.Equal(t, "alice", fill.OpenOwner)
	require.Equal(t, uint32(1), fill.OpenOrderID)
	require.Equal(t, asset.Asset{Amount: 5_000, Symbol: asset.LIQUID}, fill.OpenPays)
	require.Equal(t, "bob", fill.CurrentOwner)
	require.Equal(t, uint32(1), fill.CurrentOrderID)
	require.Equal(t, asset.Asset{Amount: 7_500, Symbol: asset.DOLLAR}, fill.CurrentPays)
}
