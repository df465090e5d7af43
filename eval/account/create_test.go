package account

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

// singleKeyAuthority builds a threshold-1 authority satisfied by exactly
// one provided key, the minimal well-formed (non-Impossible) shape every
// evaluator test needs to pass RequireAuthority.
func singleKeyAuthority(key crypto.PublicKey) authority.Authority {
	a := authority.New(1)
	a.Keys[key] = 1
	return *a
}

func seedCreator(t *testing.T, db *state.Database, name string, liquid int64, key crypto.PublicKey) {
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

// TestApplyCreateScenarioS1 runs the spec's worked account-creation
// scenario: a creator with 10.000 LIQUID spends a 0.100 LIQUID fee to
// create a new account, fully vested into the new account at the
// (degenerate, empty-pool) 1 LIQUID : 1,000,000 VESTS price.
func TestApplyCreateScenarioS1(t *testing.T) {
	db := state.NewDatabase()
	creatorKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)

	seedCreator(t, db, "creator", 10_000, creatorKey.PubKey())

	ctx := &op.Context{
		HeadBlockTime: genesisTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{creatorKey.PubKey(): {}},
	}
	aliceAuth := singleKeyAuthority(aliceKey.PubKey())
	tx := op.AccountCreate{
		Fee:            asset.Asset{Amount: 100, Symbol: asset.LIQUID},
		Creator:        "creator",
		NewAccountName: "alice",
		Owner:          aliceAuth,
		Active:         aliceAuth,
		Posting:        aliceAuth,
		MemoKey:        "alice-memo-key",
		JSONMetadata:   `{"foo":"bar"}`,
	}

	require.NoError(t, ApplyCreate(db, ctx, tx))

	creator, ok := db.GetAccount("creator")
	require.True(t, ok)
	require.Equal(t, int64(9_900), creator.Liquid.Amount)

	alice, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, asset.VESTS, alice.VestingShares.Symbol)
	require.NotZero(t, alice.VestingShares.Amount)
	require.Equal(t, int64(100_000_000), alice.VestingShares.Amount)
	require.Equal(t, "creator", alice.RecoveryAccount)

	require.Error(t, ApplyCreate(db, ctx, tx))
}
