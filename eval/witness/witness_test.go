package witness

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"

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

func seedCandidate(t *testing.T, db *state.Database, name string, key crypto.PublicKey) {
	t.Helper()
	require.NoError(t, db.CreateAccount(types.Account{
		Name:    name,
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

func TestApplyWitnessUpdateCreatesThenUpdatesRow(t *testing.T) {
	db := state.NewDatabase()
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	seedCandidate(t, db, "alice", aliceKey.PubKey())

	signingKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	signingHex := hex.EncodeToString(signingKey.PubKey().Bytes())

	ctx := &op.Context{
		HeadBlockTime: genesisTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.NoError(t, ApplyWitnessUpdate(db, ctx, op.WitnessUpdate{
		Owner:         "alice",
		URL:           "https://alice.example/witness",
		SigningKeyHex: signingHex,
		Props:         op.WitnessPropsWire{MaximumBlockSize: 131072},
	}))

	w, ok := db.GetWitness("alice")
	require.True(t, ok)
	require.Equal(t, "https://alice.example/witness", w.URL)
	require.Equal(t, signingKey.PubKey(), w.SigningKey)
	require.Equal(t, uint32(131072), w.Props.MaximumBlockSize)
	require.Equal(t, genesisTime, w.Created)

	require.NoError(t, ApplyWitnessUpdate(db, ctx, op.WitnessUpdate{
		Owner: "alice",
		URL:   "https://alice.example/new-url",
	}))
	w, ok = db.GetWitness("alice")
	require.True(t, ok)
	require.Equal(t, "https://alice.example/new-url", w.URL)
	require.Equal(t, crypto.PublicKey{}, w.SigningKey)
}

func TestApplyWitnessSetPropertiesUpdatesExistingRow(t *testing.T) {
	db := state.NewDatabase()
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	seedCandidate(t, db, "alice", aliceKey.PubKey())

	ctx := &op.Context{
		HeadBlockTime: genesisTime,
		ProvidedKeys:  map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}},
	}
	require.NoError(t, ApplyWitnessUpdate(db, ctx, op.WitnessUpdate{Owner: "alice", URL: "https://alice.example"}))

	urlBytes, err := rlp.EncodeToBytes("https://alice.example/v2")
	require.NoError(t, err)
	sizeBytes, err := rlp.EncodeToBytes(uint32(65536))
	require.NoError(t, err)

	require.NoError(t, ApplyWitnessSetProperties(db, ctx, op.WitnessSetProperties{
		Owner: "alice",
		Props: []op.WitnessProp{
			{Key: "url", Value: urlBytes},
			{Key: "maximum_block_size", Value: sizeBytes},
		},
	}))

	w, ok := db.GetWitness("alice")
	require.True(t, ok)
	require.Equal(t, "https://alice.example/v2", w.URL)
	require.Equal(t, uint32(65536), w.Props.MaximumBlockSize)
}

func TestApplyWitnessSetPropertiesRejectsUnknownWitness(t *testing.T) {
	db := state.NewDatabase()
	ctx := &op.Context{HeadBlockTime: genesisTime}
	require.Error(t, ApplyWitnessSetProperties(db, ctx, op.WitnessSetProperties{Owner: "nobody"}))
}
