package misc

import (
	"testing"

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

func seedSigner(t *testing.T, db *state.Database, name string, key crypto.PublicKey) {
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

func TestApplyCustomRequiresActiveAuthority(t *testing.T) {
	db := state.NewDatabase()
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	seedSigner(t, db, "alice", aliceKey.PubKey())

	signed := &op.Context{ProvidedKeys: map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}}}
	require.NoError(t, ApplyCustom(db, signed, op.Custom{RequiredAuths: []string{"alice"}, ID: 1, Data: []byte("payload")}))

	unsigned := &op.Context{}
	require.Error(t, ApplyCustom(db, unsigned, op.Custom{RequiredAuths: []string{"alice"}, ID: 1}))
}

func TestApplyCustomJSONValidatesPayload(t *testing.T) {
	db := state.NewDatabase()
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	seedSigner(t, db, "alice", aliceKey.PubKey())

	ctx := &op.Context{ProvidedKeys: map[crypto.PublicKey]struct{}{aliceKey.PubKey(): {}}}
	require.NoError(t, ApplyCustomJSON(db, ctx, op.CustomJSON{
		RequiredPostingAuths: []string{"alice"},
		ID:                   "follow",
		JSON:                 `{"follower":"alice"}`,
	}))

	require.Error(t, ApplyCustomJSON(db, ctx, op.CustomJSON{
		RequiredPostingAuths: []string{"alice"},
		ID:                   "follow",
		JSON:                 `not json`,
	}))
}

func TestApplyReportOverProductionRequiresDistinctBlocks(t *testing.T) {
	db := state.NewDatabase()
	aliceKey, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	seedSigner(t, db, "alice", aliceKey.PubKey())
	require.NoError(t, db.CreateWitness(types.Witness{Owner: "alice", Created: genesisTime}))

	ctx := &op.Context{HeadBlockTime: genesisTime}
	require.NoError(t, ApplyReportOverProduction(db, ctx, op.ReportOverProduction{
		Reporter:    "alice",
		FirstBlock:  []byte{0x01},
		SecondBlock: []byte{0x02},
	}))

	require.Error(t, ApplyReportOverProduction(db, ctx, op.ReportOverProduction{
		Reporter:    "alice",
		FirstBlock:  []byte{0x01},
		SecondBlock: []byte{0x01},
	}))

	require.Error(t, ApplyReportOverProduction(db, ctx, op.ReportOverProduction{
		Reporter:    "nobody",
		FirstBlock:  []byte{0x01},
		SecondBlock: []byte{0x02},
	}))
}
