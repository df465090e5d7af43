package op

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/crypto"
	"github.com/velanet/corechain/errs"
)

func TestContextRequireAuthoritySatisfiedAndMissing(t *testing.T) {
	db := state.NewDatabase()
	key, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)

	require.NoError(t, db.CreateAccount(types.Account{Name: "alice", CanVote: true}))
	auth := authority.New(1)
	auth.Keys[key.PubKey()] = 1
	require.NoError(t, db.CreateAccountAuthority(types.AccountAuthority{
		Account: "alice", Owner: *auth, Active: *auth, Posting: *auth,
	}))

	signed := &Context{ProvidedKeys: map[crypto.PublicKey]struct{}{key.PubKey(): {}}}
	require.NoError(t, signed.RequireAuthority(db, "alice", authority.Active))

	unsigned := &Context{}
	err = unsigned.RequireAuthority(db, "alice", authority.Active)
	require.ErrorIs(t, err, errs.ErrMissingActiveAuth)
}

func TestContextRequireAuthorityLevelsMapToDistinctErrors(t *testing.T) {
	db := state.NewDatabase()
	require.NoError(t, db.CreateAccount(types.Account{Name: "alice", CanVote: true}))
	auth := authority.New(1)
	require.NoError(t, db.CreateAccountAuthority(types.AccountAuthority{
		Account: "alice", Owner: *auth, Active: *auth, Posting: *auth,
	}))

	ctx := &Context{}
	require.ErrorIs(t, ctx.RequireAuthority(db, "alice", authority.Owner), errs.ErrMissingOwnerAuth)
	require.ErrorIs(t, ctx.RequireAuthority(db, "alice", authority.Posting), errs.ErrMissingPostingAuth)
}
