package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/core/types"
)

func TestCreateAccountRejectsDuplicateName(t *testing.T) {
	db := NewDatabase()
	require.NoError(t, db.CreateAccount(types.Account{Name: "alice"}))
	require.Error(t, db.CreateAccount(types.Account{Name: "alice"}))
}

func TestModifyAccountRollbackRestoresPriorValue(t *testing.T) {
	db := NewDatabase()
	require.NoError(t, db.CreateAccount(types.Account{
		Name:   "alice",
		Liquid: asset.Asset{Amount: 1_000, Symbol: asset.LIQUID},
	}))

	session := db.Begin()
	_, err := db.ModifyAccount("alice", func(a types.Account) types.Account {
		a.Liquid.Amount = 9_999
		return a
	})
	require.NoError(t, err)

	alice, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(9_999), alice.Liquid.Amount)

	session.Rollback()

	alice, ok = db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(1_000), alice.Liquid.Amount)
}

func TestEscrowCreateGetRemoveRoundTrips(t *testing.T) {
	db := NewDatabase()
	require.NoError(t, db.CreateEscrow(types.Escrow{
		From: "alice", To: "bob", Agent: "sam", EscrowID: 1,
		LiquidBalance: asset.Asset{Amount: 1_000, Symbol: asset.LIQUID},
	}))
	require.Error(t, db.CreateEscrow(types.Escrow{From: "alice", To: "bob", Agent: "sam", EscrowID: 1}))

	esc, id, ok := db.GetEscrow(1)
	require.True(t, ok)
	require.Equal(t, "bob", esc.To)

	require.NoError(t, db.RemoveEscrow(id))
	_, _, ok = db.GetEscrow(1)
	require.False(t, ok)
}

func TestSavingsWithdrawCreateGetRoundTrips(t *testing.T) {
	db := NewDatabase()
	require.NoError(t, db.CreateSavingsWithdraw(types.SavingsWithdraw{
		From: "alice", RequestID: 7, To: "alice",
		Amount:   asset.Asset{Amount: 1_000, Symbol: asset.LIQUID},
		Complete: 1_700_000_000,
	}))
	require.Error(t, db.CreateSavingsWithdraw(types.SavingsWithdraw{From: "alice", RequestID: 7, To: "alice"}))

	w, _, ok := db.GetSavingsWithdraw("alice", 7)
	require.True(t, ok)
	require.Equal(t, int64(1_000), w.Amount.Amount)

	_, _, ok = db.GetSavingsWithdraw("alice", 8)
	require.False(t, ok)
}
