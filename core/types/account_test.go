package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velanet/corechain/asset"
)

func TestAccountCreditDebitLiquid(t *testing.T) {
	a := Account{Name: "alice", Liquid: asset.Asset{Amount: 1_000, Symbol: asset.LIQUID}}

	require.NoError(t, a.Credit(asset.Asset{Amount: 500, Symbol: asset.LIQUID}))
	require.Equal(t, int64(1_500), a.Liquid.Amount)

	require.NoError(t, a.Debit(asset.Asset{Amount: 1_000, Symbol: asset.LIQUID}))
	require.Equal(t, int64(500), a.Liquid.Amount)
}

func TestAccountDebitRejectsInsufficientBalance(t *testing.T) {
	a := Account{Name: "alice", Liquid: asset.Asset{Amount: 100, Symbol: asset.LIQUID}}
	require.Error(t, a.Debit(asset.Asset{Amount: 200, Symbol: asset.LIQUID}))
	require.Equal(t, int64(100), a.Liquid.Amount)
}

func TestAccountCreditDebitRejectVests(t *testing.T) {
	a := Account{Name: "alice"}
	require.Error(t, a.Credit(asset.Asset{Amount: 100, Symbol: asset.VESTS}))
	require.Error(t, a.Debit(asset.Asset{Amount: 100, Symbol: asset.VESTS}))
}

func TestAccountFreeVestingShares(t *testing.T) {
	a := Account{
		VestingShares:          asset.Asset{Amount: 1_000, Symbol: asset.VESTS},
		DelegatedVestingShares: asset.Asset{Amount: 200, Symbol: asset.VESTS},
		ToWithdraw:             300,
		Withdrawn:              100,
	}
	require.Equal(t, int64(1_000-200-(300-100)), a.FreeVestingShares())
}

func TestAccountEffectiveVestingShares(t *testing.T) {
	a := Account{
		VestingShares:          asset.Asset{Amount: 1_000, Symbol: asset.VESTS},
		ReceivedVestingShares:  asset.Asset{Amount: 500, Symbol: asset.VESTS},
		DelegatedVestingShares: asset.Asset{Amount: 200, Symbol: asset.VESTS},
	}
	require.Equal(t, int64(1_300), a.EffectiveVestingShares())
}
