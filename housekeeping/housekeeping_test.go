package housekeeping

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
)

const genesisTime uint32 = 1_700_000_000

func seedAccount(t *testing.T, db *state.Database, name string) types.Account {
	t.Helper()
	acct := types.Account{
		Name:                  name,
		NextVestingWithdrawal: chain.MaximumTime,
		Created:               genesisTime,
	}
	require.NoError(t, db.CreateAccount(acct))
	got, ok := db.GetAccount(name)
	require.True(t, ok)
	return got
}

func seedGlobals(db *state.Database) {
	db.Globals = types.DynamicGlobalProperties{
		HeadBlockTime:          genesisTime,
		CurrentSupply:          asset.Asset{Amount: 1_000_000_000, Symbol: asset.LIQUID},
		CurrentDollarSupply:    asset.Asset{Amount: 10_000_000, Symbol: asset.DOLLAR},
		VirtualSupply:          asset.Asset{Amount: 1_000_000_000, Symbol: asset.LIQUID},
		TotalVestingFundLiquid: asset.Asset{Amount: 500_000_000, Symbol: asset.LIQUID},
		TotalVestingShares:     asset.Asset{Amount: 500_000_000_000, Symbol: asset.VESTS},
		MaximumBlockSize:       131072,
		DollarPrintRate:        chain.Percent100,
	}
	db.Feed = types.FeedHistory{LastUpdate: genesisTime}
}

func TestProcessVestingWithdrawalsPaysOwnerAndClosesPlan(t *testing.T) {
	db := state.NewDatabase()
	seedGlobals(db)
	acct := seedAccount(t, db, "alice")
	acct.VestingShares = asset.Asset{Amount: 1_000_000, Symbol: asset.VESTS}
	acct.VestingWithdrawRate = asset.Asset{Amount: 1_000_000, Symbol: asset.VESTS}
	acct.ToWithdraw = 1_000_000
	acct.Withdrawn = 0
	acct.NextVestingWithdrawal = genesisTime
	_, err := db.ModifyAccount("alice", func(types.Account) types.Account { return acct })
	require.NoError(t, err)

	require.NoError(t, processVestingWithdrawals(db, genesisTime))

	got, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(0), got.VestingShares.Amount)
	require.Equal(t, int64(0), got.ToWithdraw)
	require.Equal(t, int64(0), got.Withdrawn)
	require.Equal(t, chain.MaximumTime, got.NextVestingWithdrawal)
	require.True(t, got.Liquid.Amount > 0)
}

func TestProcessVestingWithdrawalsRoutesToAnotherAccount(t *testing.T) {
	db := state.NewDatabase()
	seedGlobals(db)
	alice := seedAccount(t, db, "alice")
	alice.VestingShares = asset.Asset{Amount: 2_000_000, Symbol: asset.VESTS}
	alice.VestingWithdrawRate = asset.Asset{Amount: 1_000_000, Symbol: asset.VESTS}
	alice.ToWithdraw = 2_000_000
	alice.NextVestingWithdrawal = genesisTime
	_, err := db.ModifyAccount("alice", func(types.Account) types.Account { return alice })
	require.NoError(t, err)
	seedAccount(t, db, "bob")

	db.PutWithdrawVestingRoute(types.WithdrawVestingRoute{
		FromAccount: "alice",
		ToAccount:   "bob",
		PercentBps:  5_000,
		AutoVest:    true,
	})

	require.NoError(t, processVestingWithdrawals(db, genesisTime))

	bob, ok := db.GetAccount("bob")
	require.True(t, ok)
	require.Equal(t, int64(500_000), bob.VestingShares.Amount)

	got, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(1_000_000), got.VestingShares.Amount)
	require.Equal(t, int64(1_000_000), got.Withdrawn)
}

func TestProcessVestingWithdrawalsSkipsAccountsNotDue(t *testing.T) {
	db := state.NewDatabase()
	seedGlobals(db)
	acct := seedAccount(t, db, "alice")
	acct.VestingShares = asset.Asset{Amount: 1_000_000, Symbol: asset.VESTS}
	acct.VestingWithdrawRate = asset.Asset{Amount: 1_000_000, Symbol: asset.VESTS}
	acct.ToWithdraw = 1_000_000
	acct.NextVestingWithdrawal = genesisTime + 1_000
	_, err := db.ModifyAccount("alice", func(types.Account) types.Account { return acct })
	require.NoError(t, err)

	require.NoError(t, processVestingWithdrawals(db, genesisTime))

	got, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(1_000_000), got.VestingShares.Amount)
	require.Equal(t, int64(0), got.Withdrawn)
}

func TestProcessSavingsCompletionsCreditsRecipient(t *testing.T) {
	db := state.NewDatabase()
	seedGlobals(db)
	seedAccount(t, db, "alice")
	seedAccount(t, db, "bob")

	bob, _ := db.GetAccount("bob")
	bob.SavingsWithdrawRequests = 1
	_, err := db.ModifyAccount("bob", func(types.Account) types.Account { return bob })
	require.NoError(t, err)

	require.NoError(t, db.CreateSavingsWithdraw(types.SavingsWithdraw{
		From:      "bob",
		To:        "alice",
		RequestID: 1,
		Amount:    asset.Asset{Amount: 1_000, Symbol: asset.LIQUID},
		Complete:  genesisTime,
	}))

	require.NoError(t, processSavingsCompletions(db, genesisTime))

	alice, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(1_000), alice.Liquid.Amount)

	bobAfter, ok := db.GetAccount("bob")
	require.True(t, ok)
	require.Equal(t, uint8(0), bobAfter.SavingsWithdrawRequests)

	_, _, found := db.GetSavingsWithdraw("bob", 1)
	require.False(t, found)
}

func TestProcessSavingsCompletionsHandlesSelfTransfer(t *testing.T) {
	db := state.NewDatabase()
	seedGlobals(db)
	alice := seedAccount(t, db, "alice")
	alice.SavingsWithdrawRequests = 1
	_, err := db.ModifyAccount("alice", func(types.Account) types.Account { return alice })
	require.NoError(t, err)

	require.NoError(t, db.CreateSavingsWithdraw(types.SavingsWithdraw{
		From:      "alice",
		To:        "alice",
		RequestID: 1,
		Amount:    asset.Asset{Amount: 500, Symbol: asset.LIQUID},
		Complete:  genesisTime,
	}))

	require.NoError(t, processSavingsCompletions(db, genesisTime))

	got, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(500), got.Liquid.Amount)
	require.Equal(t, uint8(0), got.SavingsWithdrawRequests)
}

func TestSettleEscrowDeadlinesRefundsUnratifiedEscrow(t *testing.T) {
	db := state.NewDatabase()
	seedGlobals(db)
	seedAccount(t, db, "alice")

	require.NoError(t, db.CreateEscrow(types.Escrow{
		EscrowID:             1,
		From:                 "alice",
		To:                   "bob",
		Agent:                "carol",
		RatificationDeadline: genesisTime,
		DollarBalance:        asset.Asset{Amount: 100, Symbol: asset.DOLLAR},
		LiquidBalance:        asset.Asset{Amount: 200, Symbol: asset.LIQUID},
		PendingFee:           asset.Asset{Amount: 10, Symbol: asset.LIQUID},
	}))

	require.NoError(t, settleEscrowDeadlines(db, genesisTime))

	alice, ok := db.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, int64(210), alice.Liquid.Amount)
	require.Equal(t, int64(100), alice.Dollar.Amount)

	_, _, found := db.GetEscrow(1)
	require.False(t, found)
}

func TestSettleEscrowDeadlinesLeavesRatifiedEscrowAlone(t *testing.T) {
	db := state.NewDatabase()
	seedGlobals(db)
	seedAccount(t, db, "alice")

	require.NoError(t, db.CreateEscrow(types.Escrow{
		EscrowID:             1,
		From:                 "alice",
		To:                   "bob",
		RatificationDeadline: genesisTime,
		ToApproved:           true,
		AgentApproved:        true,
		DollarBalance:        asset.Asset{Amount: 100, Symbol: asset.DOLLAR},
	}))

	require.NoError(t, settleEscrowDeadlines(db, genesisTime))

	_, _, found := db.GetEscrow(1)
	require.True(t, found)
}

func TestClearNullAccountBurnsBalances(t *testing.T) {
	db := state.NewDatabase()
	seedGlobals(db)
	null := seedAccount(t, db, "null")
	null.Liquid = asset.Asset{Amount: 1_000, Symbol: asset.LIQUID}
	null.Dollar = asset.Asset{Amount: 500, Symbol: asset.DOLLAR}
	_, err := db.ModifyAccount("null", func(types.Account) types.Account { return null })
	require.NoError(t, err)

	beforeSupply := db.Globals.CurrentSupply.Amount
	beforeDollarSupply := db.Globals.CurrentDollarSupply.Amount

	clearNullAccount(db)

	got, ok := db.GetAccount("null")
	require.True(t, ok)
	require.True(t, got.Liquid.IsZero())
	require.True(t, got.Dollar.IsZero())
	require.Equal(t, beforeSupply-1_000, db.Globals.CurrentSupply.Amount)
	require.Equal(t, beforeDollarSupply-500, db.Globals.CurrentDollarSupply.Amount)
}

func TestUpdateFeedsAndSupplySkipsBeforeInterval(t *testing.T) {
	db := state.NewDatabase()
	seedGlobals(db)

	require.NoError(t, updateFeedsAndSupply(db, genesisTime+10))
	require.Equal(t, genesisTime, db.Feed.LastUpdate)
}

func TestUpdateFeedsAndSupplyComputesMedianAndPrintRate(t *testing.T) {
	db := state.NewDatabase()
	seedGlobals(db)

	owners := []string{"w1", "w2", "w3", "w4", "w5", "w6", "w7"}
	db.Schedule.CurrentShuffledWitnesses = owners
	for i, owner := range owners {
		rate, err := asset.NewPrice(
			asset.Asset{Amount: int64(1 + i), Symbol: asset.DOLLAR},
			asset.Asset{Amount: 1, Symbol: asset.LIQUID},
		)
		require.NoError(t, err)
		require.NoError(t, db.CreateWitness(types.Witness{
			Owner:                   owner,
			DollarExchangeRate:      rate,
			LastDollarExchangeUpdate: genesisTime,
			Props: types.WitnessProps{
				AccountCreationFee:  asset.Asset{Amount: int64(1000 + i), Symbol: asset.LIQUID},
				MaximumBlockSize:    131072,
				DollarInterestRate:  0,
				AccountSubsidyLimit: 10,
			},
		}))
	}

	now := genesisTime + chain.FeedUpdateIntervalSeconds
	require.NoError(t, updateFeedsAndSupply(db, now))

	require.Equal(t, now, db.Feed.LastUpdate)
	require.False(t, db.Feed.CurrentMedianHistory.IsNull())
	require.Equal(t, asset.LIQUID, db.Schedule.MedianProps.AccountCreationFee.Symbol)
	require.Equal(t, int64(1003), db.Schedule.MedianProps.AccountCreationFee.Amount)
}

func TestRunExecutesAllStepsInOrder(t *testing.T) {
	db := state.NewDatabase()
	seedGlobals(db)
	seedAccount(t, db, "alice")

	require.NoError(t, Run(db, genesisTime))
}
