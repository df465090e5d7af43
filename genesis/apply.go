package genesis

import (
	"encoding/hex"
	"fmt"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/crypto"
	"github.com/velanet/corechain/reward"
)

// defaultRewardFunds seeds the two built-in funds with the values
// recovered from original_source's ZATTERA_CONTENT_CONSTANT and the
// classic 75%-author/25%-curator content split.
func defaultRewardFunds() map[string]types.RewardFund {
	return map[string]types.RewardFund{
		"post": {
			Name:                   "post",
			ContentConstant:        2_000_000_000_000,
			PercentCurationRewards: 2500,
			PercentContentRewards:  10_000,
			AuthorRewardCurve:      reward.CurveQuadratic,
			CurationRewardCurve:    reward.CurveLinear,
		},
		"comment": {
			Name:                   "comment",
			ContentConstant:        2_000_000_000_000,
			PercentCurationRewards: 2500,
			PercentContentRewards:  10_000,
			AuthorRewardCurve:      reward.CurveQuadratic,
			CurationRewardCurve:    reward.CurveLinear,
		},
	}
}

// Apply seeds a freshly-constructed Database with doc: accounts and their
// authorities and balances, witnesses, the two reward funds (overridden
// by any matching entry in doc.RewardFunds), and the dynamic-global
// singletons' starting totals.
func Apply(db *state.Database, doc *Document) error {
	var totalVestingShares, totalVestingFundLiquid, currentSupply, currentDollarSupply int64

	for _, a := range doc.Accounts {
		owner, err := buildAuthority(a.Owner)
		if err != nil {
			return fmt.Errorf("genesis: account %s owner authority: %w", a.Name, err)
		}
		active, err := buildAuthority(a.Active)
		if err != nil {
			return fmt.Errorf("genesis: account %s active authority: %w", a.Name, err)
		}
		posting, err := buildAuthority(a.Posting)
		if err != nil {
			return fmt.Errorf("genesis: account %s posting authority: %w", a.Name, err)
		}

		account := types.Account{
			Name:                  a.Name,
			MemoKey:                a.MemoKey,
			Liquid:                asset.Asset{Amount: a.LiquidAmount, Symbol: asset.LIQUID},
			Dollar:                asset.Asset{Amount: a.DollarAmount, Symbol: asset.DOLLAR},
			VestingShares:         asset.Asset{Amount: a.VestingSharesAmount, Symbol: asset.VESTS},
			VestingWithdrawRate:   asset.Zero(asset.VESTS),
			NextVestingWithdrawal: 0xFFFFFFFF,
			CanVote:               a.CanVote,
			Created:               doc.InitialTime,
		}
		if err := db.CreateAccount(account); err != nil {
			return fmt.Errorf("genesis: create account %s: %w", a.Name, err)
		}
		if err := db.CreateAccountAuthority(types.AccountAuthority{
			Account:         a.Name,
			Owner:           *owner,
			Active:          *active,
			Posting:         *posting,
			LastOwnerUpdate: doc.InitialTime,
		}); err != nil {
			return fmt.Errorf("genesis: create authority for %s: %w", a.Name, err)
		}

		currentSupply += a.LiquidAmount
		currentDollarSupply += a.DollarAmount
		totalVestingShares += a.VestingSharesAmount
	}
	totalVestingFundLiquid = totalVestingShares / 1000

	for _, w := range doc.Witnesses {
		keyBytes, err := hex.DecodeString(w.SigningKey)
		if err != nil {
			return fmt.Errorf("genesis: witness %s signing key: %w", w.Owner, err)
		}
		signingKey, err := crypto.ParsePublicKey(keyBytes)
		if err != nil {
			return fmt.Errorf("genesis: witness %s signing key: %w", w.Owner, err)
		}
		if err := db.CreateWitness(types.Witness{
			Owner:      w.Owner,
			URL:        w.URL,
			SigningKey: signingKey,
			Props: types.WitnessProps{
				AccountCreationFee:  asset.Asset{Amount: w.AccountCreationFeeAmount, Symbol: asset.LIQUID},
				MaximumBlockSize:    w.MaximumBlockSize,
				DollarInterestRate:  w.DollarInterestRate,
				AccountSubsidyLimit: w.AccountSubsidyLimit,
			},
			Created: doc.InitialTime,
		}); err != nil {
			return fmt.Errorf("genesis: create witness %s: %w", w.Owner, err)
		}
	}

	funds := defaultRewardFunds()
	for _, override := range doc.RewardFunds {
		fund, ok := funds[override.Name]
		if !ok {
			return fmt.Errorf("genesis: unknown reward fund %q", override.Name)
		}
		fund.ContentConstant = override.ContentConstant
		fund.PercentCurationRewards = override.PercentCurationRewards
		fund.PercentContentRewards = override.PercentContentRewards
		fund.AuthorRewardCurve = override.AuthorRewardCurve
		fund.CurationRewardCurve = override.CurationRewardCurve
		funds[override.Name] = fund
	}
	for _, fund := range funds {
		fund.LastUpdate = doc.InitialTime
		if err := db.CreateRewardFund(fund); err != nil {
			return fmt.Errorf("genesis: create reward fund %s: %w", fund.Name, err)
		}
	}

	db.Globals = types.DynamicGlobalProperties{
		HeadBlockNumber:        0,
		HeadBlockTime:          doc.InitialTime,
		CurrentSupply:          asset.Asset{Amount: currentSupply, Symbol: asset.LIQUID},
		CurrentDollarSupply:    asset.Asset{Amount: currentDollarSupply, Symbol: asset.DOLLAR},
		VirtualSupply:          asset.Asset{Amount: currentSupply, Symbol: asset.LIQUID},
		TotalVestingFundLiquid: asset.Asset{Amount: totalVestingFundLiquid, Symbol: asset.LIQUID},
		TotalVestingShares:     asset.Asset{Amount: totalVestingShares, Symbol: asset.VESTS},
		MaximumBlockSize:       131072,
		DollarPrintRate:        chain.Percent100,
		VotePowerReserveRate:   chain.DefaultVotePowerReserveRate,
	}
	db.Schedule = types.WitnessSchedule{}
	db.Feed = types.FeedHistory{LastUpdate: doc.InitialTime}
	return nil
}

func buildAuthority(entry AuthorityEntry) (*authority.Authority, error) {
	auth := authority.New(entry.Threshold)
	for _, m := range entry.Members {
		switch {
		case m.Account != "":
			auth.Accounts[m.Account] = m.Weight
		case m.Key != "":
			keyBytes, err := hex.DecodeString(m.Key)
			if err != nil {
				return nil, fmt.Errorf("parse key %q: %w", m.Key, err)
			}
			pub, err := crypto.ParsePublicKey(keyBytes)
			if err != nil {
				return nil, fmt.Errorf("parse key %q: %w", m.Key, err)
			}
			auth.Keys[pub] = m.Weight
		default:
			return nil, fmt.Errorf("authority member has neither account nor key")
		}
	}
	return auth, nil
}
