package housekeeping

import (
	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
)

type routeCredit struct {
	account string
	vests   asset.Asset
	liquid  asset.Asset
}

// processVestingWithdrawals implements step (5): one weekly tick per
// account whose NextVestingWithdrawal has arrived, following the four
// rules in spec's withdraw_vesting prose — shortfall-to-owner, per-route
// liquid or auto-vest split, then the withdrawn counter advancing the
// plan (or closing it once it reaches to_withdraw).
func processVestingWithdrawals(db *state.Database, now uint32) error {
	for _, name := range db.AccountsWithVestingWithdrawalDueBy(now) {
		acct, err := db.MustGetAccount(name)
		if err != nil {
			return err
		}
		remaining := acct.ToWithdraw - acct.Withdrawn
		toWithdraw := acct.VestingWithdrawRate.Amount
		if toWithdraw > remaining {
			toWithdraw = remaining
		}
		if toWithdraw <= 0 {
			continue
		}

		vestingPrice := db.Globals.VestingSharePrice()
		routes := db.WithdrawVestingRoutesFrom(name)

		var credits []routeCredit
		var routedAmount, autoVestAmount int64
		for _, r := range routes {
			amt := toWithdraw * int64(r.PercentBps) / chain.Percent100
			if amt <= 0 {
				continue
			}
			routedAmount += amt
			if r.AutoVest {
				autoVestAmount += amt
				credits = append(credits, routeCredit{account: r.ToAccount, vests: asset.Asset{Amount: amt, Symbol: asset.VESTS}})
				continue
			}
			liquidAmt, err := vestingPrice.Reciprocal(asset.Asset{Amount: amt, Symbol: asset.VESTS})
			if err != nil {
				return err
			}
			credits = append(credits, routeCredit{account: r.ToAccount, liquid: liquidAmt})
		}

		ownerVests := toWithdraw - routedAmount
		ownerLiquid := asset.Zero(asset.LIQUID)
		if ownerVests > 0 {
			ownerLiquid, err = vestingPrice.Reciprocal(asset.Asset{Amount: ownerVests, Symbol: asset.VESTS})
			if err != nil {
				return err
			}
		}

		newWithdrawn := acct.Withdrawn + toWithdraw
		done := newWithdrawn >= acct.ToWithdraw
		burnedVests := toWithdraw - autoVestAmount
		totalLiquidMinted := ownerLiquid.Amount

		updatedOwner := acct
		updatedOwner.VestingShares, err = updatedOwner.VestingShares.Sub(asset.Asset{Amount: toWithdraw, Symbol: asset.VESTS})
		if err != nil {
			return err
		}
		if err := updatedOwner.Credit(ownerLiquid); err != nil {
			return err
		}
		updatedOwner.Withdrawn = newWithdrawn
		if done {
			updatedOwner.NextVestingWithdrawal = chain.MaximumTime
			updatedOwner.VestingWithdrawRate = asset.Zero(asset.VESTS)
			updatedOwner.ToWithdraw = 0
			updatedOwner.Withdrawn = 0
		} else {
			updatedOwner.NextVestingWithdrawal = now + chain.VestingWithdrawIntervalSeconds
		}

		session := db.Begin()
		if _, err := db.ModifyAccount(name, func(types.Account) types.Account { return updatedOwner }); err != nil {
			session.Rollback()
			return err
		}
		for _, c := range credits {
			dest, err := db.MustGetAccount(c.account)
			if err != nil {
				session.Rollback()
				return err
			}
			if c.vests.Amount > 0 {
				dest.VestingShares, err = dest.VestingShares.Add(c.vests)
				if err != nil {
					session.Rollback()
					return err
				}
			}
			if c.liquid.Amount > 0 {
				if err := dest.Credit(c.liquid); err != nil {
					session.Rollback()
					return err
				}
				totalLiquidMinted += c.liquid.Amount
			}
			if _, err := db.ModifyAccount(c.account, func(types.Account) types.Account { return dest }); err != nil {
				session.Rollback()
				return err
			}
		}
		db.Globals.TotalVestingShares, err = db.Globals.TotalVestingShares.Sub(asset.Asset{Amount: burnedVests, Symbol: asset.VESTS})
		if err != nil {
			session.Rollback()
			return err
		}
		db.Globals.TotalVestingFundLiquid, err = db.Globals.TotalVestingFundLiquid.Sub(asset.Asset{Amount: totalLiquidMinted, Symbol: asset.LIQUID})
		if err != nil {
			session.Rollback()
			return err
		}
		db.Events.Emit(types.FillVestingWithdrawEvent{
			From:      name,
			To:        name,
			Withdrawn: asset.Asset{Amount: toWithdraw, Symbol: asset.VESTS},
			Deposited: ownerLiquid,
		})
		session.Commit()
	}
	return nil
}
