package housekeeping

import (
	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
)

// interestDue settles dollarSeconds/lastUpdate up through now against
// balance, then returns the interest owed since lastPayment (zero unless
// DollarMinCompoundingIntervalSeconds has elapsed), along with the fresh
// seconds/update/payment fields to store back.
func interestDue(balance int64, dollarSeconds int64, lastUpdate, lastPayment, now uint32, rateBps uint16) (interest, newSeconds int64, newUpdate, newPayment uint32) {
	elapsed := now - lastUpdate
	accrued := dollarSeconds + balance*int64(elapsed)
	if now-lastPayment < chain.DollarMinCompoundingIntervalSeconds || rateBps == 0 || accrued <= 0 {
		return 0, accrued, now, lastPayment
	}
	interest = accrued * int64(rateBps) / (int64(chain.Percent100) * chain.SecondsPerYear)
	return interest, 0, now, now
}

// payDollarInterest implements step (9): every account's DOLLAR holding
// (liquid and savings, tracked separately since savings compounds against
// its own seconds counter) earns interest at the median witness-proposed
// rate once per DOLLAR_MIN_COMPOUNDING_INTERVAL_SECONDS, following the
// dollar_seconds accrual original_source uses instead of a per-block
// prorated rate.
func payDollarInterest(db *state.Database, now uint32) error {
	rate := db.Schedule.MedianProps.DollarInterestRate
	for _, name := range db.AllAccountNames() {
		acct, err := db.MustGetAccount(name)
		if err != nil {
			return err
		}

		liquidInterest, newLiquidSeconds, newLiquidUpdate, newLiquidPayment :=
			interestDue(acct.Dollar.Amount, acct.DollarSeconds, acct.DollarSecondsLastUpdate, acct.LastInterestPayment, now, rate)
		savingsInterest, newSavingsSeconds, newSavingsUpdate, newSavingsPayment :=
			interestDue(acct.SavingsDollar.Amount, acct.SavingsDollarSeconds, acct.SavingsDollarSecondsLast, acct.SavingsLastInterestPayment, now, rate)

		if liquidInterest == 0 && savingsInterest == 0 &&
			newLiquidSeconds == acct.DollarSeconds && newSavingsSeconds == acct.SavingsDollarSeconds {
			continue
		}

		updated := acct
		updated.DollarSeconds = newLiquidSeconds
		updated.DollarSecondsLastUpdate = newLiquidUpdate
		updated.LastInterestPayment = newLiquidPayment
		updated.SavingsDollarSeconds = newSavingsSeconds
		updated.SavingsDollarSecondsLast = newSavingsUpdate
		updated.SavingsLastInterestPayment = newSavingsPayment

		var totalInterest int64
		if liquidInterest > 0 {
			if err := updated.Credit(asset.Asset{Amount: liquidInterest, Symbol: asset.DOLLAR}); err != nil {
				return err
			}
			totalInterest += liquidInterest
			updated.DollarSeconds = 0
		}
		if savingsInterest > 0 {
			updated.SavingsDollar, err = updated.SavingsDollar.Add(asset.Asset{Amount: savingsInterest, Symbol: asset.DOLLAR})
			if err != nil {
				return err
			}
			totalInterest += savingsInterest
			updated.SavingsDollarSeconds = 0
		}

		session := db.Begin()
		if _, err := db.ModifyAccount(name, func(types.Account) types.Account { return updated }); err != nil {
			session.Rollback()
			return err
		}
		if totalInterest > 0 {
			db.Globals.CurrentDollarSupply, err = db.Globals.CurrentDollarSupply.Add(asset.Asset{Amount: totalInterest, Symbol: asset.DOLLAR})
			if err != nil {
				session.Rollback()
				return err
			}
			db.Events.Emit(types.InterestEvent{
				Owner:    name,
				Interest: asset.Asset{Amount: totalInterest, Symbol: asset.DOLLAR},
			})
		}
		session.Commit()
	}
	return nil
}
