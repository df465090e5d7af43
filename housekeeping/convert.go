package housekeeping

import (
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
)

// fireConvertRequests implements step (4): a matured ConvertRequest pays
// out at whatever the feed median happens to be at settlement time, not at
// the rate in force when convert was submitted — the delay exists
// precisely so conversions can't front-run a feed move.
func fireConvertRequests(db *state.Database, now uint32) error {
	for _, id := range db.ConvertRequestsDueBy(now) {
		req, ok := db.ConvertRequests.Get(id)
		if !ok {
			continue
		}
		if db.Feed.CurrentMedianHistory.IsNull() {
			continue
		}
		amountOut, err := db.Feed.CurrentMedianHistory.Mul(req.Amount)
		if err != nil {
			return err
		}
		owner, err := db.MustGetAccount(req.Owner)
		if err != nil {
			return err
		}
		if err := owner.Credit(amountOut); err != nil {
			return err
		}

		session := db.Begin()
		if _, err := db.ModifyAccount(req.Owner, func(types.Account) types.Account { return owner }); err != nil {
			session.Rollback()
			return err
		}
		if err := db.RemoveConvertRequest(id); err != nil {
			session.Rollback()
			return err
		}
		db.Globals.CurrentDollarSupply, _ = db.Globals.CurrentDollarSupply.Sub(req.Amount)
		db.Globals.CurrentSupply, _ = db.Globals.CurrentSupply.Add(amountOut)
		db.Events.Emit(types.ConvertEvent{
			Owner:     req.Owner,
			RequestID: req.RequestID,
			AmountIn:  req.Amount,
			AmountOut: amountOut,
		})
		session.Commit()
	}
	return nil
}
