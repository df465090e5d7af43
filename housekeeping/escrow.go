package housekeeping

import (
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
)

// settleEscrowDeadlines implements step (8): an escrow still sitting in
// Created once its RatificationDeadline passes is treated exactly like an
// explicit rejection — the full balance plus pending fee refunds to From
// and the row is removed.
func settleEscrowDeadlines(db *state.Database, now uint32) error {
	for _, id := range db.EscrowsRatificationDueBy(now) {
		esc, ok := db.Escrows.Get(id)
		if !ok {
			continue
		}
		if esc.Ratified() {
			continue
		}
		from, err := db.MustGetAccount(esc.From)
		if err != nil {
			return err
		}
		if err := from.Credit(esc.DollarBalance); err != nil {
			return err
		}
		if err := from.Credit(esc.LiquidBalance); err != nil {
			return err
		}
		if err := from.Credit(esc.PendingFee); err != nil {
			return err
		}

		session := db.Begin()
		if _, err := db.ModifyAccount(esc.From, func(types.Account) types.Account { return from }); err != nil {
			session.Rollback()
			return err
		}
		if err := db.RemoveEscrow(id); err != nil {
			session.Rollback()
			return err
		}
		session.Commit()
	}
	return nil
}
