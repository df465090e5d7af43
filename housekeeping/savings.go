package housekeeping

import (
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
)

// processSavingsCompletions implements step (6): a matured
// transfer_from_savings credits its recipient's liquid balance and
// decrements the sender's outstanding-request counter, the same credit
// cancel_transfer_from_savings would issue back to the sender, just routed
// to To instead.
func processSavingsCompletions(db *state.Database, now uint32) error {
	for _, id := range db.SavingsWithdrawsCompleteBy(now) {
		w, ok := db.SavingsWithdraws.Get(id)
		if !ok {
			continue
		}
		recipient, err := db.MustGetAccount(w.To)
		if err != nil {
			return err
		}
		if err := recipient.Credit(w.Amount); err != nil {
			return err
		}

		var sender types.Account
		if w.From == w.To {
			sender = recipient
		} else {
			sender, err = db.MustGetAccount(w.From)
			if err != nil {
				return err
			}
		}
		if sender.SavingsWithdrawRequests > 0 {
			sender.SavingsWithdrawRequests--
		}
		if w.From == w.To {
			recipient = sender
		}

		session := db.Begin()
		if _, err := db.ModifyAccount(w.To, func(types.Account) types.Account { return recipient }); err != nil {
			session.Rollback()
			return err
		}
		if w.From != w.To {
			if _, err := db.ModifyAccount(w.From, func(types.Account) types.Account { return sender }); err != nil {
				session.Rollback()
				return err
			}
		}
		if err := db.RemoveSavingsWithdraw(id); err != nil {
			session.Rollback()
			return err
		}
		db.Events.Emit(types.FillTransferFromSavingsEvent{
			From:      w.From,
			To:        w.To,
			Amount:    w.Amount,
			RequestID: w.RequestID,
			Memo:      w.Memo,
		})
		session.Commit()
	}
	return nil
}
