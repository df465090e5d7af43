package housekeeping

import (
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/eval/vesting"
)

// processDeferredDeadlines implements step (7): the three request kinds
// that only ever fire off a clock rather than a counter-transaction —
// an unconsumed account-recovery request simply lapses, a
// change-recovery-account request reassigns RecoveryAccount, and a
// decline-voting-rights request strips CanVote and the account's witness
// influence.
func processDeferredDeadlines(db *state.Database, now uint32) error {
	for _, account := range db.AccountRecoveryRequestsDueBy(now) {
		session := db.Begin()
		db.RemoveAccountRecoveryRequest(account)
		session.Commit()
	}

	for _, account := range db.ChangeRecoveryAccountRequestsDueBy(now) {
		req, ok := db.GetChangeRecoveryAccountRequest(account)
		if !ok {
			continue
		}
		acct, err := db.MustGetAccount(account)
		if err != nil {
			return err
		}
		acct.RecoveryAccount = req.RecoveryAccount

		session := db.Begin()
		if _, err := db.ModifyAccount(account, func(types.Account) types.Account { return acct }); err != nil {
			session.Rollback()
			return err
		}
		db.RemoveChangeRecoveryAccountRequest(account)
		session.Commit()
	}

	for _, account := range db.DeclineVotingRightsRequestsDueBy(now) {
		session := db.Begin()
		if err := vesting.ClearWitnessVotes(db, account); err != nil {
			session.Rollback()
			return err
		}
		acct, err := db.MustGetAccount(account)
		if err != nil {
			session.Rollback()
			return err
		}
		acct.CanVote = false
		if _, err := db.ModifyAccount(account, func(types.Account) types.Account { return acct }); err != nil {
			session.Rollback()
			return err
		}
		db.RemoveDeclineVotingRightsRequest(account)
		db.Events.Emit(types.ExpiredAccountNotificationEvent{Account: account})
		session.Commit()
	}

	return nil
}
