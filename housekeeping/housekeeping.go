// Package housekeeping implements the deterministic end-of-block tasks of
// spec §5: everything that fires off a clock rather than a signed
// transaction. Run drives the eleven steps in the exact order the core
// requires, the same precompute-then-install discipline every eval
// package follows, just swept over every due row instead of one
// transaction's worth of state.
package housekeeping

import (
	"time"

	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/observability/metrics"
)

// Run executes every housekeeping step against now, in consensus order.
// Each step is independently transactional; a failure here is the
// "consensus-fatal bug" spec §7 describes, since housekeeping never
// rejects — it is infallible by construction, not by recovery.
func Run(db *state.Database, now uint32) error {
	steps := []struct {
		name string
		run  func(*state.Database, uint32) error
	}{
		{"expire_limit_orders", expireLimitOrders},
		{"settle_delegation_returns", settleDelegationReturns},
		{"pay_cashouts", payCashouts},
		{"fire_convert_requests", fireConvertRequests},
		{"process_vesting_withdrawals", processVestingWithdrawals},
		{"process_savings_completions", processSavingsCompletions},
		{"process_deferred_deadlines", processDeferredDeadlines},
		{"settle_escrow_deadlines", settleEscrowDeadlines},
		{"pay_dollar_interest", payDollarInterest},
		{"update_feeds_and_supply", updateFeedsAndSupply},
	}

	m := metrics.Core()
	for _, s := range steps {
		started := time.Now()
		err := s.run(db, now)
		m.ObserveHousekeepingStep(s.name, time.Since(started).Seconds())
		if err != nil {
			return err
		}
	}
	clearNullAccount(db)
	return nil
}
