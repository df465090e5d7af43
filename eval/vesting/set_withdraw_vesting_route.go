package vesting

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplySetWithdrawVestingRoute implements set_withdraw_vesting_route:
// creating a route with percent 0 is rejected outright; setting an
// existing route's percent to 0 removes it; the sum of an account's
// outgoing percentages may never exceed 100%, nor its route count exceed
// MAX_WITHDRAW_ROUTES.
func ApplySetWithdrawVestingRoute(db *state.Database, ctx *op.Context, tx op.SetWithdrawVestingRoute) error {
	if err := ctx.RequireAuthority(db, tx.FromAccount, authority.Active); err != nil {
		return err
	}
	if !db.AccountExists(tx.ToAccount) {
		return fmt.Errorf("set_withdraw_vesting_route: %w", errs.ErrAccountNotFound)
	}

	_, exists := db.GetWithdrawVestingRoute(tx.FromAccount, tx.ToAccount)
	if !exists && tx.PercentBps == 0 {
		return fmt.Errorf("set_withdraw_vesting_route: %w", errs.ErrOutOfRange)
	}

	routes := db.WithdrawVestingRoutesFrom(tx.FromAccount)
	var total uint32
	routeCount := 0
	for _, r := range routes {
		if r.ToAccount == tx.ToAccount {
			continue
		}
		total += uint32(r.PercentBps)
		routeCount++
	}
	total += uint32(tx.PercentBps)
	if tx.PercentBps > 0 {
		routeCount++
	}
	if total > chain.Percent100 {
		return fmt.Errorf("set_withdraw_vesting_route: %w", errs.ErrOutOfRange)
	}
	if !exists && routeCount > chain.MaxWithdrawRoutes {
		return fmt.Errorf("set_withdraw_vesting_route: %w", errs.ErrOutOfRange)
	}

	session := db.Begin()
	db.PutWithdrawVestingRoute(types.WithdrawVestingRoute{
		FromAccount: tx.FromAccount,
		ToAccount:   tx.ToAccount,
		PercentBps:  tx.PercentBps,
		AutoVest:    tx.AutoVest,
	})
	session.Commit()
	return nil
}
