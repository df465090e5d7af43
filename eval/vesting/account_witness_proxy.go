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

// witnessVoteDelta holds one account's own vesting weight plus the
// already-proxied weight it has accumulated at each recursion depth, the
// quantity adjustProxiedWitnessVotes propagates one hop further away (or,
// once the chain terminates, applies to witness vote tallies directly).
type witnessVoteDelta [types.MaxProxyDepth + 1]int64

func accountVoteDelta(a types.Account, negate bool) witnessVoteDelta {
	var d witnessVoteDelta
	d[0] = a.VestingShares.Amount
	for i := 0; i < types.MaxProxyDepth; i++ {
		d[i+1] = a.ProxiedVSFVotes[i]
	}
	if negate {
		for i := range d {
			d[i] = -d[i]
		}
	}
	return d
}

func sumDelta(d witnessVoteDelta) int64 {
	var total int64
	for _, v := range d {
		total += v
	}
	return total
}

// adjustProxiedWitnessVotes walks the proxy chain rooted at account,
// crediting delta into each intermediate proxy's ProxiedVSFVotes, and once
// the chain terminates at an empty proxy, folds the accumulated total into
// that account's own directly-voted witnesses.
func adjustProxiedWitnessVotes(db *state.Database, account types.Account, delta witnessVoteDelta, depth int) error {
	if account.Proxy != "" {
		if depth >= chain.MaxProxyDepth {
			return nil
		}
		proxy, err := db.MustGetAccount(account.Proxy)
		if err != nil {
			return err
		}
		updated := proxy
		for i := chain.MaxProxyDepth - 1; i >= 0; i-- {
			updated.ProxiedVSFVotes[i] += delta[i]
		}
		if _, err := db.ModifyAccount(proxy.Name, func(types.Account) types.Account { return updated }); err != nil {
			return err
		}
		return adjustProxiedWitnessVotes(db, updated, delta, depth+1)
	}
	return adjustWitnessVotes(db, account, sumDelta(delta))
}

func adjustWitnessVotes(db *state.Database, account types.Account, delta int64) error {
	if delta == 0 {
		return nil
	}
	for _, w := range account.WitnessVotes {
		if _, err := db.ModifyWitness(w, func(wt types.Witness) types.Witness {
			wt.Votes += delta
			return wt
		}); err != nil {
			return err
		}
	}
	return nil
}

// proxyChainLength follows proxy links starting at name, returning the
// number of hops to reach an empty proxy, or an error if it would revisit
// an account (a cycle) or exceed MAX_PROXY_DEPTH.
func proxyChainLength(db *state.Database, name string) (int, error) {
	seen := map[string]bool{name: true}
	current := name
	for depth := 0; depth < chain.MaxProxyDepth+1; depth++ {
		acct, ok := db.GetAccount(current)
		if !ok || acct.Proxy == "" {
			return depth, nil
		}
		if seen[acct.Proxy] {
			return 0, fmt.Errorf("account_witness_proxy: %w", errs.ErrOutOfRange)
		}
		seen[acct.Proxy] = true
		current = acct.Proxy
	}
	return 0, fmt.Errorf("account_witness_proxy: %w", errs.ErrOutOfRange)
}

// ApplyAccountWitnessProxy implements account_witness_proxy: removes the account's current
// proxied weight from its existing proxy chain, installs the new proxy
// (rejecting a chain that would revisit this account or exceed
// MAX_PROXY_DEPTH), clears the account's direct witness votes, then
// re-adds the (now negated-back) deltas to the new chain.
func ApplyAccountWitnessProxy(db *state.Database, ctx *op.Context, tx op.AccountWitnessProxy) error {
	if err := ctx.RequireAuthority(db, tx.Account, authority.Active); err != nil {
		return err
	}
	acct, err := db.MustGetAccount(tx.Account)
	if err != nil {
		return fmt.Errorf("account_witness_proxy: %w", errs.ErrAccountNotFound)
	}
	if tx.Proxy == acct.Proxy {
		return fmt.Errorf("account_witness_proxy: %w", errs.ErrOutOfRange)
	}
	if tx.Proxy != "" {
		if !db.AccountExists(tx.Proxy) {
			return fmt.Errorf("account_witness_proxy: %w", errs.ErrAccountNotFound)
		}
		if tx.Proxy == tx.Account {
			return fmt.Errorf("account_witness_proxy: %w", errs.ErrOutOfRange)
		}
		depth, err := proxyChainLength(db, tx.Proxy)
		if err != nil {
			return err
		}
		seen := map[string]bool{tx.Account: true}
		for name, d := tx.Proxy, 0; d <= depth; d++ {
			if seen[name] {
				return fmt.Errorf("account_witness_proxy: %w", errs.ErrOutOfRange)
			}
			seen[name] = true
			next, ok := db.GetAccount(name)
			if !ok || next.Proxy == "" {
				break
			}
			name = next.Proxy
		}
	}

	session := db.Begin()
	if acct.Proxy != "" {
		if err := adjustProxiedWitnessVotes(db, acct, accountVoteDelta(acct, true), 0); err != nil {
			session.Rollback()
			return err
		}
	} else {
		if err := adjustWitnessVotes(db, acct, -sumDelta(accountVoteDelta(acct, false))); err != nil {
			session.Rollback()
			return err
		}
	}

	updated := acct
	updated.Proxy = tx.Proxy
	updated.WitnessVotes = nil
	if _, err := db.ModifyAccount(tx.Account, func(types.Account) types.Account { return updated }); err != nil {
		session.Rollback()
		return err
	}

	if tx.Proxy != "" {
		if err := adjustProxiedWitnessVotes(db, updated, accountVoteDelta(updated, false), 0); err != nil {
			session.Rollback()
			return err
		}
	}
	session.Commit()
	return nil
}

// ClearWitnessVotes strips an account's witness influence entirely: removes
// its proxied weight from its proxy chain (or its own direct votes'
// tallies), then blanks both Proxy and WitnessVotes. Housekeeping calls
// this when a decline_voting_rights request takes effect; it is the same
// teardown account_witness_proxy does when installing an empty proxy, just
// without a new chain to re-add weight to afterward.
func ClearWitnessVotes(db *state.Database, name string) error {
	acct, err := db.MustGetAccount(name)
	if err != nil {
		return err
	}
	if acct.Proxy != "" {
		if err := adjustProxiedWitnessVotes(db, acct, accountVoteDelta(acct, true), 0); err != nil {
			return err
		}
	} else {
		if err := adjustWitnessVotes(db, acct, -sumDelta(accountVoteDelta(acct, false))); err != nil {
			return err
		}
	}
	updated := acct
	updated.Proxy = ""
	updated.WitnessVotes = nil
	_, err = db.ModifyAccount(name, func(types.Account) types.Account { return updated })
	return err
}
