package housekeeping

import (
	"github.com/velanet/corechain/acctname"
	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
)

// clearNullAccount implements step (11): anything claim_account or a
// transfer routed NULL_ACCOUNT this block is now actually destroyed —
// the balance is zeroed and the matching amount leaves total supply,
// completing the burn that crediting the null account only staged.
func clearNullAccount(db *state.Database) {
	acct, ok := db.GetAccount(acctname.NullAccount)
	if !ok {
		return
	}
	if acct.Liquid.IsZero() && acct.Dollar.IsZero() {
		return
	}

	session := db.Begin()
	if acct.Liquid.Amount > 0 {
		db.Globals.CurrentSupply, _ = db.Globals.CurrentSupply.Sub(acct.Liquid)
		acct.Liquid = asset.Zero(asset.LIQUID)
	}
	if acct.Dollar.Amount > 0 {
		db.Globals.CurrentDollarSupply, _ = db.Globals.CurrentDollarSupply.Sub(acct.Dollar)
		acct.Dollar = asset.Zero(asset.DOLLAR)
	}
	db.ModifyAccount(acctname.NullAccount, func(types.Account) types.Account { return acct })
	session.Commit()
}
