package housekeeping

import (
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
)

// settleDelegationReturns implements step (2): a decreased or removed
// delegation withholds the delta from the delegator until its
// VestingDelegationExpiration matures, at which point it is finally
// subtracted from DelegatedVestingShares (freeing it up again) and the
// row is removed.
func settleDelegationReturns(db *state.Database, now uint32) error {
	for _, id := range db.VestingDelegationExpirationsDueBy(now) {
		exp, ok := db.VestingDelegationExpirations.Get(id)
		if !ok {
			continue
		}
		delegator, err := db.MustGetAccount(exp.Delegator)
		if err != nil {
			return err
		}
		remaining, err := delegator.DelegatedVestingShares.Sub(exp.VestingShares)
		if err != nil {
			return err
		}
		delegator.DelegatedVestingShares = remaining

		session := db.Begin()
		if _, err := db.ModifyAccount(exp.Delegator, func(types.Account) types.Account { return delegator }); err != nil {
			session.Rollback()
			return err
		}
		if err := db.VestingDelegationExpirations.Remove(id); err != nil {
			session.Rollback()
			return err
		}
		db.Events.Emit(types.ReturnVestingDelegationEvent{
			Account:       exp.Delegator,
			VestingShares: exp.VestingShares,
		})
		session.Commit()
	}
	return nil
}
