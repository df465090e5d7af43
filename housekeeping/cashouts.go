package housekeeping

import (
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/reward"
)

// payCashouts implements step (3): every comment whose CashoutTime has
// arrived settles through the reward engine, which itself decides between
// the zero-net-rshares freeze path and a full distribution.
func payCashouts(db *state.Database, now uint32) error {
	for _, id := range db.CommentsDueForCashoutBy(now) {
		if err := reward.CashoutComment(db, now, id); err != nil {
			return err
		}
	}
	return nil
}
