package market

import (
	"fmt"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyFeedPublish implements feed_publish: a witness records its own
// DOLLAR/LIQUID exchange-rate opinion. The rolling median across all
// witnesses' feeds is recomputed by housekeeping, not here.
func ApplyFeedPublish(db *state.Database, ctx *op.Context, tx op.FeedPublish) error {
	if err := ctx.RequireAuthority(db, tx.Publisher, authority.Active); err != nil {
		return err
	}
	if tx.ExchangeRate.Base.Symbol != asset.DOLLAR || tx.ExchangeRate.Quote.Symbol != asset.LIQUID {
		return fmt.Errorf("feed_publish: %w", errs.ErrWrongSymbol)
	}
	if !db.WitnessExists(tx.Publisher) {
		return fmt.Errorf("feed_publish: %w", errs.ErrWitnessNotFound)
	}

	session := db.Begin()
	if _, err := db.ModifyWitness(tx.Publisher, func(w types.Witness) types.Witness {
		w.DollarExchangeRate = tx.ExchangeRate
		w.LastDollarExchangeUpdate = ctx.HeadBlockTime
		return w
	}); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
