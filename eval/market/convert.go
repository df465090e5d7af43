package market

import (
	"fmt"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/chain"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyConvert implements convert: DOLLAR is burned immediately and a
// ConvertRequest is filed to mature CONVERSION_DELAY later, when
// housekeeping settles it at the then-current feed price.
func ApplyConvert(db *state.Database, ctx *op.Context, tx op.Convert) error {
	if err := ctx.RequireAuthority(db, tx.Owner, authority.Active); err != nil {
		return err
	}
	if tx.Amount.Symbol != asset.DOLLAR {
		return fmt.Errorf("convert: %w", errs.ErrWrongSymbol)
	}
	if tx.Amount.Sign() <= 0 {
		return fmt.Errorf("convert: %w", errs.ErrOutOfRange)
	}
	if db.Feed.CurrentMedianHistory.IsNull() {
		return fmt.Errorf("convert: %w", errs.ErrOutOfRange)
	}
	if _, _, ok := db.GetConvertRequest(tx.Owner, tx.RequestID); ok {
		return fmt.Errorf("convert: %w", errs.ErrOrderExists)
	}

	owner, err := db.MustGetAccount(tx.Owner)
	if err != nil {
		return fmt.Errorf("convert: %w", errs.ErrAccountNotFound)
	}
	if err := owner.Debit(tx.Amount); err != nil {
		return fmt.Errorf("convert: %w", errs.ErrInsufficientFunds)
	}

	session := db.Begin()
	if _, err := db.ModifyAccount(tx.Owner, func(types.Account) types.Account { return owner }); err != nil {
		session.Rollback()
		return err
	}
	if err := db.CreateConvertRequest(types.ConvertRequest{
		Owner:          tx.Owner,
		RequestID:      tx.RequestID,
		Amount:         tx.Amount,
		ConversionDate: ctx.HeadBlockTime + chain.ConversionDelaySeconds,
	}); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
