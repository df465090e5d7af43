package savings

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

// ApplyTransferFromSavings implements transfer_from_savings: the amount
// is debited from the savings balance immediately and a
// SavingsWithdraw matures SAVINGS_WITHDRAW_TIME later, when housekeeping
// credits To's liquid/dollar balance.
func ApplyTransferFromSavings(db *state.Database, ctx *op.Context, tx op.TransferFromSavings) error {
	if err := ctx.RequireAuthority(db, tx.From, authority.Active); err != nil {
		return err
	}
	if tx.Amount.Sign() <= 0 {
		return fmt.Errorf("transfer_from_savings: %w", errs.ErrOutOfRange)
	}
	if !db.AccountExists(tx.To) {
		return fmt.Errorf("transfer_from_savings: %w", errs.ErrAccountNotFound)
	}
	if _, _, ok := db.GetSavingsWithdraw(tx.From, tx.RequestID); ok {
		return fmt.Errorf("transfer_from_savings: %w", errs.ErrOrderExists)
	}

	from, err := db.MustGetAccount(tx.From)
	if err != nil {
		return fmt.Errorf("transfer_from_savings: %w", errs.ErrAccountNotFound)
	}
	if from.SavingsWithdrawRequests >= chain.SavingsWithdrawRequestLimit {
		return fmt.Errorf("transfer_from_savings: %w", errs.ErrOutOfRange)
	}
	if err := debitSavings(&from, tx.Amount); err != nil {
		return fmt.Errorf("transfer_from_savings: %w", errs.ErrInsufficientFunds)
	}
	from.SavingsWithdrawRequests++

	session := db.Begin()
	if _, err := db.ModifyAccount(tx.From, func(types.Account) types.Account { return from }); err != nil {
		session.Rollback()
		return err
	}
	if err := db.CreateSavingsWithdraw(types.SavingsWithdraw{
		From:      tx.From,
		To:        tx.To,
		RequestID: tx.RequestID,
		Amount:    tx.Amount,
		Memo:      tx.Memo,
		Complete:  ctx.HeadBlockTime + chain.SavingsWithdrawTimeSeconds,
	}); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}

func debitSavings(a *types.Account, amount asset.Asset) error {
	switch amount.Symbol {
	case asset.LIQUID:
		if a.SavingsLiquid.LessThan(amount) {
			return fmt.Errorf("savings: insufficient LIQUID savings balance")
		}
		diff, err := a.SavingsLiquid.Sub(amount)
		if err != nil {
			return err
		}
		a.SavingsLiquid = diff
	case asset.DOLLAR:
		if a.SavingsDollar.LessThan(amount) {
			return fmt.Errorf("savings: insufficient DOLLAR savings balance")
		}
		diff, err := a.SavingsDollar.Sub(amount)
		if err != nil {
			return err
		}
		a.SavingsDollar = diff
	default:
		return fmt.Errorf("savings: symbol %s not transferable", amount.Symbol)
	}
	return nil
}
