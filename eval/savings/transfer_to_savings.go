// Package savings implements the transfer_to_savings,
// transfer_from_savings and cancel_transfer_from_savings evaluators of
// spec §4.7: a time-locked holding balance meant to blunt the blast
// radius of a compromised active key.
package savings

import (
	"fmt"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyTransferToSavings implements transfer_to_savings: funds move
// immediately from the liquid/dollar balance into the matching savings
// balance, no delay required going in.
func ApplyTransferToSavings(db *state.Database, ctx *op.Context, tx op.TransferToSavings) error {
	if err := ctx.RequireAuthority(db, tx.From, authority.Active); err != nil {
		return err
	}
	if tx.Amount.Sign() <= 0 {
		return fmt.Errorf("transfer_to_savings: %w", errs.ErrOutOfRange)
	}
	if !db.AccountExists(tx.To) {
		return fmt.Errorf("transfer_to_savings: %w", errs.ErrAccountNotFound)
	}

	from, err := db.MustGetAccount(tx.From)
	if err != nil {
		return fmt.Errorf("transfer_to_savings: %w", errs.ErrAccountNotFound)
	}
	if err := from.Debit(tx.Amount); err != nil {
		return fmt.Errorf("transfer_to_savings: %w", errs.ErrInsufficientFunds)
	}

	if tx.From == tx.To {
		if err := creditSavings(&from, tx.Amount); err != nil {
			return fmt.Errorf("transfer_to_savings: %w", err)
		}
		session := db.Begin()
		if _, err := db.ModifyAccount(tx.From, func(types.Account) types.Account { return from }); err != nil {
			session.Rollback()
			return err
		}
		session.Commit()
		return nil
	}

	to, err := db.MustGetAccount(tx.To)
	if err != nil {
		return fmt.Errorf("transfer_to_savings: %w", errs.ErrAccountNotFound)
	}
	if err := creditSavings(&to, tx.Amount); err != nil {
		return fmt.Errorf("transfer_to_savings: %w", err)
	}

	session := db.Begin()
	if _, err := db.ModifyAccount(tx.From, func(types.Account) types.Account { return from }); err != nil {
		session.Rollback()
		return err
	}
	if _, err := db.ModifyAccount(tx.To, func(types.Account) types.Account { return to }); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}

func creditSavings(a *types.Account, amount asset.Asset) error {
	switch amount.Symbol {
	case asset.LIQUID:
		sum, err := a.SavingsLiquid.Add(amount)
		if err != nil {
			return err
		}
		a.SavingsLiquid = sum
	case asset.DOLLAR:
		sum, err := a.SavingsDollar.Add(amount)
		if err != nil {
			return err
		}
		a.SavingsDollar = sum
	default:
		return fmt.Errorf("savings: symbol %s not transferable", amount.Symbol)
	}
	return nil
}
