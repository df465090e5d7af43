// Package escrow implements the four-operation escrow state machine of
// spec §4.6: Created -> Ratified -> (Released | Disputed).
package escrow

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyEscrowTransfer implements escrow_transfer: From locks DollarAmount,
// LiquidAmount and Fee out of its balance and opens a new Created escrow
// awaiting To and Agent's ratification.
func ApplyEscrowTransfer(db *state.Database, ctx *op.Context, tx op.EscrowTransfer) error {
	if err := ctx.RequireAuthority(db, tx.From, authority.Active); err != nil {
		return err
	}
	if tx.RatificationDeadline <= ctx.HeadBlockTime || tx.Expiration <= tx.RatificationDeadline {
		return fmt.Errorf("escrow_transfer: %w", errs.ErrOutOfRange)
	}
	if !db.AccountExists(tx.To) || !db.AccountExists(tx.Agent) {
		return fmt.Errorf("escrow_transfer: %w", errs.ErrAccountNotFound)
	}
	if _, _, ok := db.GetEscrow(tx.EscrowID); ok {
		return fmt.Errorf("escrow_transfer: %w", errs.ErrOrderExists)
	}

	from, err := db.MustGetAccount(tx.From)
	if err != nil {
		return fmt.Errorf("escrow_transfer: %w", errs.ErrAccountNotFound)
	}
	if err := from.Debit(tx.DollarAmount); err != nil {
		return fmt.Errorf("escrow_transfer: %w", errs.ErrInsufficientFunds)
	}
	if err := from.Debit(tx.LiquidAmount); err != nil {
		return fmt.Errorf("escrow_transfer: %w", errs.ErrInsufficientFunds)
	}
	if err := from.Debit(tx.Fee); err != nil {
		return fmt.Errorf("escrow_transfer: %w", errs.ErrInsufficientFunds)
	}

	session := db.Begin()
	if _, err := db.ModifyAccount(tx.From, func(types.Account) types.Account { return from }); err != nil {
		session.Rollback()
		return err
	}
	if err := db.CreateEscrow(types.Escrow{
		EscrowID:             tx.EscrowID,
		From:                 tx.From,
		To:                   tx.To,
		Agent:                tx.Agent,
		RatificationDeadline: tx.RatificationDeadline,
		EscrowExpiration:     tx.Expiration,
		DollarBalance:        tx.DollarAmount,
		LiquidBalance:        tx.LiquidAmount,
		PendingFee:           tx.Fee,
	}); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
