package escrow

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyEscrowRelease implements escrow_release. Before ratification, only
// From may release, and only back to From (cancelling the pending
// escrow). Once ratified, From may release its share to To (completing
// the trade) or To may release back to From (a voluntary refund); once
// disputed, only Agent may release, to either party, in any split up to
// the remaining balance.
func ApplyEscrowRelease(db *state.Database, ctx *op.Context, tx op.EscrowRelease) error {
	if tx.Receiver != tx.From && tx.Receiver != tx.To {
		return fmt.Errorf("escrow_release: %w", errs.ErrOutOfRange)
	}
	if err := ctx.RequireAuthority(db, tx.Who, authority.Active); err != nil {
		return err
	}
	esc, id, ok := db.GetEscrow(tx.EscrowID)
	if !ok || esc.From != tx.From || esc.To != tx.To || esc.Agent != tx.Agent {
		return fmt.Errorf("escrow_release: %w", errs.ErrEscrowNotFound)
	}

	switch {
	case esc.Disputed:
		if tx.Who != tx.Agent {
			return fmt.Errorf("escrow_release: %w", errs.ErrEscrowDisputed)
		}
	case esc.Ratified():
		if tx.Who != tx.From && tx.Who != tx.To {
			return fmt.Errorf("escrow_release: %w", errs.ErrOutOfRange)
		}
		if tx.Who == tx.From && tx.Receiver != tx.To {
			return fmt.Errorf("escrow_release: %w", errs.ErrOutOfRange)
		}
		if tx.Who == tx.To && tx.Receiver != tx.From {
			return fmt.Errorf("escrow_release: %w", errs.ErrOutOfRange)
		}
	default:
		if tx.Who != tx.From || tx.Receiver != tx.From {
			return fmt.Errorf("escrow_release: %w", errs.ErrEscrowNotRatified)
		}
	}

	if tx.DollarAmount.Symbol == esc.DollarBalance.Symbol && tx.DollarAmount.GreaterThan(esc.DollarBalance) {
		return fmt.Errorf("escrow_release: %w", errs.ErrInsufficientFunds)
	}
	if tx.LiquidAmount.Symbol == esc.LiquidBalance.Symbol && tx.LiquidAmount.GreaterThan(esc.LiquidBalance) {
		return fmt.Errorf("escrow_release: %w", errs.ErrInsufficientFunds)
	}

	receiver, err := db.MustGetAccount(tx.Receiver)
	if err != nil {
		return fmt.Errorf("escrow_release: %w", errs.ErrAccountNotFound)
	}
	if err := receiver.Credit(tx.DollarAmount); err != nil {
		return fmt.Errorf("escrow_release: %w", err)
	}
	if err := receiver.Credit(tx.LiquidAmount); err != nil {
		return fmt.Errorf("escrow_release: %w", err)
	}
	newDollarBalance, err := esc.DollarBalance.Sub(tx.DollarAmount)
	if err != nil {
		return fmt.Errorf("escrow_release: %w", err)
	}
	newLiquidBalance, err := esc.LiquidBalance.Sub(tx.LiquidAmount)
	if err != nil {
		return fmt.Errorf("escrow_release: %w", err)
	}

	session := db.Begin()
	if _, err := db.ModifyAccount(tx.Receiver, func(types.Account) types.Account { return receiver }); err != nil {
		session.Rollback()
		return err
	}
	updated, err := db.ModifyEscrow(id, func(e types.Escrow) types.Escrow {
		e.DollarBalance = newDollarBalance
		e.LiquidBalance = newLiquidBalance
		return e
	})
	if err != nil {
		session.Rollback()
		return err
	}
	if updated.Empty() {
		if err := db.RemoveEscrow(id); err != nil {
			session.Rollback()
			return err
		}
	}
	session.Commit()
	return nil
}
