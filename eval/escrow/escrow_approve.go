package escrow

import (
	"fmt"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyEscrowApprove implements escrow_approve: To or Agent signals
// ratification (or explicit rejection). Once both have approved, the
// pending fee is paid to Agent and the escrow moves to Ratified.
// Rejecting refunds the escrow's full remaining balance back to From and
// removes the row.
func ApplyEscrowApprove(db *state.Database, ctx *op.Context, tx op.EscrowApprove) error {
	if tx.Who != tx.To && tx.Who != tx.Agent {
		return fmt.Errorf("escrow_approve: %w", errs.ErrOutOfRange)
	}
	if err := ctx.RequireAuthority(db, tx.Who, authority.Active); err != nil {
		return err
	}
	esc, id, ok := db.GetEscrow(tx.EscrowID)
	if !ok || esc.From != tx.From || esc.To != tx.To || esc.Agent != tx.Agent {
		return fmt.Errorf("escrow_approve: %w", errs.ErrEscrowNotFound)
	}
	if esc.Ratified() {
		return fmt.Errorf("escrow_approve: %w", errs.ErrEscrowAlreadyApproved)
	}
	if ctx.HeadBlockTime > esc.RatificationDeadline {
		return fmt.Errorf("escrow_approve: %w", errs.ErrDeadlineExpired)
	}
	alreadyApproved := (tx.Who == tx.To && esc.ToApproved) || (tx.Who == tx.Agent && esc.AgentApproved)
	if alreadyApproved {
		return fmt.Errorf("escrow_approve: %w", errs.ErrEscrowAlreadyApproved)
	}

	if !tx.Approve {
		from, err := db.MustGetAccount(esc.From)
		if err != nil {
			return fmt.Errorf("escrow_approve: %w", errs.ErrAccountNotFound)
		}
		if err := from.Credit(esc.DollarBalance); err != nil {
			return fmt.Errorf("escrow_approve: %w", err)
		}
		if err := from.Credit(esc.LiquidBalance); err != nil {
			return fmt.Errorf("escrow_approve: %w", err)
		}
		if err := from.Credit(esc.PendingFee); err != nil {
			return fmt.Errorf("escrow_approve: %w", err)
		}
		session := db.Begin()
		if _, err := db.ModifyAccount(esc.From, func(types.Account) types.Account { return from }); err != nil {
			session.Rollback()
			return err
		}
		if err := db.RemoveEscrow(id); err != nil {
			session.Rollback()
			return err
		}
		session.Commit()
		return nil
	}

	nowRatified := (tx.Who == tx.To && esc.AgentApproved) || (tx.Who == tx.Agent && esc.ToApproved)

	session := db.Begin()
	if nowRatified {
		agent, err := db.MustGetAccount(esc.Agent)
		if err != nil {
			session.Rollback()
			return fmt.Errorf("escrow_approve: %w", errs.ErrAccountNotFound)
		}
		if err := agent.Credit(esc.PendingFee); err != nil {
			session.Rollback()
			return fmt.Errorf("escrow_approve: %w", err)
		}
		if _, err := db.ModifyAccount(esc.Agent, func(types.Account) types.Account { return agent }); err != nil {
			session.Rollback()
			return err
		}
	}
	if _, err := db.ModifyEscrow(id, func(e types.Escrow) types.Escrow {
		if tx.Who == tx.To {
			e.ToApproved = true
		} else {
			e.AgentApproved = true
		}
		if nowRatified {
			e.PendingFee = asset.Zero(e.PendingFee.Symbol)
		}
		return e
	}); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
