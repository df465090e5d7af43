package escrow

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/core/types"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyEscrowDispute implements escrow_dispute: From or To may flag an
// already-ratified, not-yet-expired escrow as disputed, after which only
// the Agent can release funds (split however it decides).
func ApplyEscrowDispute(db *state.Database, ctx *op.Context, tx op.EscrowDispute) error {
	if tx.Who != tx.From && tx.Who != tx.To {
		return fmt.Errorf("escrow_dispute: %w", errs.ErrOutOfRange)
	}
	if err := ctx.RequireAuthority(db, tx.Who, authority.Active); err != nil {
		return err
	}
	esc, id, ok := db.GetEscrow(tx.EscrowID)
	if !ok || esc.From != tx.From || esc.To != tx.To || esc.Agent != tx.Agent {
		return fmt.Errorf("escrow_dispute: %w", errs.ErrEscrowNotFound)
	}
	if !esc.Ratified() {
		return fmt.Errorf("escrow_dispute: %w", errs.ErrEscrowNotRatified)
	}
	if esc.Disputed {
		return fmt.Errorf("escrow_dispute: %w", errs.ErrEscrowDisputed)
	}
	if ctx.HeadBlockTime > esc.EscrowExpiration {
		return fmt.Errorf("escrow_dispute: %w", errs.ErrDeadlineExpired)
	}

	session := db.Begin()
	if _, err := db.ModifyEscrow(id, func(e types.Escrow) types.Escrow {
		e.Disputed = true
		return e
	}); err != nil {
		session.Rollback()
		return err
	}
	session.Commit()
	return nil
}
