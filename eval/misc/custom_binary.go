package misc

import (
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyCustomBinary implements custom_binary: identical authentication
// contract to custom/custom_json across all three authority tiers. The
// operation is deprecated: it is rejected while the node is producing a
// block and applied otherwise.
func ApplyCustomBinary(db *state.Database, ctx *op.Context, tx op.CustomBinary) error {
	if ctx.IsProducing {
		return fmt.Errorf("custom_binary: %w", errs.ErrOperationDisabled)
	}
	for _, account := range tx.RequiredOwnerAuths {
		if err := ctx.RequireAuthority(db, account, authority.Owner); err != nil {
			return fmt.Errorf("custom_binary: %w", err)
		}
	}
	for _, account := range tx.RequiredActiveAuths {
		if err := ctx.RequireAuthority(db, account, authority.Active); err != nil {
			return fmt.Errorf("custom_binary: %w", err)
		}
	}
	for _, account := range tx.RequiredPostingAuths {
		if err := ctx.RequireAuthority(db, account, authority.Posting); err != nil {
			return fmt.Errorf("custom_binary: %w", err)
		}
	}
	return nil
}
