package account

import (
	"fmt"

	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyResetAccount implements reset_account: the reset-account recovery
// path is withdrawn in this revision of the chain (SPEC_FULL.md §4); any
// attempt to exercise it is rejected
// unconditionally rather than silently ignored.
func ApplyResetAccount(db *state.Database, ctx *op.Context, tx op.ResetAccount) error {
	return fmt.Errorf("reset_account: %w", errs.ErrOperationDisabled)
}

// ApplySetResetAccount implements set_reset_account, disabled alongside
// reset_account.
func ApplySetResetAccount(db *state.Database, ctx *op.Context, tx op.SetResetAccount) error {
	return fmt.Errorf("set_reset_account: %w", errs.ErrOperationDisabled)
}
