// Package misc implements the passthrough and bookkeeping operations that
// don't belong to any one subsystem: custom/custom_json (opaque
// application payloads consensus only authenticates, never interprets)
// and report_over_production (double-production evidence).
package misc

import (
	"encoding/json"
	"fmt"

	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyCustom implements custom: consensus only checks that every
// required account actually signed at active level; the payload itself
// is opaque and never interpreted here.
func ApplyCustom(db *state.Database, ctx *op.Context, tx op.Custom) error {
	for _, account := range tx.RequiredAuths {
		if err := ctx.RequireAuthority(db, account, authority.Active); err != nil {
			return fmt.Errorf("custom: %w", err)
		}
	}
	return nil
}

// ApplyCustomJSON implements custom_json: same authentication-only
// contract as custom, across both the active and posting tiers, plus a
// well-formedness check on the JSON payload since downstream consumers
// parse it as JSON by convention.
func ApplyCustomJSON(db *state.Database, ctx *op.Context, tx op.CustomJSON) error {
	for _, account := range tx.RequiredAuths {
		if err := ctx.RequireAuthority(db, account, authority.Active); err != nil {
			return fmt.Errorf("custom_json: %w", err)
		}
	}
	for _, account := range tx.RequiredPostingAuths {
		if err := ctx.RequireAuthority(db, account, authority.Posting); err != nil {
			return fmt.Errorf("custom_json: %w", err)
		}
	}
	if !json.Valid([]byte(tx.JSON)) {
		return fmt.Errorf("custom_json: %w", errs.ErrInvalidJSON)
	}
	return nil
}
