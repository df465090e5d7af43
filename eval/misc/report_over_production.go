package misc

import (
	"bytes"
	"fmt"

	"github.com/velanet/corechain/core/state"
	"github.com/velanet/corechain/errs"
	"github.com/velanet/corechain/op"
)

// ApplyReportOverProduction implements report_over_production: evidence
// that a witness signed two distinct blocks for the same slot. Consensus
// only validates the evidence is well-formed (two non-empty, different
// signed headers) and that the reporter is a registered witness; the
// headers themselves are not decoded. Any resulting penalty
// is a housekeeping/governance concern outside this evaluator's scope,
// matching the spec's framing of this operation as a pure evidence
// submission.
func ApplyReportOverProduction(db *state.Database, ctx *op.Context, tx op.ReportOverProduction) error {
	if !db.WitnessExists(tx.Reporter) {
		return fmt.Errorf("report_over_production: %w", errs.ErrWitnessNotFound)
	}
	if len(tx.FirstBlock) == 0 || len(tx.SecondBlock) == 0 {
		return fmt.Errorf("report_over_production: %w", errs.ErrOutOfRange)
	}
	if bytes.Equal(tx.FirstBlock, tx.SecondBlock) {
		return fmt.Errorf("report_over_production: %w", errs.ErrOutOfRange)
	}
	return nil
}
