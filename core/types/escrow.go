package types

import "github.com/velanet/corechain/asset"

// Escrow holds funds in trust between From and To, optionally mediated by
// Agent, following the state machine in §4.6: Created -> Ratified ->
// (Released | Disputed).
type Escrow struct {
	EscrowID uint32

	From  string
	To    string
	Agent string

	RatificationDeadline uint32
	EscrowExpiration     uint32

	DollarBalance asset.Asset
	LiquidBalance asset.Asset
	PendingFee    asset.Asset

	ToApproved    bool
	AgentApproved bool
	Disputed      bool
}

// Ratified reports whether both parties have approved, the point at which
// PendingFee is paid out and the escrow moves from Created to Ratified.
func (e *Escrow) Ratified() bool {
	return e.ToApproved && e.AgentApproved
}

// Empty reports whether both balances have reached zero, at which point
// housekeeping or the releasing evaluator removes the row.
func (e *Escrow) Empty() bool {
	return e.DollarBalance.IsZero() && e.LiquidBalance.IsZero()
}
