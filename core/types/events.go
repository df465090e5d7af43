package types

import "github.com/velanet/corechain/asset"

// VirtualOp is the tagged union of events housekeeping and a few evaluators
// append to the per-block event log. Virtual ops are not signed by any
// account and never themselves mutate state; they are a record of state
// changes that already happened, the way §7's "user-visible behavior"
// section describes them.
type VirtualOp interface {
	isVirtualOp()
}

// FillOrderEvent records one leg of a limit-order match. Open* describes
// the resting (maker) order, Current* the order that triggered the match
// (taker).
type FillOrderEvent struct {
	OpenOwner    string
	OpenOrderID  uint32
	OpenPays     asset.Asset
	CurrentOwner   string
	CurrentOrderID uint32
	CurrentPays    asset.Asset
}

func (FillOrderEvent) isVirtualOp() {}

// CommentPayoutEvent summarizes the split of one comment's cashout.
type CommentPayoutEvent struct {
	Author       string
	Permlink     string
	LiquidPayout asset.Asset
	DollarPayout asset.Asset
	VestingPayout asset.Asset
	CurationPayout asset.Asset
}

func (CommentPayoutEvent) isVirtualOp() {}

// CurationRewardEvent credits one voter's share of a comment's curation
// pool.
type CurationRewardEvent struct {
	Curator  string
	Reward   asset.Asset
	Author   string
	Permlink string
}

func (CurationRewardEvent) isVirtualOp() {}

// InterestEvent records a DOLLAR interest credit from housekeeping.
type InterestEvent struct {
	Owner    string
	Interest asset.Asset
}

func (InterestEvent) isVirtualOp() {}

// ConvertEvent records a matured DOLLAR-to-LIQUID conversion.
type ConvertEvent struct {
	Owner     string
	RequestID uint32
	AmountIn  asset.Asset
	AmountOut asset.Asset
}

func (ConvertEvent) isVirtualOp() {}

// FillVestingWithdrawEvent records one weekly vesting-withdrawal tick.
type FillVestingWithdrawEvent struct {
	From         string
	To           string
	Withdrawn    asset.Asset
	Deposited    asset.Asset
}

func (FillVestingWithdrawEvent) isVirtualOp() {}

// ReturnVestingDelegationEvent records a delegation-expiration payback.
type ReturnVestingDelegationEvent struct {
	Account       string
	VestingShares asset.Asset
}

func (ReturnVestingDelegationEvent) isVirtualOp() {}

// FillTransferFromSavingsEvent records a matured savings withdrawal.
type FillTransferFromSavingsEvent struct {
	From      string
	To        string
	Amount    asset.Asset
	RequestID uint32
	Memo      string
}

func (FillTransferFromSavingsEvent) isVirtualOp() {}

// ExpiredAccountNotificationEvent records a decline-voting-rights or
// change-recovery-account request taking effect.
type ExpiredAccountNotificationEvent struct {
	Account string
}

func (ExpiredAccountNotificationEvent) isVirtualOp() {}

// EventLog accumulates virtual ops for the duration of one block.
type EventLog struct {
	events []VirtualOp
}

// Emit appends a virtual op.
func (l *EventLog) Emit(op VirtualOp) {
	l.events = append(l.events, op)
}

// Events returns every virtual op emitted so far, in emission order.
func (l *EventLog) Events() []VirtualOp {
	return l.events
}

// Clear discards the log, called by the block applier after handing the
// events to downstream consumers.
func (l *EventLog) Clear() {
	l.events = l.events[:0]
}
