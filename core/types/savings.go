package types

import "github.com/velanet/corechain/asset"

// SavingsWithdraw is a pending transfer-from-savings, maturing at Complete
// (head_time + SAVINGS_WITHDRAW_TIME) unless cancelled first.
type SavingsWithdraw struct {
	From      string
	To        string
	RequestID uint32

	Amount asset.Asset
	Memo   string

	Complete uint32
}
