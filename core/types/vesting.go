package types

import "github.com/velanet/corechain/asset"

// VestingDelegation is a standing delegation of stake from Delegator to
// Delegatee. The pair is unique; decreasing or removing one creates a
// VestingDelegationExpiration rather than returning the shares immediately.
type VestingDelegation struct {
	Delegator string
	Delegatee string

	VestingShares    asset.Asset
	MinDelegationTime uint32
}

// VestingDelegationExpiration holds the portion of a decreased or removed
// delegation that is still withheld from the delegator until Expiration,
// per §4.3's delegate_vesting_shares decrease case.
type VestingDelegationExpiration struct {
	Delegator string

	VestingShares asset.Asset
	Expiration    uint32
}

// WithdrawVestingRoute redirects a slice of an account's weekly vesting
// withdrawal to another account, either as liquid (AutoVest=false) or as
// vesting shares directly (AutoVest=true).
type WithdrawVestingRoute struct {
	FromAccount string
	ToAccount   string

	PercentBps uint16
	AutoVest   bool
}
