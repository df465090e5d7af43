// Package types defines the state objects the core mutates: accounts,
// content, market, escrow, savings, vesting, witness and global-singleton
// rows. Every type here is a plain value stored in a store.Table; none of
// them holds a pointer to another row, per §3's by-name/by-id ownership
// rule.
package types

import (
	"fmt"

	"github.com/velanet/corechain/asset"
	"github.com/velanet/corechain/authority"
)

// MaxProxyDepth bounds the proxied-witness-vote chain length.
const MaxProxyDepth = 4

// Account is the core identity and balance-holding object. Every asset
// balance is tracked individually rather than as a generic map, matching
// the fixed, closed set of symbols the spec defines.
type Account struct {
	Name string

	MemoKey string

	// Proxy names the account whose witness votes this account's vesting
	// weight is folded into. Empty means "votes directly".
	Proxy string

	Liquid              asset.Asset
	SavingsLiquid        asset.Asset
	Dollar               asset.Asset
	SavingsDollar        asset.Asset
	RewardLiquid         asset.Asset
	RewardDollar         asset.Asset
	RewardVestingBalance asset.Asset

	VestingShares          asset.Asset
	ReceivedVestingShares  asset.Asset
	DelegatedVestingShares asset.Asset

	DollarSeconds        int64
	DollarSecondsLastUpdate  uint32
	LastInterestPayment  uint32

	SavingsDollarSeconds       int64
	SavingsDollarSecondsLast   uint32
	SavingsLastInterestPayment uint32
	SavingsWithdrawRequests    uint8

	VestingWithdrawRate     asset.Asset
	NextVestingWithdrawal   uint32
	ToWithdraw              int64
	Withdrawn               int64
	WithdrawRoutes          uint8

	// ProxiedVSFVotes[i] accumulates the vesting weight proxied to this
	// account from a chain i hops away (0 = direct proxy target).
	ProxiedVSFVotes [MaxProxyDepth]int64

	VotingPower  uint16
	LastVoteTime uint32

	WitnessVotes []string

	LastPost     uint32
	LastRootPost uint32

	RecoveryAccount        string
	LastAccountRecovery    uint32
	PendingClaimedAccounts uint32

	CanVote bool

	Created uint32
	Mined   bool
}

// FreeVestingShares returns the portion of VestingShares this account can
// freely delegate or withdraw: total minus delegated-out minus the
// not-yet-withdrawn remainder of any active withdraw plan.
func (a *Account) FreeVestingShares() int64 {
	return a.VestingShares.Amount - a.DelegatedVestingShares.Amount - (a.ToWithdraw - a.Withdrawn)
}

// EffectiveVestingShares is the stake a vote draws its weight from: owned
// plus received-by-delegation minus delegated-away.
func (a *Account) EffectiveVestingShares() int64 {
	return a.VestingShares.Amount + a.ReceivedVestingShares.Amount - a.DelegatedVestingShares.Amount
}

// Credit adds amount to the liquid or dollar balance matching its symbol.
// VESTS is not creditable this way: it is only ever minted via
// create_vesting against the global vesting-share price.
func (a *Account) Credit(amount asset.Asset) error {
	switch amount.Symbol {
	case asset.LIQUID:
		sum, err := a.Liquid.Add(amount)
		if err != nil {
			return fmt.Errorf("types: credit %s: %w", a.Name, err)
		}
		a.Liquid = sum
	case asset.DOLLAR:
		sum, err := a.Dollar.Add(amount)
		if err != nil {
			return fmt.Errorf("types: credit %s: %w", a.Name, err)
		}
		a.Dollar = sum
	default:
		return fmt.Errorf("types: credit %s: symbol %s not transferable", a.Name, amount.Symbol)
	}
	return nil
}

// Debit subtracts amount from the liquid or dollar balance matching its
// symbol, refusing to drive the balance negative.
func (a *Account) Debit(amount asset.Asset) error {
	switch amount.Symbol {
	case asset.LIQUID:
		if a.Liquid.LessThan(amount) {
			return fmt.Errorf("types: debit %s: insufficient LIQUID balance", a.Name)
		}
		diff, err := a.Liquid.Sub(amount)
		if err != nil {
			return fmt.Errorf("types: debit %s: %w", a.Name, err)
		}
		a.Liquid = diff
	case asset.DOLLAR:
		if a.Dollar.LessThan(amount) {
			return fmt.Errorf("types: debit %s: insufficient DOLLAR balance", a.Name)
		}
		diff, err := a.Dollar.Sub(amount)
		if err != nil {
			return fmt.Errorf("types: debit %s: %w", a.Name, err)
		}
		a.Dollar = diff
	default:
		return fmt.Errorf("types: debit %s: symbol %s not transferable", a.Name, amount.Symbol)
	}
	return nil
}

// AccountAuthority is the one-per-account authority triple. It is stored
// separately from Account so that authority resolution (a hot path on
// every signed transaction) doesn't have to load balance fields.
type AccountAuthority struct {
	Account string

	Owner   authority.Authority
	Active  authority.Authority
	Posting authority.Authority

	LastOwnerUpdate uint32
}

// OwnerAuthorityHistory archives a superseded owner authority so
// recover_account can check a presented `recent_owner_authority` against
// it within the OWNER_AUTH_RECOVERY_PERIOD lookback window.
type OwnerAuthorityHistory struct {
	Account       string
	PreviousOwner authority.Authority
	LastValidTime uint32
}
