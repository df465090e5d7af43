package types

import "github.com/velanet/corechain/authority"

// AccountRecoveryRequest is the proposed new owner authority recorded by
// request_account_recovery, consumed (and removed) by a matching
// recover_account before its Expiration.
type AccountRecoveryRequest struct {
	AccountToRecover string
	NewOwnerAuthority authority.Authority
	Expiration        uint32
}

// ChangeRecoveryAccountRequest is the deferred request that reassigns an
// account's recovery partner once Effective is reached, recovered from
// original_source since spec.md names it only in prose.
type ChangeRecoveryAccountRequest struct {
	AccountToRecover string
	RecoveryAccount  string
	Effective        uint32
}

// DeclineVotingRightsRequest is the deferred request that strips an
// account's voting rights once Effective is reached, recovered from
// original_source since spec.md names it only in prose.
type DeclineVotingRightsRequest struct {
	Account   string
	Effective uint32
}
