// Package authority implements the weighted-threshold multi-signature
// authority model: Authority values, their well-formedness checks, and
// recursive signer-weight resolution (resolve.go).
package authority

import (
	"fmt"
	"sort"

	"github.com/velanet/corechain/crypto"
)

// MaxAuthorityMembership bounds |accounts| + |keys| in a single Authority.
const MaxAuthorityMembership = 40

// Authority is a weighted-threshold multi-signature policy over named
// accounts and public keys.
type Authority struct {
	WeightThreshold uint32
	Accounts        map[string]uint16
	Keys            map[crypto.PublicKey]uint16
}

// New constructs an empty authority with the given threshold.
func New(threshold uint32) *Authority {
	return &Authority{
		WeightThreshold: threshold,
		Accounts:        make(map[string]uint16),
		Keys:            make(map[crypto.PublicKey]uint16),
	}
}

// Clone returns a deep copy safe for independent mutation.
func (a *Authority) Clone() *Authority {
	if a == nil {
		return nil
	}
	clone := &Authority{
		WeightThreshold: a.WeightThreshold,
		Accounts:        make(map[string]uint16, len(a.Accounts)),
		Keys:            make(map[crypto.PublicKey]uint16, len(a.Keys)),
	}
	for k, v := range a.Accounts {
		clone.Accounts[k] = v
	}
	for k, v := range a.Keys {
		clone.Keys[k] = v
	}
	return clone
}

// MembershipSize returns |accounts| + |keys|.
func (a *Authority) MembershipSize() int {
	return len(a.Accounts) + len(a.Keys)
}

// TotalWeight sums every member's weight in a uint64, wide enough that the
// sum of u16 weights cannot overflow while checking the impossible-authority
// condition.
func (a *Authority) TotalWeight() uint64 {
	var total uint64
	for _, w := range a.Accounts {
		total += uint64(w)
	}
	for _, w := range a.Keys {
		total += uint64(w)
	}
	return total
}

// Impossible reports whether the authority's threshold can never be reached
// by any combination of its members; the recovery evaluator refuses to
// install such an authority as a new owner.
func (a *Authority) Impossible() bool {
	if a.WeightThreshold == 0 {
		return true
	}
	return uint64(a.WeightThreshold) > a.TotalWeight()
}

// Validate enforces the structural invariants of §4.1: a positive
// threshold (a zero-threshold authority is always rejected), a bounded,
// non-empty membership, and that every referenced account exists per
// accountExists.
func (a *Authority) Validate(accountExists func(name string) bool) error {
	if a.WeightThreshold == 0 {
		return fmt.Errorf("authority: weight_threshold must be >= 1")
	}
	if a.MembershipSize() > MaxAuthorityMembership {
		return fmt.Errorf("authority: membership size %d exceeds max %d", a.MembershipSize(), MaxAuthorityMembership)
	}
	if a.MembershipSize() == 0 {
		return fmt.Errorf("authority: authority must have at least one member")
	}
	for name := range a.Accounts {
		if accountExists != nil && !accountExists(name) {
			return fmt.Errorf("authority: referenced account %q does not exist", name)
		}
	}
	return nil
}

// SortedAccountNames returns the account members in ascending order, the
// canonical order used for wire encoding.
func (a *Authority) SortedAccountNames() []string {
	names := make([]string, 0, len(a.Accounts))
	for name := range a.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedKeys returns the key members in ascending byte order, the canonical
// order used for wire encoding.
func (a *Authority) SortedKeys() []crypto.PublicKey {
	keys := make([]crypto.PublicKey, 0, len(a.Keys))
	for k := range a.Keys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return string(keys[i][:]) < string(keys[j][:])
	})
	return keys
}
