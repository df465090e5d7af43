package authority

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/velanet/corechain/crypto"
)

// MaxSigCheckDepth bounds how many levels of named sub-account an authority
// check will recurse through.
const MaxSigCheckDepth = 2

// MaxSigCheckAccounts bounds the total number of distinct accounts a single
// authority check may visit across the whole recursion.
const MaxSigCheckAccounts = 125

// Level identifies one of the three authority tiers an operation can
// require. Higher levels implicitly cover every lower level's operations.
type Level uint8

const (
	Posting Level = iota
	Active
	Owner
)

// Lookup resolves an account's authority at a given level so that
// resolveWeight can walk named sub-accounts recursively. AccountID maps a
// name to a dense, small integer used only for the roaring-bitmap
// visited-set; the mapping need not be stable across process restarts.
type Lookup interface {
	Authority(name string, level Level) (*Authority, bool)
	AccountID(name string) (uint32, bool)
}

// ErrTooManyAccounts is returned when a single check would visit more than
// MaxSigCheckAccounts distinct accounts.
var ErrTooManyAccounts = fmt.Errorf("authority: exceeded max accounts considered (%d)", MaxSigCheckAccounts)

// Satisfied reports whether the authority at (name, level) is met by the
// supplied provided keys, recursively resolving named sub-accounts up to
// MaxSigCheckDepth and bounding the total accounts visited at
// MaxSigCheckAccounts. The roaring bitmap doubles as cycle detector: an
// account revisited within one check contributes zero weight the second
// time, matching the source's "no double counting" rule.
func Satisfied(lookup Lookup, name string, level Level, providedKeys map[crypto.PublicKey]struct{}) (bool, error) {
	visited := roaring.New()
	visitedCount := 0
	weight, err := resolveWeight(lookup, name, level, providedKeys, visited, &visitedCount, 0)
	if err != nil {
		return false, err
	}
	auth, ok := lookup.Authority(name, level)
	if !ok {
		return false, fmt.Errorf("authority: no %v authority for %q", level, name)
	}
	return weight >= uint64(auth.WeightThreshold), nil
}

func resolveWeight(lookup Lookup, name string, level Level, providedKeys map[crypto.PublicKey]struct{}, visited *roaring.Bitmap, visitedCount *int, depth int) (uint64, error) {
	id, ok := lookup.AccountID(name)
	if !ok {
		return 0, fmt.Errorf("authority: unknown account %q", name)
	}
	if visited.Contains(id) {
		return 0, nil
	}
	*visitedCount++
	if *visitedCount > MaxSigCheckAccounts {
		return 0, ErrTooManyAccounts
	}
	visited.Add(id)

	auth, ok := lookup.Authority(name, level)
	if !ok {
		return 0, nil
	}

	var total uint64
	for key, weight := range auth.Keys {
		if _, present := providedKeys[key]; present {
			total += uint64(weight)
		}
	}

	if depth < MaxSigCheckDepth {
		for sub, weight := range auth.Accounts {
			subWeight, err := resolveWeight(lookup, sub, level, providedKeys, visited, visitedCount, depth+1)
			if err != nil {
				return 0, err
			}
			if subWeight >= uint64(mustAuthority(lookup, sub, level).WeightThreshold) {
				total += uint64(weight)
			}
		}
	}
	return total, nil
}

func mustAuthority(lookup Lookup, name string, level Level) *Authority {
	auth, ok := lookup.Authority(name, level)
	if !ok {
		return New(1)
	}
	return auth
}

// String renders the authority level name for error messages and logs.
func (l Level) String() string {
	switch l {
	case Owner:
		return "owner"
	case Active:
		return "active"
	case Posting:
		return "posting"
	default:
		return "unknown"
	}
}
