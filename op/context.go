// Package op defines the canonical operation tagged union (§6) and the
// Context every evaluator consumes alongside the database
// handle and operation payload.
package op

import (
	"github.com/velanet/corechain/authority"
	"github.com/velanet/corechain/crypto"
	"github.com/velanet/corechain/errs"
)

// Context carries everything an evaluator needs that isn't part of the
// operation payload itself or the database: the block-scoped clock, the
// producing flag custom_binary gates on, the active hardfork level, the
// chain id operations are signed against, and the already-resolved signer
// set (signature verification itself happens upstream, per spec.md §1).
type Context struct {
	HeadBlockTime uint32
	IsProducing   bool
	HardforkLevel uint32
	ChainID       string

	// CashoutWindowSeconds is the configured comment payout delay
	// (chain.Config.CashoutWindowSeconds), threaded through per-context
	// rather than read from a global so tests can exercise the shortened
	// testnet window without touching process state.
	CashoutWindowSeconds uint32

	// ProvidedKeys holds the set of public keys that signed this
	// transaction, already recovered from signatures by the caller.
	ProvidedKeys map[crypto.PublicKey]struct{}
}

// RequireAuthority asserts the database's resolved authority at level for
// account is satisfied by ctx's provided keys.
func (ctx *Context) RequireAuthority(lookup authority.Lookup, account string, level authority.Level) error {
	ok, err := authority.Satisfied(lookup, account, level, ctx.ProvidedKeys)
	if err != nil {
		return err
	}
	if !ok {
		return missingAuthorityError(level)
	}
	return nil
}

func missingAuthorityError(level authority.Level) error {
	switch level {
	case authority.Owner:
		return errs.ErrMissingOwnerAuth
	case authority.Active:
		return errs.ErrMissingActiveAuth
	default:
		return errs.ErrMissingPostingAuth
	}
}
