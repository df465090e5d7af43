// Package errs holds the sentinel errors evaluators assert against,
// grouped by the taxonomy in spec §7: authorization, precondition,
// invariant. Evaluators wrap a sentinel with subsystem-prefixed context via
// fmt.Errorf("<subsystem>: ...: %w", Err...), matching the teacher's
// core/errors and native/bank error style.
package errs

import "errors"

// Authorization errors: missing signatures at the required level, or an
// authority that can never be satisfied.
var (
	ErrMissingOwnerAuth    = errors.New("missing required owner authority")
	ErrMissingActiveAuth   = errors.New("missing required active authority")
	ErrMissingPostingAuth  = errors.New("missing required posting authority")
	ErrIrrelevantSignature = errors.New("irrelevant signature present")
	ErrImpossibleAuthority = errors.New("authority can never be satisfied")
)

// Precondition errors: the operation's inputs don't meet a gate. These are
// the errors every evaluator is expected to return in the ordinary course
// of rejecting a bad transaction.
var (
	ErrInsufficientFunds   = errors.New("insufficient balance")
	ErrWrongSymbol         = errors.New("asset symbol not accepted here")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrOrderNotFound       = errors.New("limit order not found")
	ErrEscrowNotFound      = errors.New("escrow not found")
	ErrOutOfRange          = errors.New("parameter out of range")
	ErrDeadlineExpired     = errors.New("deadline expired")
	ErrInvalidUTF8         = errors.New("value is not valid UTF-8")
	ErrInvalidJSON         = errors.New("value is not valid JSON")
	ErrInvalidPermlink     = errors.New("permlink uses illegal characters")
	ErrDepthLimit          = errors.New("comment depth limit exceeded")
	ErrRateLimited         = errors.New("rate-limit interval not yet elapsed")
	ErrVoteChangeLimit     = errors.New("vote change limit exceeded")
	ErrOperationDisabled   = errors.New("operation is disabled")
	ErrAlreadyCashedOut    = errors.New("comment has already cashed out")
	ErrOptionsWidened      = errors.New("comment options may only tighten")
	ErrBeneficiariesLocked = errors.New("beneficiaries already locked in")
	ErrOrderExists         = errors.New("order_id already in use")
	ErrFillOrKill          = errors.New("fill-or-kill order could not be fully filled")
	ErrWitnessNotFound     = errors.New("witness not found")
	ErrEscrowAlreadyApproved = errors.New("escrow already approved")
	ErrEscrowNotRatified     = errors.New("escrow has not been ratified")
	ErrEscrowDisputed        = errors.New("escrow is under dispute")
)

// Invariant errors: would-be consensus-breaking bugs in the caller. These
// indicate the transaction should never have reached the evaluator.
var (
	ErrCounterOverflow    = errors.New("counter would overflow")
	ErrBalanceNegative    = errors.New("balance would go negative")
	ErrInvariantViolation = errors.New("state invariant violated")
)
