package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSentinelsWrapWithErrorsIs pins the wrapping convention every
// evaluator relies on: fmt.Errorf("<subsystem>: ...: %w", Err...) must stay
// unwrappable via errors.Is so callers can branch on the sentinel without
// string-matching.
func TestSentinelsWrapWithErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("transfer: %w", ErrInsufficientFunds)
	require.ErrorIs(t, wrapped, ErrInsufficientFunds)
	require.NotErrorIs(t, wrapped, ErrAccountNotFound)
}

func TestSentinelsAreDistinct(t *testing.T) {
	require.False(t, errors.Is(ErrMissingOwnerAuth, ErrMissingActiveAuth))
	require.False(t, errors.Is(ErrEscrowNotFound, ErrOrderNotFound))
}
