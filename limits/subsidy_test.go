package limits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubsidyLimiterAllowsUpToLimit(t *testing.T) {
	l := NewSubsidyLimiter()
	now := time.Unix(1_700_000_000, 0)

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("alice", now, 3), "call %d should be admitted", i)
	}
	require.False(t, l.Allow("alice", now, 3), "fourth call within the same instant should exceed the burst")
}

func TestSubsidyLimiterZeroLimitAlwaysRejects(t *testing.T) {
	l := NewSubsidyLimiter()
	require.False(t, l.Allow("bob", time.Unix(1_700_000_000, 0), 0))
}

func TestSubsidyLimiterRefillsOverTime(t *testing.T) {
	l := NewSubsidyLimiter()
	now := time.Unix(1_700_000_000, 0)

	require.True(t, l.Allow("carol", now, 2))
	require.True(t, l.Allow("carol", now, 2))
	require.False(t, l.Allow("carol", now, 2))

	later := now.Add(13 * time.Hour)
	require.True(t, l.Allow("carol", later, 2), "half the daily window should have refilled one token")
}

func TestSubsidyLimiterIsIndependentPerAccount(t *testing.T) {
	l := NewSubsidyLimiter()
	now := time.Unix(1_700_000_000, 0)

	require.True(t, l.Allow("dave", now, 1))
	require.False(t, l.Allow("dave", now, 1))
	require.True(t, l.Allow("erin", now, 1), "a different account's budget must not be affected")
}

func TestSubsidyLimiterForgetResetsBucket(t *testing.T) {
	l := NewSubsidyLimiter()
	now := time.Unix(1_700_000_000, 0)

	require.True(t, l.Allow("frank", now, 1))
	require.False(t, l.Allow("frank", now, 1))

	l.Forget("frank")
	require.True(t, l.Allow("frank", now, 1), "forgetting an account should start it fresh")
}

func TestSubsidyLimiterEvictDropsStaleBuckets(t *testing.T) {
	l := NewSubsidyLimiter()
	now := time.Unix(1_700_000_000, 0)

	l.Allow("stale", now, 1)
	l.Evict(now.Add(time.Second))

	require.Empty(t, l.buckets)
}
