// Package limits enforces the witness-elected account_subsidy_limit: a
// per-account budget on subsidized (fee-waived) operations, replenished
// deterministically against head_block_time rather than the wall clock so
// every node replaying the same blocks reaches the same admit/reject
// decision.
package limits

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// SubsidyLimiter tracks one token bucket per account. Buckets are created
// lazily and re-parented to the current median-elected limit on every
// call, so a witness vote that raises or lowers account_subsidy_limit
// takes effect on an account's very next operation rather than waiting
// for its bucket to drain.
type SubsidyLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	lastSeen map[string]time.Time
}

// NewSubsidyLimiter returns an empty limiter ready for use.
func NewSubsidyLimiter() *SubsidyLimiter {
	return &SubsidyLimiter{
		buckets:  make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
	}
}

// Allow reports whether account may spend one subsidized operation at
// now, given the current per-account limit (operations allowed per
// 24-hour rolling window, matching account_subsidy_limit's daily-budget
// framing). A limit of zero disables subsidy entirely: every call is
// rejected, forcing the caller to pay the ordinary fee instead.
func (l *SubsidyLimiter) Allow(account string, now time.Time, limit uint32) bool {
	if limit == 0 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[account]
	every := time.Duration(int64(24*time.Hour) / int64(limit))
	if !ok {
		b = rate.NewLimiter(rate.Every(every), int(limit))
		l.buckets[account] = b
	} else if b.Limit() != rate.Every(every) || b.Burst() != int(limit) {
		b.SetLimitAt(now, rate.Every(every))
		b.SetBurstAt(now, int(limit))
	}
	l.lastSeen[account] = now
	return b.AllowN(now, 1)
}

// Forget drops an account's bucket, e.g. when an account is removed from
// the witness-subsidy program entirely. Harmless to call on an account
// with no bucket.
func (l *SubsidyLimiter) Forget(account string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, account)
	delete(l.lastSeen, account)
}

// Evict drops every bucket untouched since before cutoff, bounding memory
// use across long-lived processes without needing a full account scan.
func (l *SubsidyLimiter) Evict(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for account, seen := range l.lastSeen {
		if seen.Before(cutoff) {
			delete(l.buckets, account)
			delete(l.lastSeen, account)
		}
	}
}
