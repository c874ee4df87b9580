// Package guardrails holds the safety primitives a discovery run executes
// under: the wall-clock budget and budget-derived child contexts
package guardrails

import (
	"context"
	"time"
)

// Budget is a wall-clock ceiling for one run. Value object: constructed
// once, only ever read
type Budget struct {
	createdAt time.Time
	max       time.Duration
}

// NewBudget starts a budget of max duration from now. max <= 0 means
// unlimited
func NewBudget(max time.Duration) Budget {
	return Budget{createdAt: time.Now(), max: max}
}

// BudgetAt is NewBudget with an explicit start, for tests
func BudgetAt(start time.Time, max time.Duration) Budget {
	return Budget{createdAt: start, max: max}
}

// Expired reports whether the budget has run out
func (b Budget) Expired() bool {
	if b.max <= 0 {
		return false
	}
	return time.Since(b.createdAt) >= b.max
}

// Remaining returns the time left, zero when expired or unlimited
func (b Budget) Remaining() time.Duration {
	if b.max <= 0 {
		return 0
	}
	rem := b.max - time.Since(b.createdAt)
	if rem < 0 {
		return 0
	}
	return rem
}

// Max returns the configured ceiling
func (b Budget) Max() time.Duration { return b.max }

// Context derives a child context bounded by the budget remainder without
// ever extending a parent deadline. An unlimited budget yields a plain
// cancelable child
func (b Budget) Context(parent context.Context) (context.Context, context.CancelFunc) {
	return withChildTimeout(parent, b.Remaining(), b.max > 0)
}

// withChildTimeout chooses the tighter of the requested duration and any
// parent remainder
func withChildTimeout(parent context.Context, d time.Duration, limited bool) (context.Context, context.CancelFunc) {
	if !limited {
		return context.WithCancel(parent)
	}
	if d <= 0 {
		// already expired; hand back a context that is done immediately
		ctx, cancel := context.WithCancel(parent)
		cancel()
		return ctx, func() {}
	}
	if dl, ok := parent.Deadline(); ok {
		if rem := time.Until(dl); rem > 0 && rem < d {
			return context.WithTimeout(parent, rem)
		}
	}
	return context.WithTimeout(parent, d)
}
