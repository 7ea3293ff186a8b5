package throttle

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	attempts    int
	resetAt     time.Time
	lockedUntil time.Time
}

// MemoryLimiter is an in-process Limiter for single-instance deployments and tests.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	policy  Policy
	now     func() time.Time
}

func NewMemoryLimiter(policy Policy, now func() time.Time) *MemoryLimiter {
	if now == nil {
		now = time.Now
	}
	return &MemoryLimiter{
		entries: make(map[string]*memoryEntry),
		policy:  policy,
		now:     now,
	}
}

func (l *MemoryLimiter) RecordFailure(_ context.Context, key string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || !now.Before(e.resetAt) {
		e = &memoryEntry{resetAt: now.Add(l.policy.Decay), lockedUntil: lockedUntil(e)}
		l.entries[key] = e
	}

	e.attempts++
	if e.attempts >= l.policy.MaxAttempts && !now.Before(e.lockedUntil) {
		e.lockedUntil = now.Add(l.policy.Decay)
	}
	return e.attempts, nil
}

func (l *MemoryLimiter) IsThrottled(_ context.Context, key string) (bool, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return false, 0, nil
	}
	remaining := e.lockedUntil.Sub(l.now())
	if remaining <= 0 {
		return false, 0, nil
	}
	return true, ceilSeconds(remaining), nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, key)
	return nil
}

// Sweep drops entries whose counter and lockout have both expired.
func (l *MemoryLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for k, e := range l.entries {
		if !now.Before(e.resetAt) && !now.Before(e.lockedUntil) {
			delete(l.entries, k)
			removed++
		}
	}
	return removed
}

func lockedUntil(e *memoryEntry) time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.lockedUntil
}

var _ Limiter = (*MemoryLimiter)(nil)
