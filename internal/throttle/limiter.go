// Package throttle counts failed login attempts and locks a key out once the
// configured threshold is reached.
package throttle

import (
	"context"
	"strings"
	"time"
)

// Policy is the lockout threshold and how long both the counter and the
// lockout last.
type Policy struct {
	MaxAttempts int
	Decay       time.Duration
}

// Limiter tracks failures per key. Implementations must make RecordFailure
// atomic per key.
type Limiter interface {
	// RecordFailure increments the failure count for key and returns the new count.
	RecordFailure(ctx context.Context, key string) (int, error)
	// IsThrottled reports whether key is locked out and the whole seconds left.
	IsThrottled(ctx context.Context, key string) (bool, int, error)
	// Reset clears both the counter and any lockout for key.
	Reset(ctx context.Context, key string) error
}

// Key builds the throttle key for a login attempt.
func Key(email, ip string) string {
	return strings.ToLower(strings.TrimSpace(email)) + "|" + ip
}

// ceilSeconds rounds a remaining duration up to whole seconds.
func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
