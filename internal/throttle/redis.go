package throttle

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KEYS[1] attempts counter, KEYS[2] lockout marker.
// ARGV[1] decay in ms, ARGV[2] max attempts.
var recordFailureScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
if n >= tonumber(ARGV[2]) and redis.call('EXISTS', KEYS[2]) == 0 then
  redis.call('SET', KEYS[2], '1', 'PX', ARGV[1])
end
return n
`)

type redisLimiter struct {
	client redis.Cmdable
	policy Policy
	prefix string
}

// NewRedisLimiter returns a Limiter backed by Redis. Keys are namespaced with prefix.
func NewRedisLimiter(client redis.Cmdable, policy Policy, prefix string) Limiter {
	return &redisLimiter{client: client, policy: policy, prefix: prefix}
}

func (l *redisLimiter) attemptsKey(key string) string {
	return l.prefix + key
}

func (l *redisLimiter) lockKey(key string) string {
	return l.prefix + key + ":timer"
}

func (l *redisLimiter) RecordFailure(ctx context.Context, key string) (int, error) {
	n, err := recordFailureScript.Run(ctx, l.client,
		[]string{l.attemptsKey(key), l.lockKey(key)},
		l.policy.Decay.Milliseconds(), l.policy.MaxAttempts,
	).Int()
	if err != nil {
		return 0, fmt.Errorf("record login failure: %w", err)
	}
	return n, nil
}

func (l *redisLimiter) IsThrottled(ctx context.Context, key string) (bool, int, error) {
	ttl, err := l.client.PTTL(ctx, l.lockKey(key)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("read lockout ttl: %w", err)
	}
	// -2 missing, -1 no expiry; neither is a live lockout
	if ttl <= 0 {
		return false, 0, nil
	}
	return true, ceilSeconds(ttl), nil
}

func (l *redisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.attemptsKey(key), l.lockKey(key)).Err(); err != nil {
		return fmt.Errorf("reset login throttle: %w", err)
	}
	return nil
}

var _ Limiter = (*redisLimiter)(nil)

