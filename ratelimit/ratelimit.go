// Package ratelimit throttles login attempts per username in Redis with a
// fixed window counter.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "login_attempts:"

// LoginLimiter allows at most max attempts per username per window. The
// window starts with the first attempt and a successful login clears it.
type LoginLimiter struct {
	rdb    redis.Cmdable
	max    int64
	window time.Duration
}

func NewLoginLimiter(rdb redis.Cmdable, max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, max: int64(max), window: window}
}

func key(username string) string {
	return keyPrefix + username
}

// Allow counts an attempt and reports whether it is within the limit. The
// counter and its expiry go out in one MULTI so a key never outlives the
// window; EXPIRE NX only starts the window when the key has no TTL yet.
func (l *LoginLimiter) Allow(ctx context.Context, username string) (bool, error) {
	k := key(username)
	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to count login attempt: %w", err)
	}
	return incr.Val() <= l.max, nil
}

// Reset clears the username's counter.
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	if err := l.rdb.Del(ctx, key(username)).Err(); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}
	return nil
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}
