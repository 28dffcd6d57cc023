package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// attemptWindow is how long failed attempts count against a username.
	attemptWindow = 15 * time.Minute
	maxAttempts   = 10
)

// LoginThrottle bounds repeated failed logins per username using a counter
// with a sliding-start TTL. Key format: login_attempts:<username>
type LoginThrottle struct {
	client *redis.Client
}

func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{client: client}
}

// TooManyAttempts reports whether the username has exhausted its attempts.
func (t *LoginThrottle) TooManyAttempts(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(username)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= maxAttempts, nil
}

// RecordFailure counts one failed attempt. The window starts at the first
// failure and is not extended by later ones.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) error {
	key := t.key(username)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, attemptWindow).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, t.key(username)).Err()
}

func (t *LoginThrottle) key(username string) string {
	return fmt.Sprintf("login_attempts:%s", username)
}
