// Package ratelimit provides Redis-backed request throttles.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPThrottle enforces a cooldown between OTP sends per email address.
// The first request in a window claims a Redis key with SET NX; requests
// inside the window see the key and are denied.
type OTPThrottle struct {
	rdb      *redis.Client
	cooldown time.Duration
	prefix   string
}

// NewOTPThrottle creates a throttle with the given cooldown window.
// If prefix is empty, it uses "otp_resend".
func NewOTPThrottle(rdb *redis.Client, cooldown time.Duration, prefix string) *OTPThrottle {
	if prefix == "" {
		prefix = "otp_resend"
	}
	return &OTPThrottle{rdb: rdb, cooldown: cooldown, prefix: prefix}
}

func (t *OTPThrottle) key(email string) string {
	return fmt.Sprintf("%s:%s", t.prefix, email)
}

// Allow reports whether the address may receive another code now.
// When Redis is not configured the throttle allows everything.
func (t *OTPThrottle) Allow(ctx context.Context, email string) (bool, error) {
	if t.rdb == nil {
		return true, nil
	}
	ok, err := t.rdb.SetNX(ctx, t.key(email), 1, t.cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("otp throttle check failed: %w", err)
	}
	return ok, nil
}
