package ratelimiter

import (
	"log/slog"
	"sync"
	"time"
)

// Limiter caps how many calls may happen per interval. Callers block in
// WaitIfNeeded until the window resets.
type Limiter interface {
	WaitIfNeeded()
}

// RateLimiter is a simple fixed-window limiter for outbound API calls.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded sleeps out the remainder of the current window when the call
// budget is spent, then counts the call.
func (rl *RateLimiter) WaitIfNeeded() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		sleep := rl.interval - now.Sub(rl.lastReset)
		if sleep > 0 {
			slog.Warn("rate limit reached, waiting", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		rl.count = 1
		rl.lastReset = time.Now()
	}
}

var _ Limiter = (*RateLimiter)(nil)
