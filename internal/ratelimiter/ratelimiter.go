// Package ratelimiter enforces a minimum interval between requests per
// client key.
package ratelimiter

import (
	"sync"
	"time"
)

const sweepThreshold = 1024

type RateLimiter struct {
	mu       sync.Mutex
	rate     time.Duration
	lastSeen map[string]time.Time
}

func New(rate time.Duration) *RateLimiter {
	return &RateLimiter{
		rate:     rate,
		lastSeen: make(map[string]time.Time),
	}
}

// Allow reports whether a request for key may proceed now. When denied it
// returns how long the caller should wait before retrying.
func (rl *RateLimiter) Allow(key string) (time.Duration, bool) {
	return rl.allow(key, time.Now())
}

func (rl *RateLimiter) allow(key string, now time.Time) (time.Duration, bool) {
	if rl == nil || rl.rate <= 0 || key == "" {
		return 0, true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if lastSeen, exists := rl.lastSeen[key]; exists {
		if delay := getDelay(rl.rate, lastSeen, now); delay > 0 {
			return delay, false
		}
	}

	rl.lastSeen[key] = now
	rl.sweepLocked(now)

	return 0, true
}

// sweepLocked drops keys whose interval has already elapsed. Such entries
// behave exactly like absent ones, so removing them only bounds the map.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if len(rl.lastSeen) < sweepThreshold {
		return
	}

	for key, lastSeen := range rl.lastSeen {
		if getDelay(rl.rate, lastSeen, now) <= 0 {
			delete(rl.lastSeen, key)
		}
	}
}

func getDelay(
	rate time.Duration,
	lastSeen time.Time,
	now time.Time,
) time.Duration {
	elapsed := now.Sub(lastSeen)

	return max(rate-elapsed, 0)
}
