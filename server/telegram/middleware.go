package telegram

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter provides per-user rate limiting for incoming updates.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[int64]*rate.Limiter
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limits: make(map[int64]*rate.Limiter),
	}
}

// getLimiter gets or creates a limiter for the given user.
func (rl *RateLimiter) getLimiter(userID int64) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[userID]; ok {
		return limiter
	}

	// 5 updates per second with burst of 10, enough for a media album.
	limiter := rate.NewLimiter(rate.Every(time.Second/5), 10)
	rl.limits[userID] = limiter
	return limiter
}

// Allow checks if an update from the given user may be processed.
func (rl *RateLimiter) Allow(userID int64) bool {
	return rl.getLimiter(userID).Allow()
}
