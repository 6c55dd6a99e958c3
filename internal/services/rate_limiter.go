package services

import (
	"fmt"
	"sync"
	"time"
)

// SMSRateLimiter caps how many digest messages one recipient can receive
// inside a sliding window, so a misconfigured cron cannot spam a phone.
type SMSRateLimiter struct {
	mu          sync.RWMutex
	requests    map[string][]time.Time
	maxRequests int
	window      time.Duration
}

// NewSMSRateLimiter creates a rate limiter allowing maxRequests per window
// per recipient.
func NewSMSRateLimiter(maxRequests int, window time.Duration) *SMSRateLimiter {
	return &SMSRateLimiter{
		requests:    make(map[string][]time.Time),
		maxRequests: maxRequests,
		window:      window,
	}
}

// Allow records a send for the recipient or returns an error if the window
// is exhausted.
func (rl *SMSRateLimiter) Allow(recipient string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.prune(recipient, now)

	if len(rl.requests[recipient]) >= rl.maxRequests {
		return fmt.Errorf("rate limit exceeded: maximum %d messages per %v", rl.maxRequests, rl.window)
	}

	rl.requests[recipient] = append(rl.requests[recipient], now)
	return nil
}

func (rl *SMSRateLimiter) prune(recipient string, now time.Time) {
	requests, exists := rl.requests[recipient]
	if !exists {
		return
	}
	cutoff := now.Add(-rl.window)
	valid := requests[:0]
	for _, req := range requests {
		if req.After(cutoff) {
			valid = append(valid, req)
		}
	}
	if len(valid) == 0 {
		delete(rl.requests, recipient)
	} else {
		rl.requests[recipient] = valid
	}
}

// Reset clears all rate limiting data.
func (rl *SMSRateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.requests = make(map[string][]time.Time)
}
