package provider

import (
	"context"
	"sync"
	"time"
)

// The CoinGecko free tier allows roughly 10 calls per minute; one token every
// 7.5 seconds keeps a safety margin under that ceiling.
const (
	coinGeckoBurst  = 8
	coinGeckoRefill = 7500 * time.Millisecond
)

// RateLimiter is a token bucket guarding outbound API budgets. Callers block
// in Wait until a token frees up or their context is cancelled.
type RateLimiter struct {
	mu             sync.Mutex
	tokens         int
	maxTokens      int
	refillInterval time.Duration
	lastRefill     time.Time
}

// NewRateLimiter allows maxTokens calls per refillInterval with bursts up to
// maxTokens.
func NewRateLimiter(maxTokens int, refillInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillInterval: refillInterval,
		lastRefill:     time.Now(),
	}
}

// NewCoinGeckoLimiter returns a limiter tuned to the CoinGecko free tier.
func NewCoinGeckoLimiter() *RateLimiter {
	return NewRateLimiter(coinGeckoBurst, coinGeckoRefill)
}

// Wait blocks until a token is available or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		r.refill()
		if r.tokens > 0 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.refillInterval):
		}
	}
}

func (r *RateLimiter) refill() {
	now := time.Now()
	elapsed := now.Sub(r.lastRefill)
	newTokens := int(elapsed / r.refillInterval)
	if newTokens > 0 {
		r.tokens += newTokens
		if r.tokens > r.maxTokens {
			r.tokens = r.maxTokens
		}
		r.lastRefill = r.lastRefill.Add(time.Duration(newTokens) * r.refillInterval)
	}
}
