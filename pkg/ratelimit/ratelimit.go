package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// NewRequestLimiter returns a limiter that paces calls to at most
// maxRequestPerMinute, one request at a time.
func NewRequestLimiter(maxRequestPerMinute int) *rate.Limiter {
	if maxRequestPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	interval := time.Minute / time.Duration(maxRequestPerMinute)
	return rate.NewLimiter(rate.Every(interval), 1)
}

// TokenLimiter enforces a rolling per-minute budget of provider tokens.
type TokenLimiter struct {
	limiter      *rate.Limiter
	maxPerMinute int
}

// NewTokenLimiter creates a limiter allowing maxTokenPerMinute tokens.
func NewTokenLimiter(maxTokenPerMinute int) *TokenLimiter {
	if maxTokenPerMinute <= 0 {
		return &TokenLimiter{
			limiter:      rate.NewLimiter(rate.Inf, 1),
			maxPerMinute: 1,
		}
	}
	return &TokenLimiter{
		limiter:      rate.NewLimiter(rate.Limit(float64(maxTokenPerMinute)/60.0), maxTokenPerMinute),
		maxPerMinute: maxTokenPerMinute,
	}
}

// Wait blocks until the given number of tokens fits in the budget. Requests
// larger than the whole budget are clamped so they cannot block forever.
func (t *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	if tokens > t.maxPerMinute {
		tokens = t.maxPerMinute
	}
	return t.limiter.WaitN(ctx, tokens)
}

// GetRemaining reports the tokens currently available in the budget.
func (t *TokenLimiter) GetRemaining() int {
	return int(t.limiter.Tokens())
}
