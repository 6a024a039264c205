package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/judgefinder/platform/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyPricingQuote = "pricing:quote:ip:%s"

// QuoteLimiter throttles the public pricing quote endpoint per client IP.
// Disabled (always allow) when no Redis address is configured.
type QuoteLimiter struct {
	enabled bool

	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewQuoteLimiter(cfg config.Config) *QuoteLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" || cfg.QuoteRateLimitCapacity <= 0 || cfg.QuoteRateLimitRefill <= 0 {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})

	return &QuoteLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    float64(cfg.QuoteRateLimitRefill),
		burst:   cfg.QuoteRateLimitCapacity,
	}
}

func (l *QuoteLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow consumes one quote token for the client IP.
func (l *QuoteLimiter) Allow(ctx context.Context, clientIP string) (bool, time.Duration, error) {
	if !l.Enabled() {
		return true, 0, nil
	}
	res, err := l.bucket.Allow(ctx, fmt.Sprintf(keyPricingQuote, strings.TrimSpace(clientIP)), l.rate, l.burst)
	if err != nil {
		return false, 0, err
	}
	return res.Allowed, res.RetryAfter, nil
}
