package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LocalRateLimiter is an in-process token bucket per key, used when Redis
// is not available. Buckets idle for longer than the window are dropped.
type LocalRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*localBucket
	limit     int
	window    time.Duration
	lastSweep time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalRateLimiter allows limit requests per window for each key,
// refilling evenly
func NewLocalRateLimiter(limit int, window time.Duration) *LocalRateLimiter {
	return &LocalRateLimiter{
		buckets:   make(map[string]*localBucket),
		limit:     limit,
		window:    window,
		lastSweep: time.Now(),
	}
}

// Limit returns the burst size
func (l *LocalRateLimiter) Limit() int {
	return l.limit
}

// Window returns the period over which Limit requests are allowed
func (l *LocalRateLimiter) Window() time.Duration {
	return l.window
}

// IsAllowed takes a token from the bucket for key
func (l *LocalRateLimiter) IsAllowed(_ context.Context, key string) (bool, int, time.Time, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &localBucket{
			limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.limit)), l.limit),
		}
		l.buckets[key] = bucket
	}
	bucket.lastSeen = now

	allowed := bucket.limiter.AllowN(now, 1)
	remaining := max(int(bucket.limiter.TokensAt(now)), 0)
	reset := now.Add(l.window / time.Duration(l.limit))

	return allowed, remaining, reset, nil
}

// sweep drops buckets unused for a full window. An idle bucket has refilled
// completely, so dropping it does not change any decision. Caller holds mu.
func (l *LocalRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) >= l.window {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
