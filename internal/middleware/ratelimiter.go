package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/pictonet/pictonet/internal/logger"
)

// RateLimiter is a per-key token bucket. Buckets are created lazily and
// swept once the map grows past sweepThreshold.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens per second
	capacity float64
	maxIdle  time.Duration
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

const sweepThreshold = 10_000

func NewRateLimiter(rate, capacity float64, maxIdle time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		maxIdle:  maxIdle,
	}
}

// Allow consumes one token from key's bucket if available.
func (l *RateLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= sweepThreshold {
			l.sweep(now)
		}
		b = &bucket{tokens: l.capacity}
		l.buckets[key] = b
	} else {
		b.tokens = min(l.capacity, b.tokens+now.Sub(b.lastSeen).Seconds()*l.rate)
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops buckets idle long enough to be full again. Called with the
// lock held.
func (l *RateLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.maxIdle {
			delete(l.buckets, key)
		}
	}
}

// RateLimit rejects requests exceeding the limiter's budget for the key
// derived from the request. Requests without a derivable key pass through.
func RateLimit(limiter *RateLimiter, keyFn func(*http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := keyFn(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if !limiter.Allow(key) {
				logger.Log.Warn("rate limit exceeded", "key", key, "path", r.URL.Path)
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
