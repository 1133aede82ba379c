package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"spaik-backend/internal/shared/metrics"
)

const (
	// DefaultRateLimitWindow is the fixed counting window.
	DefaultRateLimitWindow = 60 * time.Second
	// DefaultRateLimitMax is the max requests per client per window.
	DefaultRateLimitMax = 100
)

type windowEntry struct {
	start time.Time
	count int
}

// WindowLimiter is a fixed-window request counter keyed by client address.
// Instances are injected rather than kept as package state so tests can
// isolate them and a scaled-out deployment could swap in an external cache.
type WindowLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	entries map[string]*windowEntry
	now     func() time.Time
}

// NewWindowLimiter constructs a limiter. Zero window/limit pick the
// defaults; now may be nil outside tests.
func NewWindowLimiter(window time.Duration, limit int, now func() time.Time) *WindowLimiter {
	if window <= 0 {
		window = DefaultRateLimitWindow
	}
	if limit <= 0 {
		limit = DefaultRateLimitMax
	}
	if now == nil {
		now = time.Now
	}
	return &WindowLimiter{
		window:  window,
		limit:   limit,
		entries: make(map[string]*windowEntry),
		now:     now,
	}
}

// Allow counts one request for key. It reports whether the request is within
// limits, the remaining quota, when the window resets, and how long the
// caller should wait before retrying when rejected.
func (l *WindowLimiter) Allow(key string) (allowed bool, remaining int, resetAt time.Time, retryAfter time.Duration) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	// Opportunistic reclamation of expired windows.
	for k, e := range l.entries {
		if k != key && now.Sub(e.start) >= l.window {
			delete(l.entries, k)
		}
	}

	e, ok := l.entries[key]
	if !ok || now.Sub(e.start) >= l.window {
		e = &windowEntry{start: now}
		l.entries[key] = e
	}
	e.count++
	resetAt = e.start.Add(l.window)
	remaining = l.limit - e.count
	if remaining < 0 {
		remaining = 0
	}
	return e.count <= l.limit, remaining, resetAt, resetAt.Sub(now)
}

// Len reports the number of tracked client windows.
func (l *WindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RateLimit rejects clients exceeding the fixed-window quota with 429 and a
// retryAfter hint. Quota headers are attached to every response.
func RateLimit(limiter *WindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, resetAt, retryIn := limiter.Allow(c.ClientIP())
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
		if allowed {
			c.Next()
			return
		}

		metrics.IncRateLimited()
		retryAfter := int(math.Ceil(retryIn.Seconds()))
		if retryAfter <= 0 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success":    false,
			"error":      "rate_limited",
			"message":    "too many requests, slow down",
			"retryAfter": retryAfter,
		})
	}
}
