package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window in-memory request counter keyed by caller.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	size    time.Duration
	now     func() time.Time
}

type window struct {
	start time.Time
	count int
}

func NewRateLimiter(max int, size time.Duration) *RateLimiter {
	l := &RateLimiter{
		windows: make(map[string]*window),
		max:     max,
		size:    size,
		now:     time.Now,
	}
	go l.cleanupLoop(size)
	return l
}

// Allow reports whether the caller identified by key may proceed.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.size {
		l.windows[key] = &window{start: now, count: 1}
		return true
	}
	if w.count >= l.max {
		return false
	}
	w.count++
	return true
}

// cleanupLoop drops windows that have been idle for a full window size,
// keeping the map bounded by active callers.
func (l *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		now := l.now()
		for key, w := range l.windows {
			if now.Sub(w.start) >= l.size {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware rejects over-limit callers with 429, keyed by client IP.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests, please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
