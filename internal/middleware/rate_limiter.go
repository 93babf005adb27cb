package middleware

import (
	"net/http"
	"sync"
	"time"

	"saunapos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Rate limiting ────────────────────────────────────────────────────────────
// Fixed-window counters keyed by client IP. One shared limiter covers the
// whole API surface, a stricter one covers login. Stale windows are purged
// on a timer so the maps don't grow with every IP that ever connected.

type window struct {
	count int
	until time.Time
}

type ipLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	span    time.Duration
}

func newIPLimiter(span time.Duration) *ipLimiter {
	l := &ipLimiter{windows: make(map[string]*window), span: span}
	go l.purge()
	return l
}

// allow increments the counter for ip and reports whether it stays within
// limit for the current window.
func (l *ipLimiter) allow(ip string, limit int) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w := l.windows[ip]
	if w == nil || now.After(w.until) {
		w = &window{until: now.Add(l.span)}
		l.windows[ip] = w
	}
	w.count++
	return w.count <= limit, w.until
}

func (l *ipLimiter) purge() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		removed := 0
		for ip, w := range l.windows {
			if now.After(w.until) {
				delete(l.windows, ip)
				removed++
			}
		}
		remaining := len(l.windows)
		l.mu.Unlock()
		if removed > 0 {
			log.Debug().
				Int("removed", removed).
				Int("remaining", remaining).
				Msg("rate limiter windows purged")
		}
	}
}

var loginLimiter = newIPLimiter(time.Minute)

// LoginRateLimiter caps login attempts at 20 per minute per IP, independent
// of the general limiter, so credential stuffing gets cut off early.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, _ := loginLimiter.allow(c.ClientIP(), 20); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Too many login attempts. Try again in 1 minute."))
			return
		}
		c.Next()
	}
}

// RateLimiter caps requests per IP at limit per window across the API.
func RateLimiter(limit int, span time.Duration) gin.HandlerFunc {
	l := newIPLimiter(span)
	return func(c *gin.Context) {
		ok, until := l.allow(c.ClientIP(), limit)
		if !ok {
			c.Header("Retry-After", until.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Too many requests. Try again shortly."))
			return
		}
		c.Next()
	}
}
