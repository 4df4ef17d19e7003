package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/tomasen/realip"
)

// RateLimiter is a fixed-window per-user request counter used for abuse
// control on mutating routes. Anonymous requests are counted per client IP.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	started time.Time
	hits    map[string]int
}

// NewRateLimiter ...
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
		hits:   make(map[string]int),
	}
}

// Handle ...
func (l *RateLimiter) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, ok := ViewerID(r.Context())
		if !ok {
			key = realip.FromRequest(r)
		}

		if !l.allow(key) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.started) >= l.window {
		l.started = now
		l.hits = make(map[string]int)
	}

	l.hits[key]++

	return l.hits[key] <= l.limit
}
