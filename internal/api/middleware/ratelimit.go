package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/lamev/scribe-api/internal/api/shared"
	"golang.org/x/time/rate"
)

// RateLimiter applies a per-client token-bucket limit keyed by remote
// address. Rate limiting is not enforced in this deployment: the limiter
// is constructed disabled by default and passes every request through
// untouched until explicitly enabled in configuration.
type RateLimiter struct {
	enabled   bool
	perMinute int

	mu       sync.Mutex
	limiters map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// staleClientAge is how long an idle client entry survives before cleanup.
const staleClientAge = 10 * time.Minute

// NewRateLimiter creates a RateLimiter. When enabled is false the returned
// middleware is a pass-through.
func NewRateLimiter(enabled bool, perMinute int) *RateLimiter {
	return &RateLimiter{
		enabled:   enabled,
		perMinute: perMinute,
		limiters:  make(map[string]*clientLimiter),
	}
}

// Limit returns the rate limiting middleware.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	if !rl.enabled || rl.perMinute <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientKey(r)) {
			shared.RespondWithError(w, r, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allow consults (and lazily creates) the client's bucket.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60.0), rl.perMinute),
		}
		rl.limiters[key] = cl
		rl.evictStale(now)
	}
	cl.lastSeen = now

	return cl.limiter.Allow()
}

// evictStale drops idle client entries. Called with rl.mu held.
func (rl *RateLimiter) evictStale(now time.Time) {
	for key, cl := range rl.limiters {
		if now.Sub(cl.lastSeen) > staleClientAge {
			delete(rl.limiters, key)
		}
	}
}

// clientKey identifies the requesting client, preferring proxy headers.
func clientKey(r *http.Request) string {
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
