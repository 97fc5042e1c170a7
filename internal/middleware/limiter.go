package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"cym-store/internal/logger"
	"cym-store/internal/utils"

	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Login / checkout (Strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// General (Default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

const (
	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client identity and tier.
type RateLimiter struct {
	mu           sync.Mutex
	visitors     map[string]*visitor
	strictPaths  map[string]bool
	generalLimit rate.Limit
	generalBurst int
}

// NewRateLimiter applies the strict tier to POST requests on strictPaths.
func NewRateLimiter(strictPaths ...string) *RateLimiter {
	paths := make(map[string]bool, len(strictPaths))
	for _, p := range strictPaths {
		paths[p] = true
	}
	return &RateLimiter{
		visitors:     make(map[string]*visitor),
		strictPaths:  paths,
		generalLimit: limitGeneral,
		generalBurst: burstGeneral,
	}
}

// WithGeneralTier overrides the default tier. Call before serving.
func (l *RateLimiter) WithGeneralTier(limit rate.Limit, burst int) *RateLimiter {
	l.generalLimit = limit
	l.generalBurst = burst
	return l
}

// getVisitor retrieves or creates a rate limiter for the given key.
func (l *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// Cleanup drops idle visitors until ctx is done.
func (l *RateLimiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evictIdle(visitorTTL)
		}
	}
}

func (l *RateLimiter) evictIdle(ttl time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, v := range l.visitors {
		if time.Since(v.lastSeen) > ttl {
			delete(l.visitors, key)
		}
	}
}

// Middleware rejects requests over the bucket with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := l.resolveRateTier(r)
		identity := l.identity(r, tier)

		// Separate quotas per tier, e.g. "ip:1.2.3.4:strict".
		key := fmt.Sprintf("%s:%s", identity, tier)

		if !l.getVisitor(key, limit, burst).Allow() {
			utils.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// identity picks the bucket owner. Strict paths and freshly issued sessions
// count against the client IP, so dropping the cookie never buys a new bucket.
func (l *RateLimiter) identity(r *http.Request, tier string) string {
	ctx := r.Context()
	if sessionID := logger.SessionIDFrom(ctx); sessionID != "" && tier != "strict" && !sessionIssued(ctx) {
		return "session:" + sessionID
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

// resolveRateTier determines which rate limit policy applies to the request.
func (l *RateLimiter) resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if r.Method == http.MethodPost && l.strictPaths[r.URL.Path] {
		return limitStrict, burstStrict, "strict"
	}
	return l.generalLimit, l.generalBurst, "general"
}
