package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hollis/teamhub/internal/api/dto"
)

// rateLimiter is a sliding-window limiter keyed by client IP. Windows are
// pruned lazily on each hit and idle clients are swept once a minute so the
// map does not grow with every address that ever called the gateway.
type rateLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	clients map[string][]time.Time
}

func newRateLimiter(limit, windowSeconds int) *rateLimiter {
	if limit <= 0 {
		limit = 100
	}
	if windowSeconds <= 0 {
		windowSeconds = 60
	}

	rl := &rateLimiter{
		limit:   limit,
		window:  time.Duration(windowSeconds) * time.Second,
		clients: make(map[string][]time.Time),
	}
	go rl.sweep()
	return rl
}

func (rl *rateLimiter) sweep() {
	for range time.Tick(time.Minute) {
		cutoff := time.Now().Add(-2 * rl.window)
		rl.mu.Lock()
		for key, hits := range rl.clients {
			if len(hits) == 0 || hits[len(hits)-1].Before(cutoff) {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

// allow records a hit for key and reports whether it fits in the window,
// along with the remaining budget and when the window resets.
func (rl *rateLimiter) allow(key string) (bool, int, time.Time) {
	now := time.Now()
	windowStart := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	hits := rl.clients[key]
	for len(hits) > 0 && !hits[0].After(windowStart) {
		hits = hits[1:]
	}

	if len(hits) >= rl.limit {
		rl.clients[key] = hits
		return false, 0, hits[0].Add(rl.window)
	}

	hits = append(hits, now)
	rl.clients[key] = hits
	return true, rl.limit - len(hits), now.Add(rl.window)
}

// RateLimit limits each client IP to the given number of requests per window.
func RateLimit(requests, windowSeconds int) func(http.Handler) http.Handler {
	limiter := newRateLimiter(requests, windowSeconds)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, reset := limiter.allow(clientIP(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if !allowed {
				w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(reset).Seconds())+1, 10))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
					Error:      "Rate limit exceeded",
					StatusCode: http.StatusTooManyRequests,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the originating address, preferring proxy headers over
// the socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		return host[:i]
	}
	return host
}
