package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiterConfig configures the in-memory limiter.
type RateLimiterConfig struct {
	// RequestsPerSecond is the token refill rate per key.
	RequestsPerSecond float64

	// BurstSize caps how many requests a key may spend at once.
	BurstSize int

	// CleanupInterval is how often idle buckets are dropped.
	CleanupInterval time.Duration

	// KeyFunc derives the limit key from the request. The default keys
	// by client IP, reusing the value WithClientIP already parsed when
	// that middleware ran earlier in the chain.
	KeyFunc func(r *http.Request) string
}

// DefaultRateLimiterConfig covers the general API surface.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   time.Minute,
	}
}

// StrictRateLimiterConfig covers credential endpoints, where a handful
// of attempts per second is already too many.
func StrictRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         5,
		CleanupInterval:   time.Minute,
	}
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	lastSeen time.Time
}

// RateLimiter tracks a token bucket per key. State lives in process
// memory, so limits apply per instance.
type RateLimiter struct {
	config  RateLimiterConfig
	mu      sync.RWMutex
	buckets map[string]*bucket
	stop    chan struct{}
}

// NewRateLimiter creates a limiter and starts its cleanup loop. Call
// Stop when the limiter is no longer needed.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = clientKey
	}

	rl := &RateLimiter{
		config:  config,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether the key may spend a token right now.
func (rl *RateLimiter) Allow(key string) bool {
	ok, _ := rl.take(key, time.Now())
	return ok
}

// take refills the key's bucket to now, then spends one token. On
// rejection it returns how long until a token is available.
func (rl *RateLimiter) take(key string, now time.Time) (bool, time.Duration) {
	rl.mu.Lock()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(rl.config.BurstSize), lastSeen: now}
		rl.buckets[key] = b
	}
	rl.mu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += now.Sub(b.lastSeen).Seconds() * rl.config.RequestsPerSecond
	if full := float64(rl.config.BurstSize); b.tokens > full {
		b.tokens = full
	}
	b.lastSeen = now

	if b.tokens < 1 {
		wait := (1 - b.tokens) / rl.config.RequestsPerSecond
		return false, time.Duration(wait * float64(time.Second))
	}
	b.tokens--
	return true, 0
}

// cleanupLoop drops buckets idle long enough to have refilled
// completely, since a recreated bucket starts in the same full state.
func (rl *RateLimiter) cleanupLoop() {
	refillTime := time.Duration(float64(rl.config.BurstSize) / rl.config.RequestsPerSecond * float64(time.Second))
	idleThreshold := rl.config.CleanupInterval + refillTime

	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-idleThreshold)
			rl.mu.Lock()
			for key, b := range rl.buckets {
				b.mu.Lock()
				idle := b.lastSeen.Before(cutoff)
				b.mu.Unlock()
				if idle {
					delete(rl.buckets, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Stop ends the cleanup loop.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Middleware rejects requests over the limit with 429 and a
// Retry-After hint derived from the refill rate.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := rl.take(rl.config.KeyFunc(r), time.Now())
		if !ok {
			seconds := int(math.Ceil(wait.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			respondTooManyRequests(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit builds a limiter from the config and returns its
// middleware. The limiter lives for the life of the process.
func RateLimit(config RateLimiterConfig) func(http.Handler) http.Handler {
	return NewRateLimiter(config).Middleware
}

// clientKey prefers the IP WithClientIP stored on the context and
// parses the request itself otherwise.
func clientKey(r *http.Request) string {
	if ip := GetClientIPFromContext(r.Context()); ip != "" {
		return ip
	}
	return GetClientIP(r)
}

// GetClientIP extracts the client IP, trusting the proxy headers
// X-Forwarded-For and X-Real-IP before falling back to RemoteAddr.
// Only meaningful when a reverse proxy controls those headers.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First entry is the originating client.
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
