package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         3,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	// Burst drains the bucket, then requests are rejected.
	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d within burst", i)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "request beyond burst")

	// A different key has its own bucket.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiter_RefillAndRetryAfter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 2,
		BurstSize:         1,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	start := time.Now()
	ok, _ := rl.take("key", start)
	assert.True(t, ok)

	// Empty bucket at 2 tokens/sec refills one token in half a second.
	ok, wait := rl.take("key", start)
	assert.False(t, ok)
	assert.InDelta(t, 0.5, wait.Seconds(), 0.01)

	ok, _ = rl.take("key", start.Add(600*time.Millisecond))
	assert.True(t, ok, "token refilled after the wait")
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         1,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/offerings", nil)
	req.RemoteAddr = "192.168.1.5:54321"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit")
}

func TestRateLimiter_KeysByContextIP(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         1,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	var status int
	chain := WithClientIP()(rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status = http.StatusOK
		w.WriteHeader(http.StatusOK)
	})))

	// Two clients behind the same proxy hop are limited separately.
	for _, ip := range []string{"198.51.100.4", "198.51.100.5"} {
		req := httptest.NewRequest(http.MethodGet, "/api/offerings", nil)
		req.RemoteAddr = "10.0.0.1:80"
		req.Header.Set("X-Forwarded-For", ip)

		w := httptest.NewRecorder()
		chain.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "first request from %s", ip)

		w = httptest.NewRecorder()
		chain.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code, "second request from %s", ip)
	}
	assert.Equal(t, http.StatusOK, status)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.7:12345",
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.4"},
			want:       "198.51.100.4",
		},
		{
			name:       "x-forwarded-for list takes first",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.2"},
			want:       "198.51.100.4",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "198.51.100.9"},
			want:       "198.51.100.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetClientIP(req))
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/offerings", "/api/v1/offerings"},
		{"/api/v1/offerings/6f1b0c9a-9b63-4f1e-8f3a-2c7d94a01b22", "/api/v1/offerings/:id"},
		{"/admin/chefs/6f1b0c9a-9b63-4f1e-8f3a-2c7d94a01b22/status", "/admin/chefs/:id/status"},
		{"/api/v1/locations/US/98101", "/api/v1/locations/:country/:code"},
		{"/healthz", "/healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePath(tt.path))
		})
	}
}
