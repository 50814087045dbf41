package middleware

import (
	"net/http"
	"strconv"
)

// SecurityHeadersConfig controls the browser-facing security headers.
// Zero values omit the corresponding header.
type SecurityHeadersConfig struct {
	// ContentSecurityPolicy sets Content-Security-Policy.
	ContentSecurityPolicy string

	// FrameOptions sets X-Frame-Options (DENY or SAMEORIGIN).
	FrameOptions string

	// ContentTypeNosniff sets X-Content-Type-Options: nosniff.
	ContentTypeNosniff bool

	// XSSProtection sets the legacy X-XSS-Protection header.
	XSSProtection string

	// ReferrerPolicy sets Referrer-Policy.
	ReferrerPolicy string

	// PermissionsPolicy sets Permissions-Policy.
	PermissionsPolicy string

	// HSTSMaxAge sets Strict-Transport-Security max-age in seconds.
	// 0 disables HSTS; main.go does that for dev over plain HTTP.
	HSTSMaxAge int

	// HSTSIncludeSubdomains extends HSTS to subdomains.
	HSTSIncludeSubdomains bool
}

// DefaultSecurityHeadersConfig returns the defaults for a JSON API that
// serves no HTML of its own: nothing may be loaded, framed, or embedded.
func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'; base-uri 'none'",
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
		XSSProtection:         "1; mode=block",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "camera=(), microphone=(), geolocation=(), payment=(self)",
		HSTSMaxAge:            31536000, // 1 year
		HSTSIncludeSubdomains: true,
	}
}

// headerSet resolves the config into the literal header pairs once, so
// each request only copies them.
func (c SecurityHeadersConfig) headerSet() [][2]string {
	var headers [][2]string
	add := func(name, value string) {
		if value != "" {
			headers = append(headers, [2]string{name, value})
		}
	}

	add("X-Frame-Options", c.FrameOptions)
	if c.ContentTypeNosniff {
		add("X-Content-Type-Options", "nosniff")
	}
	add("X-XSS-Protection", c.XSSProtection)
	add("Referrer-Policy", c.ReferrerPolicy)
	add("Content-Security-Policy", c.ContentSecurityPolicy)
	add("Permissions-Policy", c.PermissionsPolicy)

	if c.HSTSMaxAge > 0 {
		hsts := "max-age=" + strconv.Itoa(c.HSTSMaxAge)
		if c.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		add("Strict-Transport-Security", hsts)
	}
	return headers
}

// SecurityHeaders stamps the configured security headers on every
// response.
func SecurityHeaders(config SecurityHeadersConfig) func(http.Handler) http.Handler {
	headers := config.headerSet()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, pair := range headers {
				h.Set(pair[0], pair[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}
