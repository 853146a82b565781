package middleware

import (
	"net/http"
	"os"
)

// SecurityMiddleware adds security headers to all responses
func SecurityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		behindProxy := os.Getenv("BEHIND_PROXY") == "true"

		// Only set HSTS if we're handling TLS directly or behind a proxy that handles HTTPS
		if !behindProxy || r.Header.Get("X-Forwarded-Proto") == "https" || r.Header.Get("CF-Visitor") != "" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Referrer policy
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Content Security Policy - team logos load from the ESPN CDN
		csp := "default-src 'self'; " +
			"img-src 'self' data: https://a.espncdn.com; " +
			"connect-src 'self'"
		w.Header().Set("Content-Security-Policy", csp)

		next.ServeHTTP(w, r)
	})
}
