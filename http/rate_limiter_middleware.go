package http

import (
	"log/slog"
	"net/http"
)

// RateLimitMiddleware hands throttled requests to rejected, or answers with
// a bare 429 when rejected is nil.
func RateLimitMiddleware(
	limiter *RateLimiter,
	next http.Handler,
	rejected http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		client := limiter.ClientKey(r)

		if !limiter.Allow(client) {
			slog.Warn("rate limit exceeded", "client", client, "path", r.URL.Path)
			if rejected != nil {
				rejected.ServeHTTP(w, r)
				return
			}
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
