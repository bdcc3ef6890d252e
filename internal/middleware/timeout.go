package middleware

import (
	"context"
	"net/http"
	"time"
)

// DefaultRequestTimeout applies when the caller passes a non-positive value.
const DefaultRequestTimeout = 30 * time.Second

// Timeout bounds each request. The deadline is attached to the request
// context so database and broker calls observe it, and http.TimeoutHandler
// answers 503 for handlers that overrun anyway.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		handler := http.TimeoutHandler(next, timeout, "Request Timeout")
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			handler.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
